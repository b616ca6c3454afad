package unit

import (
	"errors"
	"fmt"
	"math"

	"github.com/nstehr/vimy/vimy-sc2/action"
	"github.com/nstehr/vimy/vimy-sc2/gamedata"
	"github.com/nstehr/vimy/vimy-sc2/ids"
	"github.com/nstehr/vimy/vimy-sc2/ipc"
	"github.com/nstehr/vimy/vimy-sc2/model"
)

// ErrMalformed marks a wire record that cannot describe a real entity.
var ErrMalformed = errors.New("malformed unit")

// clampVital truncates a wire vital into [0, MaxUint32]. NaN is 0.
func clampVital(f float32) uint32 {
	switch {
	case !(f > 0):
		return 0
	case f >= math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(f)
}

func floatToUint(f *float32) *uint32 {
	if f == nil {
		return nil
	}
	v := clampVital(*f)
	return &v
}

// FromRaw builds the snapshot of raw bound to s. Absent wire fields stay
// nil. Out-of-range enum values and a zero type are rejected with
// ErrMalformed.
func FromRaw(s *Shared, raw ipc.RawUnit) (*Unit, error) {
	if raw.UnitType == 0 {
		return nil, fmt.Errorf("unit %d: %w: no type", raw.Tag, ErrMalformed)
	}
	if raw.Alliance < uint8(AllianceSelf) || raw.Alliance > uint8(AllianceEnemy) {
		return nil, fmt.Errorf("unit %d: %w: alliance %d", raw.Tag, ErrMalformed, raw.Alliance)
	}
	if raw.DisplayType < uint8(DisplayVisible) || raw.DisplayType > uint8(DisplayPlaceholder) {
		return nil, fmt.Errorf("unit %d: %w: display type %d", raw.Tag, ErrMalformed, raw.DisplayType)
	}
	if raw.Cloak > uint8(CloakedAllied) {
		return nil, fmt.Errorf("unit %d: %w: cloak state %d", raw.Tag, ErrMalformed, raw.Cloak)
	}

	t := ids.UnitTypeID(raw.UnitType)
	u := &Unit{
		shared:   s,
		Tag:      raw.Tag,
		Type:     t,
		Owner:    raw.Owner,
		Alliance: Alliance(raw.Alliance),
		Display:  DisplayType(raw.DisplayType),
		Cloak:    CloakState(raw.Cloak),

		Position:      model.Point2{raw.Pos[0], raw.Pos[1]},
		Position3:     model.Point3(raw.Pos),
		Facing:        raw.Facing,
		Radius:        raw.Radius,
		BuildProgress: raw.Progress,
		DetectRange:   raw.DetectRange,
		RadarRange:    raw.RadarRange,

		Selected:      raw.Selected,
		OnScreen:      raw.OnScreen,
		Blip:          raw.Blip,
		Powered:       raw.Powered,
		Active:        raw.Active,
		Flying:        raw.Flying,
		Burrowed:      raw.Burrowed,
		Hallucination: raw.Hallucination,

		AttackUpgradeLevel: raw.AttackUpgradeLevel,
		ArmorUpgradeLevel:  raw.ArmorUpgradeLevel,
		ShieldUpgradeLevel: raw.ShieldUpgradeLevel,

		Health:          floatToUint(raw.Health),
		HealthMax:       floatToUint(raw.HealthMax),
		Shield:          floatToUint(raw.Shield),
		ShieldMax:       floatToUint(raw.ShieldMax),
		Energy:          floatToUint(raw.Energy),
		EnergyMax:       floatToUint(raw.EnergyMax),
		MineralContents: raw.MineralContents,
		VespeneContents: raw.VespeneContents,

		AddonTag:           raw.AddonTag,
		CargoSpaceTaken:    raw.CargoSpaceTaken,
		CargoSpaceMax:      raw.CargoSpaceMax,
		AssignedHarvesters: raw.AssignedHarvesters,
		IdealHarvesters:    raw.IdealHarvesters,
		WeaponCooldown:     raw.WeaponCooldown,
		EngagedTargetTag:   raw.EngagedTargetTag,
		BuffDurationRemain: raw.BuffDurationRemain,
		BuffDurationMax:    raw.BuffDurationMax,
	}

	if r, ok := gamedata.DetectRangeOverrides[t]; ok {
		u.DetectRange = r
	}

	if len(raw.Buffs) > 0 {
		u.Buffs = make([]ids.BuffID, len(raw.Buffs))
		for i, b := range raw.Buffs {
			u.Buffs[i] = ids.BuffID(b)
		}
	}

	for _, o := range raw.Orders {
		if o.TargetPos != nil && o.TargetTag != nil {
			return nil, fmt.Errorf("unit %d: %w: order %d has two targets", raw.Tag, ErrMalformed, o.Ability)
		}
		target := action.None()
		switch {
		case o.TargetPos != nil:
			target = action.Pos(model.Point2(*o.TargetPos))
		case o.TargetTag != nil:
			target = action.Tag(*o.TargetTag)
		}
		u.Orders = append(u.Orders, Order{Ability: ids.AbilityID(o.Ability), Target: target, Progress: o.Progress})
	}

	for _, p := range raw.Passengers {
		u.Passengers = append(u.Passengers, Passenger{
			Tag:       p.Tag,
			Type:      ids.UnitTypeID(p.UnitType),
			Health:    clampVital(p.Health),
			HealthMax: clampVital(p.HealthMax),
			Shield:    clampVital(p.Shield),
			ShieldMax: clampVital(p.ShieldMax),
			Energy:    clampVital(p.Energy),
			EnergyMax: clampVital(p.EnergyMax),
		})
	}

	for _, r := range raw.RallyTargets {
		u.RallyTargets = append(u.RallyTargets, RallyTarget{Point: model.Point2(r.Point), Tag: r.Tag})
	}

	if u.WeaponCooldown != nil {
		s.ObserveCooldown(t, *u.WeaponCooldown)
	}
	return u, nil
}

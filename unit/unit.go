// Package unit is the per-tick entity model: a Unit snapshot bound to the
// session's Shared context, the derived stat engine built on top of it and
// the command methods that feed the Commander.
package unit

import (
	"math"

	"github.com/nstehr/vimy/vimy-sc2/gamedata"
	"github.com/nstehr/vimy/vimy-sc2/ids"
	"github.com/nstehr/vimy/vimy-sc2/model"
)

// epsilon is the float tolerance used for readiness and cooldown checks.
const epsilon = 1e-6

// Alliance is ownership relative to the bot.
type Alliance uint8

const (
	AllianceSelf Alliance = iota + 1
	AllianceAlly
	AllianceNeutral
	AllianceEnemy
)

func (a Alliance) String() string {
	switch a {
	case AllianceSelf:
		return "self"
	case AllianceAlly:
		return "ally"
	case AllianceNeutral:
		return "neutral"
	case AllianceEnemy:
		return "enemy"
	}
	return "unknown"
}

// DisplayType is how the game currently shows the unit.
type DisplayType uint8

const (
	DisplayVisible     DisplayType = iota + 1
	DisplaySnapshot                // remembered, not currently observed
	DisplayHidden                  // deliberately concealed
	DisplayPlaceholder             // planned building, not started
)

// CloakState mirrors the game's five cloak values.
type CloakState uint8

const (
	CloakUnknown CloakState = iota
	Cloaked
	CloakedDetected
	NotCloaked
	CloakedAllied
)

// Passenger is a unit carried inside a transport or bunker.
type Passenger struct {
	Tag       uint64
	Type      ids.UnitTypeID
	Health    uint32
	HealthMax uint32
	Shield    uint32
	ShieldMax uint32
	Energy    uint32
	EnergyMax uint32
}

// RallyTarget is a production rally point, optionally attached to a unit.
type RallyTarget struct {
	Point model.Point2
	Tag   *uint64
}

// Unit is one entity as observed this tick. Pointer fields are nil when the
// game did not report them: snapshots of unseen enemies carry no health,
// and enemies never carry orders or cargo.
type Unit struct {
	shared *Shared

	// AllowSpam disables repeat-order suppression in Command.
	AllowSpam bool

	Tag      uint64
	Type     ids.UnitTypeID
	Owner    uint32
	Alliance Alliance
	Display  DisplayType
	Cloak    CloakState
	Buffs    []ids.BuffID

	Position      model.Point2
	Position3     model.Point3
	Facing        float32
	Radius        float32
	BuildProgress float32
	DetectRange   float32
	RadarRange    float32

	Selected      bool
	OnScreen      bool
	Blip          bool
	Powered       bool
	Active        bool
	Flying        bool
	Burrowed      bool
	Hallucination bool

	AttackUpgradeLevel uint32
	ArmorUpgradeLevel  uint32
	ShieldUpgradeLevel uint32

	Health          *uint32
	HealthMax       *uint32
	Shield          *uint32
	ShieldMax       *uint32
	Energy          *uint32
	EnergyMax       *uint32
	MineralContents *uint32
	VespeneContents *uint32

	// Owner-only.
	Orders             []Order
	AddonTag           *uint64
	Passengers         []Passenger
	CargoSpaceTaken    *uint32
	CargoSpaceMax      *uint32
	AssignedHarvesters *uint32
	IdealHarvesters    *uint32
	WeaponCooldown     *float32
	EngagedTargetTag   *uint64
	BuffDurationRemain *uint32
	BuffDurationMax    *uint32
	RallyTargets       []RallyTarget
}

// New returns an empty snapshot bound to s. Callers usually go through
// FromRaw instead.
func New(s *Shared) *Unit {
	return &Unit{shared: s}
}

func (u *Unit) Shared() *Shared { return u.shared }

func (u *Unit) typeData() (*gamedata.UnitTypeData, bool) {
	return u.shared.Data().Unit(u.Type)
}

// TypeData returns the reference data of the unit's type.
func (u *Unit) TypeData() (*gamedata.UnitTypeData, bool) { return u.typeData() }

// Name is the type name from the tables, empty for unknown types.
func (u *Unit) Name() string {
	if d, ok := u.typeData(); ok {
		return d.Name
	}
	return ""
}

// ---- Classification ----

func (u *Unit) IsWorker() bool   { return u.Type.IsWorker() }
func (u *Unit) IsTownhall() bool { return u.Type.IsTownhall() }
func (u *Unit) IsAddon() bool    { return u.Type.IsAddon() }
func (u *Unit) IsMelee() bool    { return u.Type.IsMelee() }

func (u *Unit) IsMineral() bool {
	d, ok := u.typeData()
	return ok && d.HasMinerals
}

func (u *Unit) IsGeyser() bool {
	d, ok := u.typeData()
	return ok && d.HasVespene
}

func (u *Unit) IsDetector() bool {
	if gamedata.DetectorTypes[u.Type] {
		return true
	}
	if !u.IsReady() {
		return false
	}
	return gamedata.ReadyDetectorTypes[u.Type] ||
		(gamedata.PoweredDetectorTypes[u.Type] && u.Powered)
}

// IsReady reports whether construction has finished.
func (u *Unit) IsReady() bool {
	return math.Abs(float64(u.BuildProgress)-1) < epsilon
}

func (u *Unit) HasAddon() bool { return u.AddonTag != nil }

// HasTechlab looks the addon up in the shared techlab set because the
// addon's own type is not part of the snapshot.
func (u *Unit) HasTechlab() bool {
	return u.AddonTag != nil && u.shared.IsTechlab(*u.AddonTag)
}

func (u *Unit) HasReactor() bool {
	return u.AddonTag != nil && u.shared.IsReactor(*u.AddonTag)
}

// IsAttacked reports whether the unit lost hit points since last tick.
func (u *Unit) IsAttacked() bool {
	hits, ok := u.Hits()
	if !ok {
		return false
	}
	last, ok := u.shared.LastHealth(u.Tag)
	return ok && hits < last
}

// DamageTaken is the hit points lost since last tick, 0 when unknown.
func (u *Unit) DamageTaken() uint32 {
	hits, ok := u.Hits()
	if !ok {
		return 0
	}
	last, ok := u.shared.LastHealth(u.Tag)
	if !ok || last < hits {
		return 0
	}
	return last - hits
}

func (u *Unit) Abilities() ([]ids.AbilityID, bool) { return u.shared.Abilities(u.Tag) }
func (u *Unit) HasAbility(a ids.AbilityID) bool    { return u.shared.HasAbility(u.Tag, a) }

func (u *Unit) Race() gamedata.Race {
	d, ok := u.typeData()
	if !ok {
		return gamedata.Random
	}
	return d.Race
}

func (u *Unit) HasCargo() bool {
	return u.CargoSpaceTaken != nil && *u.CargoSpaceTaken > 0
}

// CargoLeft is the free transport space, absent unless both sides are known.
func (u *Unit) CargoLeft() (uint32, bool) {
	if u.CargoSpaceTaken == nil || u.CargoSpaceMax == nil {
		return 0, false
	}
	if *u.CargoSpaceTaken > *u.CargoSpaceMax {
		return 0, true
	}
	return *u.CargoSpaceMax - *u.CargoSpaceTaken, true
}

// FootprintRadius is the placement radius of the ability that builds
// this type.
func (u *Unit) FootprintRadius() (float32, bool) {
	d, ok := u.typeData()
	if !ok || d.Ability == nil {
		return 0, false
	}
	a, ok := u.shared.Data().Ability(*d.Ability)
	if !ok || a.FootprintRadius == nil {
		return 0, false
	}
	return *a.FootprintRadius, true
}

// BuildingSize is the side of the square the structure occupies.
func (u *Unit) BuildingSize() (int, bool) {
	if u.IsAddon() {
		return 2, true
	}
	r, ok := u.FootprintRadius()
	if !ok {
		return 0, false
	}
	return int(r * 2), true
}

func (u *Unit) CargoSize() uint32 {
	if d, ok := u.typeData(); ok {
		return d.CargoSize
	}
	return 0
}

func (u *Unit) SightRange() float32 {
	if d, ok := u.typeData(); ok {
		return d.SightRange
	}
	return 0
}

// Armor is the base armor of the type, without upgrades.
func (u *Unit) Armor() int32 {
	if d, ok := u.typeData(); ok {
		return d.Armor
	}
	return 0
}

func (u *Unit) SupplyCost() float32 {
	if d, ok := u.typeData(); ok {
		return d.FoodRequired
	}
	return 0
}

// TowardsFacing is the point offset away from the unit along its facing.
func (u *Unit) TowardsFacing(offset float32) model.Point2 {
	return model.Towards(u.Position, u.Facing, offset)
}

// ---- Display and alliance ----

// IsVisible requires both the display state and the grid cell to agree.
func (u *Unit) IsVisible() bool {
	return u.Display == DisplayVisible && u.shared.VisibilityAt(u.Position).IsVisible()
}

// IsSnapshot is a remembered unit whose last known cell is out of sight.
func (u *Unit) IsSnapshot() bool {
	return u.Display == DisplaySnapshot && !u.shared.VisibilityAt(u.Position).IsVisible()
}

func (u *Unit) IsHidden() bool      { return u.Display == DisplayHidden }
func (u *Unit) IsPlaceholder() bool { return u.Display == DisplayPlaceholder }

func (u *Unit) IsMine() bool    { return u.Alliance == AllianceSelf }
func (u *Unit) IsEnemy() bool   { return u.Alliance == AllianceEnemy }
func (u *Unit) IsNeutral() bool { return u.Alliance == AllianceNeutral }
func (u *Unit) IsAlly() bool    { return u.Alliance == AllianceAlly }

func (u *Unit) IsCloaked() bool {
	switch u.Cloak {
	case Cloaked, CloakedDetected, CloakedAllied:
		return true
	}
	return false
}

func (u *Unit) IsRevealed() bool { return u.Cloak == CloakedDetected }

func (u *Unit) CanBeAttacked() bool {
	return u.Cloak == NotCloaked || u.Cloak == CloakedDetected
}

// ---- Vitals ----

func percentage(cur, full *uint32) (float32, bool) {
	if cur == nil || full == nil || *full == 0 {
		return 0, false
	}
	return float32(*cur) / float32(*full), true
}

func (u *Unit) HealthPercentage() (float32, bool) { return percentage(u.Health, u.HealthMax) }
func (u *Unit) ShieldPercentage() (float32, bool) { return percentage(u.Shield, u.ShieldMax) }
func (u *Unit) EnergyPercentage() (float32, bool) { return percentage(u.Energy, u.EnergyMax) }

func sumOptional(a, b *uint32) (uint32, bool) {
	switch {
	case a != nil && b != nil:
		return *a + *b, true
	case a != nil:
		return *a, true
	case b != nil:
		return *b, true
	}
	return 0, false
}

// Hits is health plus shield, or whichever of the two is known.
func (u *Unit) Hits() (uint32, bool) { return sumOptional(u.Health, u.Shield) }

func (u *Unit) HitsMax() (uint32, bool) { return sumOptional(u.HealthMax, u.ShieldMax) }

func (u *Unit) HitsPercentage() (float32, bool) {
	hits, ok := u.Hits()
	if !ok {
		return 0, false
	}
	full, ok := u.HitsMax()
	if !ok || full == 0 {
		return 0, false
	}
	return float32(hits) / float32(full), true
}

// ---- Attributes and buffs ----

func (u *Unit) Attributes() []gamedata.Attribute {
	if d, ok := u.typeData(); ok {
		return d.Attributes
	}
	return nil
}

func (u *Unit) HasAttribute(a gamedata.Attribute) bool {
	d, ok := u.typeData()
	return ok && d.HasAttribute(a)
}

func (u *Unit) IsLight() bool      { return u.HasAttribute(gamedata.Light) }
func (u *Unit) IsArmored() bool    { return u.HasAttribute(gamedata.Armored) }
func (u *Unit) IsBiological() bool { return u.HasAttribute(gamedata.Biological) }
func (u *Unit) IsMechanical() bool { return u.HasAttribute(gamedata.Mechanical) }
func (u *Unit) IsRobotic() bool    { return u.HasAttribute(gamedata.Robotic) }
func (u *Unit) IsPsionic() bool    { return u.HasAttribute(gamedata.Psionic) }
func (u *Unit) IsMassive() bool    { return u.HasAttribute(gamedata.Massive) }
func (u *Unit) IsStructure() bool  { return u.HasAttribute(gamedata.Structure) }
func (u *Unit) IsHover() bool      { return u.HasAttribute(gamedata.Hover) }
func (u *Unit) IsHeroic() bool     { return u.HasAttribute(gamedata.Heroic) }
func (u *Unit) IsSummoned() bool   { return u.HasAttribute(gamedata.Summoned) }

func (u *Unit) HasBuff(b ids.BuffID) bool {
	for _, have := range u.Buffs {
		if have == b {
			return true
		}
	}
	return false
}

func (u *Unit) HasAnyBuff(buffs ...ids.BuffID) bool {
	for _, b := range buffs {
		if u.HasBuff(b) {
			return true
		}
	}
	return false
}

func (u *Unit) IsCarryingMinerals() bool {
	return u.HasAnyBuff(ids.CarryMineralFieldMinerals, ids.CarryHighYieldMineralFieldMinerals)
}

func (u *Unit) IsCarryingVespene() bool {
	return u.HasAnyBuff(
		ids.CarryHarvestableVespeneGeyserGas,
		ids.CarryHarvestableVespeneGeyserGasProtoss,
		ids.CarryHarvestableVespeneGeyserGasZerg,
	)
}

func (u *Unit) IsCarryingResource() bool {
	return u.IsCarryingMinerals() || u.IsCarryingVespene()
}

// ---- Distance ----

func (u *Unit) Distance(p model.Point2) float32 { return model.Distance(u.Position, p) }

func (u *Unit) DistanceSquared(p model.Point2) float32 {
	return model.DistanceSquared(u.Position, p)
}

package ipc

import (
	"errors"
	"fmt"
)

// Message types exchanged with the game bridge.
const (
	TypeHello       = "hello"
	TypeAck         = "ack"
	TypeObservation = "observation"
	TypeActions     = "actions"
)

type HelloMessage struct {
	Player   string `json:"player"`
	Race     string `json:"race"`
	GameStep uint32 `json:"game_step,omitempty"`
}

type AckMessage struct {
	Status  string `json:"status"`
	Session string `json:"session,omitempty"`
}

// ObservationMessage is one tick of raw game state.
type ObservationMessage struct {
	Tick          uint32              `json:"tick"`
	Units         []RawUnit           `json:"units"`
	Upgrades      []uint32            `json:"upgrades,omitempty"`
	EnemyUpgrades []uint32            `json:"enemy_upgrades,omitempty"`
	Abilities     map[uint64][]uint32 `json:"abilities,omitempty"`
	Creep         *Grid               `json:"creep,omitempty"`
	Visibility    *Grid               `json:"visibility,omitempty"`
}

// Grid is a row-major byte grid; Data is base64 on the wire.
type Grid struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Data   []byte `json:"data"`
}

// ErrMalformedGrid marks a grid whose size does not fit its data.
var ErrMalformedGrid = errors.New("malformed grid")

// Validate checks that the dimensions are non-negative and that Data holds
// at least Width*Height cells.
func (g *Grid) Validate() error {
	if g.Width < 0 || g.Height < 0 {
		return fmt.Errorf("%w: size %dx%d", ErrMalformedGrid, g.Width, g.Height)
	}
	if g.Width > 0 && g.Height > len(g.Data)/g.Width {
		return fmt.Errorf("%w: size %dx%d exceeds %d bytes", ErrMalformedGrid, g.Width, g.Height, len(g.Data))
	}
	return nil
}

// RawUnit is the wire record of one entity. Pointer fields are omitted by
// the bridge when the game does not report them and must stay nil.
type RawUnit struct {
	Tag         uint64     `json:"tag"`
	UnitType    uint32     `json:"unit_type"`
	Owner       uint32     `json:"owner"`
	Alliance    uint8      `json:"alliance"`
	DisplayType uint8      `json:"display_type"`
	Cloak       uint8      `json:"cloak"`
	Pos         [3]float32 `json:"pos"`
	Facing      float32    `json:"facing"`
	Radius      float32    `json:"radius"`
	Progress    float32    `json:"build_progress"`
	DetectRange float32    `json:"detect_range,omitempty"`
	RadarRange  float32    `json:"radar_range,omitempty"`
	Buffs       []uint32   `json:"buffs,omitempty"`

	Selected      bool `json:"is_selected,omitempty"`
	OnScreen      bool `json:"is_on_screen,omitempty"`
	Blip          bool `json:"is_blip,omitempty"`
	Powered       bool `json:"is_powered,omitempty"`
	Active        bool `json:"is_active,omitempty"`
	Flying        bool `json:"is_flying,omitempty"`
	Burrowed      bool `json:"is_burrowed,omitempty"`
	Hallucination bool `json:"is_hallucination,omitempty"`

	AttackUpgradeLevel uint32 `json:"attack_upgrade_level,omitempty"`
	ArmorUpgradeLevel  uint32 `json:"armor_upgrade_level,omitempty"`
	ShieldUpgradeLevel uint32 `json:"shield_upgrade_level,omitempty"`

	Health          *float32 `json:"health,omitempty"`
	HealthMax       *float32 `json:"health_max,omitempty"`
	Shield          *float32 `json:"shield,omitempty"`
	ShieldMax       *float32 `json:"shield_max,omitempty"`
	Energy          *float32 `json:"energy,omitempty"`
	EnergyMax       *float32 `json:"energy_max,omitempty"`
	MineralContents *uint32  `json:"mineral_contents,omitempty"`
	VespeneContents *uint32  `json:"vespene_contents,omitempty"`

	Orders             []RawOrder       `json:"orders,omitempty"`
	AddonTag           *uint64          `json:"add_on_tag,omitempty"`
	Passengers         []RawPassenger   `json:"passengers,omitempty"`
	CargoSpaceTaken    *uint32          `json:"cargo_space_taken,omitempty"`
	CargoSpaceMax      *uint32          `json:"cargo_space_max,omitempty"`
	AssignedHarvesters *uint32          `json:"assigned_harvesters,omitempty"`
	IdealHarvesters    *uint32          `json:"ideal_harvesters,omitempty"`
	WeaponCooldown     *float32         `json:"weapon_cooldown,omitempty"`
	EngagedTargetTag   *uint64          `json:"engaged_target_tag,omitempty"`
	BuffDurationRemain *uint32          `json:"buff_duration_remain,omitempty"`
	BuffDurationMax    *uint32          `json:"buff_duration_max,omitempty"`
	RallyTargets       []RawRallyTarget `json:"rally_targets,omitempty"`
}

type RawOrder struct {
	Ability   uint32      `json:"ability_id"`
	TargetPos *[2]float32 `json:"target_pos,omitempty"`
	TargetTag *uint64     `json:"target_tag,omitempty"`
	Progress  float32     `json:"progress,omitempty"`
}

type RawPassenger struct {
	Tag       uint64  `json:"tag"`
	UnitType  uint32  `json:"unit_type"`
	Health    float32 `json:"health"`
	HealthMax float32 `json:"health_max"`
	Shield    float32 `json:"shield,omitempty"`
	ShieldMax float32 `json:"shield_max,omitempty"`
	Energy    float32 `json:"energy,omitempty"`
	EnergyMax float32 `json:"energy_max,omitempty"`
}

type RawRallyTarget struct {
	Point [2]float32 `json:"point"`
	Tag   *uint64    `json:"tag,omitempty"`
}

// ActionsMessage answers an observation with the batched commands of the
// tick.
type ActionsMessage struct {
	Tick    uint32        `json:"tick"`
	Actions []ActionBatch `json:"actions"`
}

// ActionBatch is one ability issued to a group of units. At most one of
// TargetPos and TargetTag is set.
type ActionBatch struct {
	Ability   uint32      `json:"ability_id"`
	TargetPos *[2]float32 `json:"target_pos,omitempty"`
	TargetTag *uint64     `json:"target_tag,omitempty"`
	Queue     bool        `json:"queue,omitempty"`
	UnitTags  []uint64    `json:"unit_tags"`
}

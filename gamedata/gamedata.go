// Package gamedata holds the read-only Reference Tables: per-unit-type base
// stats, ability footprints and upgrade research abilities, plus the
// hand-maintained special-case tables the derived stat engine consults.
package gamedata

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nstehr/vimy/vimy-sc2/ids"
)

// Attribute is a fixed categorical tag on a unit type.
type Attribute uint8

const (
	Light Attribute = iota + 1
	Armored
	Biological
	Mechanical
	Robotic
	Psionic
	Massive
	Structure
	Hover
	Heroic
	Summoned
)

var attributeNames = map[Attribute]string{
	Light:      "light",
	Armored:    "armored",
	Biological: "biological",
	Mechanical: "mechanical",
	Robotic:    "robotic",
	Psionic:    "psionic",
	Massive:    "massive",
	Structure:  "structure",
	Hover:      "hover",
	Heroic:     "heroic",
	Summoned:   "summoned",
}

func (a Attribute) String() string {
	if n, ok := attributeNames[a]; ok {
		return n
	}
	return fmt.Sprintf("attribute(%d)", uint8(a))
}

// ParseAttribute maps a case-insensitive attribute name to its value.
func ParseAttribute(s string) (Attribute, error) {
	for a, n := range attributeNames {
		if strings.EqualFold(n, s) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAttribute, s)
}

// TargetType is the domain a weapon can hit.
type TargetType uint8

const (
	Ground TargetType = iota + 1
	Air
	Any
)

func (t TargetType) IsGround() bool { return t == Ground }
func (t TargetType) IsAir() bool    { return t == Air }
func (t TargetType) IsAny() bool    { return t == Any }

func (t TargetType) String() string {
	switch t {
	case Ground:
		return "ground"
	case Air:
		return "air"
	case Any:
		return "any"
	}
	return fmt.Sprintf("target(%d)", uint8(t))
}

// ParseTargetType maps "ground", "air" or "any" to its value.
func ParseTargetType(s string) (TargetType, error) {
	switch strings.ToLower(s) {
	case "ground":
		return Ground, nil
	case "air":
		return Air, nil
	case "any":
		return Any, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTarget, s)
}

// Race of a unit type or player.
type Race uint8

const (
	Random Race = iota
	Terran
	Zerg
	Protoss
)

func (r Race) IsTerran() bool  { return r == Terran }
func (r Race) IsZerg() bool    { return r == Zerg }
func (r Race) IsProtoss() bool { return r == Protoss }

func (r Race) String() string {
	switch r {
	case Terran:
		return "terran"
	case Zerg:
		return "zerg"
	case Protoss:
		return "protoss"
	}
	return "random"
}

// ParseRace maps a race name to its value. Unknown names are an error;
// an empty name is Random.
func ParseRace(s string) (Race, error) {
	switch strings.ToLower(s) {
	case "", "random":
		return Random, nil
	case "terran":
		return Terran, nil
	case "zerg":
		return Zerg, nil
	case "protoss":
		return Protoss, nil
	}
	return Random, fmt.Errorf("%w: %q", ErrUnknownRace, s)
}

// DamageBonus is extra damage a weapon deals against one attribute.
type DamageBonus struct {
	Attribute Attribute
	Bonus     uint32
}

// Weapon is one weapon of a unit type. Speed is the attack interval in
// game seconds; Attacks is the number of strikes per use.
type Weapon struct {
	Target      TargetType
	Damage      uint32
	DamageBonus []DamageBonus
	Attacks     uint32
	Range       float32
	Speed       float32
}

// DPS is the undecorated damage per second of the weapon.
func (w Weapon) DPS() float32 {
	if w.Speed == 0 {
		return 0
	}
	return float32(w.Damage) * float32(w.Attacks) / w.Speed
}

// UnitTypeData is the static description of a unit type.
type UnitTypeData struct {
	ID            ids.UnitTypeID
	Name          string
	Race          Race
	Ability       *ids.AbilityID // ability that produces this type, if any
	MovementSpeed float32
	Armor         int32
	Weapons       []Weapon
	Attributes    []Attribute
	SightRange    float32
	CargoSize     uint32
	FoodRequired  float32
	HasMinerals   bool
	HasVespene    bool
}

// HasAttribute reports whether the type carries attribute a.
func (d *UnitTypeData) HasAttribute(a Attribute) bool {
	return slices.Contains(d.Attributes, a)
}

// AbilityData is the static description of an ability.
type AbilityData struct {
	ID              ids.AbilityID
	Name            string
	FootprintRadius *float32 // only for placement abilities
}

// UpgradeData is the static description of an upgrade.
type UpgradeData struct {
	ID      ids.UpgradeID
	Name    string
	Ability ids.AbilityID // research ability
}

// GameData is the immutable set of Reference Tables for one game.
// It is never mutated after Load returns.
type GameData struct {
	Units     map[ids.UnitTypeID]*UnitTypeData
	Abilities map[ids.AbilityID]*AbilityData
	Upgrades  map[ids.UpgradeID]*UpgradeData
}

// New returns empty tables, for tests and programmatic construction.
func New() *GameData {
	return &GameData{
		Units:     make(map[ids.UnitTypeID]*UnitTypeData),
		Abilities: make(map[ids.AbilityID]*AbilityData),
		Upgrades:  make(map[ids.UpgradeID]*UpgradeData),
	}
}

func (g *GameData) Unit(id ids.UnitTypeID) (*UnitTypeData, bool) {
	if g == nil {
		return nil, false
	}
	d, ok := g.Units[id]
	return d, ok
}

func (g *GameData) Ability(id ids.AbilityID) (*AbilityData, bool) {
	if g == nil {
		return nil, false
	}
	d, ok := g.Abilities[id]
	return d, ok
}

func (g *GameData) Upgrade(id ids.UpgradeID) (*UpgradeData, bool) {
	if g == nil {
		return nil, false
	}
	d, ok := g.Upgrades[id]
	return d, ok
}

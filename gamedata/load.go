package gamedata

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/nstehr/vimy/vimy-sc2/ids"
)

var (
	ErrInvalidData      = errors.New("invalid reference data")
	ErrUnknownAttribute = errors.New("unknown attribute")
	ErrUnknownTarget    = errors.New("unknown target type")
	ErrUnknownRace      = errors.New("unknown race")
	ErrDuplicateID      = errors.New("duplicate id")
)

//go:embed data/default.yaml
var defaultData []byte

//go:embed data/gamedata.schema.json
var schemaSource string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("gamedata.schema.json", schemaSource)
	})
	return schema, schemaErr
}

type fileYAML struct {
	Units     []unitYAML    `yaml:"units"`
	Abilities []abilityYAML `yaml:"abilities"`
	Upgrades  []upgradeYAML `yaml:"upgrades"`
}

type unitYAML struct {
	ID            uint32       `yaml:"id"`
	Name          string       `yaml:"name"`
	Race          string       `yaml:"race"`
	Ability       *uint32      `yaml:"ability"`
	MovementSpeed float32      `yaml:"movement_speed"`
	Armor         int32        `yaml:"armor"`
	Weapons       []weaponYAML `yaml:"weapons"`
	Attributes    []string     `yaml:"attributes"`
	SightRange    float32      `yaml:"sight_range"`
	CargoSize     uint32       `yaml:"cargo_size"`
	FoodRequired  float32      `yaml:"food_required"`
	HasMinerals   bool         `yaml:"has_minerals"`
	HasVespene    bool         `yaml:"has_vespene"`
}

type weaponYAML struct {
	Target      string      `yaml:"target"`
	Damage      uint32      `yaml:"damage"`
	Attacks     uint32      `yaml:"attacks"`
	Range       float32     `yaml:"range"`
	Speed       float32     `yaml:"speed"`
	DamageBonus []bonusYAML `yaml:"damage_bonus"`
}

type bonusYAML struct {
	Attribute string `yaml:"attribute"`
	Bonus     uint32 `yaml:"bonus"`
}

type abilityYAML struct {
	ID              uint32   `yaml:"id"`
	Name            string   `yaml:"name"`
	FootprintRadius *float32 `yaml:"footprint_radius"`
}

type upgradeYAML struct {
	ID      uint32 `yaml:"id"`
	Name    string `yaml:"name"`
	Ability uint32 `yaml:"ability"`
}

// Default returns the reference tables bundled with the module.
func Default() (*GameData, error) {
	return Parse(defaultData)
}

// Load reads reference tables from a YAML file.
func Load(path string) (*GameData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game data: %w", err)
	}
	gd, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return gd, nil
}

// Parse validates a YAML document against the bundled schema and builds
// the lookup tables from it.
func Parse(raw []byte) (*GameData, error) {
	if err := validate(raw); err != nil {
		return nil, err
	}

	var f fileYAML
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode game data: %w", err)
	}

	gd := New()
	for _, u := range f.Units {
		d, err := u.convert()
		if err != nil {
			return nil, fmt.Errorf("unit %d (%s): %w", u.ID, u.Name, err)
		}
		if _, dup := gd.Units[d.ID]; dup {
			return nil, fmt.Errorf("unit %d: %w", u.ID, ErrDuplicateID)
		}
		gd.Units[d.ID] = d
	}
	for _, a := range f.Abilities {
		id := ids.AbilityID(a.ID)
		if _, dup := gd.Abilities[id]; dup {
			return nil, fmt.Errorf("ability %d: %w", a.ID, ErrDuplicateID)
		}
		gd.Abilities[id] = &AbilityData{ID: id, Name: a.Name, FootprintRadius: a.FootprintRadius}
	}
	for _, up := range f.Upgrades {
		id := ids.UpgradeID(up.ID)
		if _, dup := gd.Upgrades[id]; dup {
			return nil, fmt.Errorf("upgrade %d: %w", up.ID, ErrDuplicateID)
		}
		gd.Upgrades[id] = &UpgradeData{ID: id, Name: up.Name, Ability: ids.AbilityID(up.Ability)}
	}
	return gd, nil
}

// validate runs the document through the JSON schema. YAML is re-encoded as
// JSON first so numbers reach the validator as json.Number.
func validate(raw []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode game data: %w", err)
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("re-encode game data: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(js))
	dec.UseNumber()
	var inst any
	if err := dec.Decode(&inst); err != nil {
		return fmt.Errorf("re-decode game data: %w", err)
	}

	if err := s.Validate(inst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return nil
}

func (u unitYAML) convert() (*UnitTypeData, error) {
	race, err := ParseRace(u.Race)
	if err != nil {
		return nil, err
	}
	d := &UnitTypeData{
		ID:            ids.UnitTypeID(u.ID),
		Name:          u.Name,
		Race:          race,
		MovementSpeed: u.MovementSpeed,
		Armor:         u.Armor,
		SightRange:    u.SightRange,
		CargoSize:     u.CargoSize,
		FoodRequired:  u.FoodRequired,
		HasMinerals:   u.HasMinerals,
		HasVespene:    u.HasVespene,
	}
	if u.Ability != nil {
		a := ids.AbilityID(*u.Ability)
		d.Ability = &a
	}
	for _, s := range u.Attributes {
		a, err := ParseAttribute(s)
		if err != nil {
			return nil, err
		}
		d.Attributes = append(d.Attributes, a)
	}
	for _, w := range u.Weapons {
		target, err := ParseTargetType(w.Target)
		if err != nil {
			return nil, err
		}
		weapon := Weapon{
			Target:  target,
			Damage:  w.Damage,
			Attacks: w.Attacks,
			Range:   w.Range,
			Speed:   w.Speed,
		}
		if weapon.Attacks == 0 {
			weapon.Attacks = 1
		}
		for _, b := range w.DamageBonus {
			a, err := ParseAttribute(b.Attribute)
			if err != nil {
				return nil, err
			}
			weapon.DamageBonus = append(weapon.DamageBonus, DamageBonus{Attribute: a, Bonus: b.Bonus})
		}
		d.Weapons = append(d.Weapons, weapon)
	}
	return d, nil
}

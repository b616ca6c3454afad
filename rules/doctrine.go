package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Doctrine is the tunable posture of the example bot. The compiler maps it
// to concrete rule parameters.
type Doctrine struct {
	Name         string  `yaml:"name"`
	WorkerLimit  int     `yaml:"worker_limit"`
	RetreatBelow float64 `yaml:"retreat_below"` // health fraction that sends a unit back
	ReturnAbove  float64 `yaml:"return_above"`  // health fraction that lets it fight again
	FleeMargin   float64 `yaml:"flee_margin"`   // extra distance counted as threatened while on cooldown
	LowerDepots  bool    `yaml:"lower_depots"`
}

// DefaultDoctrine mirrors a light harassment opener: saturate one base,
// pull units back at half health.
func DefaultDoctrine() Doctrine {
	return Doctrine{
		Name:         "harass",
		WorkerLimit:  22,
		RetreatBelow: 0.5,
		ReturnAbove:  0.75,
		FleeMargin:   0.5,
		LowerDepots:  true,
	}
}

// LoadDoctrine reads a YAML doctrine. Fields the file leaves out keep
// their default values.
func LoadDoctrine(path string) (Doctrine, error) {
	d := DefaultDoctrine()
	b, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("read doctrine: %w", err)
	}
	if err := yaml.Unmarshal(b, &d); err != nil {
		return d, fmt.Errorf("parse doctrine: %w", err)
	}
	d.Validate()
	return d, nil
}

// Validate clamps all values to their valid ranges.
func (d *Doctrine) Validate() {
	d.WorkerLimit = clampInt(d.WorkerLimit, 0, 90)
	d.RetreatBelow = clamp(d.RetreatBelow, 0, 1)
	d.ReturnAbove = clamp(d.ReturnAbove, d.RetreatBelow, 1)
	d.FleeMargin = clamp(d.FleeMargin, 0, 5)
}

// clampInt restricts v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package rules

import "fmt"

// CompileDoctrine generates a complete rule set from a doctrine.
// Conditions interpolate validated doctrine values with fmt.Sprintf, so
// every generated source compiles.
func CompileDoctrine(d Doctrine) []*Rule {
	d.Validate()
	var rules []*Rule

	rules = append(rules, &Rule{
		Name:         "army-micro",
		Priority:     900,
		Category:     "army",
		Exclusive:    true,
		ConditionSrc: `HasRole("army") && len(Targets()) > 0`,
		Action:       ArmyMicro(float32(d.RetreatBelow), float32(d.ReturnAbove), float32(d.FleeMargin)),
	})

	rules = append(rules, &Rule{
		Name:         "train-worker",
		Priority:     600,
		Category:     "production",
		Exclusive:    false,
		ConditionSrc: fmt.Sprintf(`len(IdleTownhalls()) > 0 && WorkerCount() < %d`, d.WorkerLimit),
		Action:       ActionTrainWorkers(d.WorkerLimit),
	})

	rules = append(rules, &Rule{
		Name:         "gather-idle-workers",
		Priority:     500,
		Category:     "economy",
		Exclusive:    true,
		ConditionSrc: `len(IdleWorkers()) > 0 && HasRole("mineral")`,
		Action:       ActionGatherIdleWorkers,
	})

	if d.LowerDepots {
		rules = append(rules, &Rule{
			Name:         "lower-depots",
			Priority:     100,
			Category:     "structures",
			Exclusive:    false,
			ConditionSrc: `HasRole("depot")`,
			Action:       ActionLowerDepots,
		})
	}

	return rules
}

// DefaultRules is the rule set of the default doctrine.
func DefaultRules() []*Rule {
	return CompileDoctrine(DefaultDoctrine())
}

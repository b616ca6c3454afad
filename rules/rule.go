package rules

import (
	"github.com/expr-lang/expr/vm"
)

// ActionFunc issues commands through the units in env when a rule's
// condition is true. Commands land in the shared Commander; nothing is sent
// from here.
type ActionFunc func(env RuleEnv) error

// Rule is the atomic unit of bot behavior: a condition → action pair.
// The engine evaluates rules by priority and uses Category + Exclusive
// to keep two rules from ordering the same units in one tick.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Category     string      // grouping for exclusive semantics
	Exclusive    bool        // if true, blocks lower-priority rules in same category
	ConditionSrc string      // expr source
	program      *vm.Program // compiled bytecode
	Action       ActionFunc
}

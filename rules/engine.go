package rules

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// diagInterval throttles diagnostics, in game loops (about ten seconds at
// normal speed).
const diagInterval = 224

// Engine runs compiled rules against the tick state.
// Rules fire in priority order; exclusive rules block lower-priority rules
// in the same category, preventing conflicting orders on the same units.
type Engine struct {
	mu       sync.RWMutex
	rules    []*Rule
	Memory   map[string]any
	memMu    sync.Mutex // guards all reads/writes to Memory
	lastDiag uint32
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by priority.
func NewEngine(rules []*Rule) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{
		rules:  compiled,
		Memory: make(map[string]any),
	}, nil
}

// Evaluate runs all rules against the state and returns the names of the
// rules that fired, in firing order. Actions only queue commands; the caller
// drains them afterwards. A failing condition or action is logged and does
// not stop the tick.
func (e *Engine) Evaluate(state State) ([]string, error) {
	e.mu.RLock()
	rules := e.rules
	e.mu.RUnlock()

	e.memMu.Lock()
	defer e.memMu.Unlock()

	env := RuleEnv{State: state, Memory: e.Memory}
	updateSquads(env)
	fired := make(map[string]bool) // category → exclusive rule already fired

	var ran []string
	for _, r := range rules {
		if fired[r.Category] {
			continue
		}

		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}

		match, ok := result.(bool)
		if !ok || !match {
			continue
		}

		ran = append(ran, r.Name)
		slog.Debug("rule fired", "rule", r.Name, "priority", r.Priority, "category", r.Category)

		if err := r.Action(env); err != nil {
			slog.Error("rule action error", "rule", r.Name, "error", err)
		}

		if r.Exclusive {
			fired[r.Category] = true
		}
	}

	if len(ran) == 0 {
		e.logIdleDiagnostics(env)
	}

	return ran, nil
}

// Swap atomically replaces the rule set. Compiles first; if compilation
// fails the old rules remain active. Squads are cleared because the new
// rules may treat them differently.
func (e *Engine) Swap(newRules []*Rule) error {
	compiled, err := compileRules(newRules)
	if err != nil {
		return err
	}
	names := make([]string, len(compiled))
	for i, r := range compiled {
		names[i] = r.Name
	}
	e.mu.Lock()
	e.rules = compiled
	e.mu.Unlock()

	e.memMu.Lock()
	delete(e.Memory, "squads")
	e.memMu.Unlock()
	slog.Info("rule set swapped", "count", len(compiled), "rules", names)
	return nil
}

// RuleNames lists the active rules in evaluation order.
func (e *Engine) RuleNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

// logIdleDiagnostics helps debug "why isn't the bot doing anything?" when
// zero rules fire. Throttled to avoid log spam.
func (e *Engine) logIdleDiagnostics(env RuleEnv) {
	if env.State.Tick < e.lastDiag+diagInterval && e.lastDiag != 0 {
		return
	}
	e.lastDiag = max(env.State.Tick, 1)

	slog.Warn("idle diagnostics",
		"tick", env.State.Tick,
		"units", len(env.State.Units),
		"workers", env.WorkerCount(),
		"idleWorkers", len(env.IdleWorkers()),
		"army", len(env.Army()),
		"enemiesVisible", env.EnemiesVisible(),
	)
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}

package rules

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/nstehr/vimy/vimy-sc2/unit"
)

// Filter is a unit predicate compiled from an expr expression. The
// expression sees the unit's fields and methods directly, e.g.
// `IsWorker() && IsIdle()` or `IsEnemy() && !Flying`.
type Filter struct {
	Src     string
	program *vm.Program
}

func CompileFilter(src string) (*Filter, error) {
	prog, err := expr.Compile(src, expr.Env(&unit.Unit{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", src, err)
	}
	return &Filter{Src: src, program: prog}, nil
}

// MustCompileFilter is CompileFilter for static sources.
func MustCompileFilter(src string) *Filter {
	f, err := CompileFilter(src)
	if err != nil {
		panic(err)
	}
	return f
}

// Match runs the filter on u. A runtime error counts as no match.
func (f *Filter) Match(u *unit.Unit) bool {
	out, err := vm.Run(f.program, u)
	if err != nil {
		slog.Warn("filter error", "filter", f.Src, "tag", u.Tag, "error", err)
		return false
	}
	ok, _ := out.(bool)
	return ok
}

// Apply keeps the units f matches, in order.
func (f *Filter) Apply(units []*unit.Unit) []*unit.Unit {
	var out []*unit.Unit
	for _, u := range units {
		if f.Match(u) {
			out = append(out, u)
		}
	}
	return out
}

// roles is the static registry of logical role names to unit filters.
// Conditions refer to roles by name so the same rule works for every race.
var roles = map[string]*Filter{
	"worker":     MustCompileFilter(`IsMine() && IsWorker()`),
	"townhall":   MustCompileFilter(`IsMine() && IsTownhall()`),
	"army":       MustCompileFilter(`IsMine() && !IsWorker() && !IsStructure() && CanAttack()`),
	"structure":  MustCompileFilter(`IsMine() && IsStructure()`),
	"enemy":      MustCompileFilter(`IsEnemy() && !IsSnapshot()`),
	"threat":     MustCompileFilter(`IsEnemy() && !IsSnapshot() && CanAttack() && CanBeAttacked()`),
	"mineral":    MustCompileFilter(`IsMineral()`),
	"depot":      MustCompileFilter(`IsMine() && Name() == "SupplyDepot" && IsReady()`),
	"idleWorker": MustCompileFilter(`IsMine() && IsWorker() && IsIdle()`),
	"idleHall":   MustCompileFilter(`IsMine() && IsTownhall() && IsReady() && IsAlmostIdle()`),
}

// RoleNames lists the registered roles, sorted.
func RoleNames() []string {
	names := make([]string, 0, len(roles))
	for name := range roles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

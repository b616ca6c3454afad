package rules

import (
	"github.com/nstehr/vimy/vimy-sc2/model"
	"github.com/nstehr/vimy/vimy-sc2/unit"
)

// State is one tick's view: every snapshot built for the tick plus the
// context they share.
type State struct {
	Tick   uint32
	Shared *unit.Shared
	Units  []*unit.Unit
}

// RuleEnv wraps the tick state and exposes helper methods callable from expr expressions.
type RuleEnv struct {
	State  State
	Memory map[string]any
}

func (e RuleEnv) Tick() int { return int(e.State.Tick) }

// Role returns the units matching the named role, nil for unknown roles.
func (e RuleEnv) Role(name string) []*unit.Unit {
	f, ok := roles[name]
	if !ok {
		return nil
	}
	return f.Apply(e.State.Units)
}

func (e RuleEnv) RoleCount(name string) int { return len(e.Role(name)) }

func (e RuleEnv) HasRole(name string) bool { return e.RoleCount(name) > 0 }

// Select applies an ad-hoc filter expression, nil if it does not compile.
func (e RuleEnv) Select(src string) []*unit.Unit {
	f, err := CompileFilter(src)
	if err != nil {
		return nil
	}
	return f.Apply(e.State.Units)
}

func (e RuleEnv) IdleWorkers() []*unit.Unit   { return e.Role("idleWorker") }
func (e RuleEnv) IdleTownhalls() []*unit.Unit { return e.Role("idleHall") }
func (e RuleEnv) Army() []*unit.Unit          { return e.Role("army") }
func (e RuleEnv) Enemies() []*unit.Unit       { return e.Role("enemy") }
func (e RuleEnv) MineralFields() []*unit.Unit { return e.Role("mineral") }

func (e RuleEnv) WorkerCount() int { return e.RoleCount("worker") }

func (e RuleEnv) EnemiesVisible() bool { return e.HasRole("enemy") }

// Targets are the enemies the army should fight: ground units that can
// shoot back if any exist, else every visible ground enemy.
func (e RuleEnv) Targets() []*unit.Unit {
	var ground, attackers []*unit.Unit
	for _, u := range e.Enemies() {
		if u.Flying {
			continue
		}
		ground = append(ground, u)
		if u.CanAttackGround() {
			attackers = append(attackers, u)
		}
	}
	if len(attackers) > 0 {
		return attackers
	}
	return ground
}

// closest returns the unit in units nearest to p, nil if units is empty.
func closest(units []*unit.Unit, p model.Point2) *unit.Unit {
	var best *unit.Unit
	var bestDist float32
	for _, u := range units {
		d := model.DistanceSquared(u.Position, p)
		if best == nil || d < bestDist {
			best, bestDist = u, d
		}
	}
	return best
}

package rules

import (
	"log/slog"

	"github.com/nstehr/vimy/vimy-sc2/action"
	"github.com/nstehr/vimy/vimy-sc2/ids"
	"github.com/nstehr/vimy/vimy-sc2/model"
	"github.com/nstehr/vimy/vimy-sc2/unit"
)

// ActionTrainWorkers queues one worker per idle townhall until limit
// workers exist, counting the ones about to be queued.
func ActionTrainWorkers(limit int) ActionFunc {
	return func(env RuleEnv) error {
		worker := env.State.Shared.RaceValues().Worker
		count := env.WorkerCount()
		for _, hall := range env.IdleTownhalls() {
			if count >= limit {
				break
			}
			hall.Train(worker, false)
			count++
		}
		return nil
	}
}

// ActionGatherIdleWorkers sends every idle worker to the mineral field
// closest to it.
func ActionGatherIdleWorkers(env RuleEnv) error {
	minerals := env.MineralFields()
	for _, w := range env.IdleWorkers() {
		m := closest(minerals, w.Position)
		if m == nil {
			return nil
		}
		slog.Debug("sending idle worker to minerals", "worker", w.Tag, "mineral", m.Tag)
		w.Gather(m.Tag, false)
	}
	return nil
}

// ActionLowerDepots lowers every finished supply depot so units can walk
// over it.
func ActionLowerDepots(env RuleEnv) error {
	for _, d := range env.Role("depot") {
		d.UseAbility(ids.MorphSupplyDepotLower, false)
	}
	return nil
}

// ArmyMicro fights the closest target while healthy and kites while the
// weapon reloads. Units below retreatBelow health join the retreat squad
// and stay out of fights until they heal above returnAbove.
func ArmyMicro(retreatBelow, returnAbove, fleeMargin float32) ActionFunc {
	return func(env RuleEnv) error {
		updateRetreat(env, retreatBelow, returnAbove)
		retreating := getSquads(env.Memory)[squadRetreat]
		targets := env.Targets()

		for _, u := range env.Army() {
			target := closest(targets, u.Position)
			if target == nil {
				return nil
			}
			isRetreating := retreating != nil && retreating.Has(u.Tag)

			if isRetreating || u.OnCooldown() {
				margin := fleeMargin
				if isRetreating {
					margin = 2
				}
				if threat := closest(threatsTo(u, targets, margin), u.Position); threat != nil {
					u.MoveTo(action.Pos(model.TowardsPoint(u.Position, threat.Position, -u.Speed())), false)
				} else if !isRetreating && !u.InRange(target, 0) {
					u.MoveTo(action.Pos(target.Position), false)
				}
				continue
			}

			if weakest := weakestInRange(u, targets); weakest != nil {
				u.Attack(action.Tag(weakest.Tag), false)
			} else {
				u.MoveTo(action.Pos(target.Position), false)
			}
		}
		return nil
	}
}

// threatsTo are the targets that could reach u within margin plus their
// own speed.
func threatsTo(u *unit.Unit, targets []*unit.Unit, margin float32) []*unit.Unit {
	var out []*unit.Unit
	for _, t := range targets {
		if t.InRange(u, t.Speed()+margin) {
			out = append(out, t)
		}
	}
	return out
}

// weakestInRange is the target in u's range with the fewest hit points.
// Targets with unknown hit points are skipped.
func weakestInRange(u *unit.Unit, targets []*unit.Unit) *unit.Unit {
	var best *unit.Unit
	var bestHits uint32
	for _, t := range targets {
		if !u.InRange(t, 0) {
			continue
		}
		hits, ok := t.Hits()
		if !ok {
			continue
		}
		if best == nil || hits < bestHits {
			best, bestHits = t, hits
		}
	}
	return best
}

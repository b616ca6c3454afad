package unit

import (
	"slices"

	"github.com/nstehr/vimy/vimy-sc2/action"
	"github.com/nstehr/vimy/vimy-sc2/gamedata"
	"github.com/nstehr/vimy/vimy-sc2/ids"
	"github.com/nstehr/vimy/vimy-sc2/model"
)

// almostDone is the order progress at which a slot counts as nearly free.
const almostDone = 0.95

// Order is one entry of a unit's order queue.
type Order struct {
	Ability  ids.AbilityID
	Target   action.Target
	Progress float32
}

func (u *Unit) IsIdle() bool { return len(u.Orders) == 0 }

// IsAlmostIdle is true for an idle unit or one whose only order is about
// to finish.
func (u *Unit) IsAlmostIdle() bool {
	return u.IsIdle() || (len(u.Orders) == 1 && u.Orders[0].Progress >= almostDone)
}

// IsUnused is IsIdle for production, counting both slots of a reactor.
func (u *Unit) IsUnused() bool {
	if u.HasReactor() {
		return len(u.Orders) < 2
	}
	return u.IsIdle()
}

// IsAlmostUnused is IsAlmostIdle for production, counting both slots of a
// reactor.
func (u *Unit) IsAlmostUnused() bool {
	if u.HasReactor() {
		return len(u.Orders) < 2 ||
			(len(u.Orders) == 2 && slices.ContainsFunc(u.Orders, func(o Order) bool {
				return o.Progress >= almostDone
			}))
	}
	return u.IsAlmostIdle()
}

// Target is the target of the current order, None when idle.
func (u *Unit) Target() action.Target {
	if u.IsIdle() {
		return action.None()
	}
	return u.Orders[0].Target
}

func (u *Unit) TargetPos() (model.Point2, bool) { return u.Target().Pos() }
func (u *Unit) TargetTag() (uint64, bool)       { return u.Target().Tag() }

// OrderedAbility is the ability of the current order.
func (u *Unit) OrderedAbility() (ids.AbilityID, bool) {
	if u.IsIdle() {
		return 0, false
	}
	return u.Orders[0].Ability, true
}

func (u *Unit) IsUsing(a ids.AbilityID) bool {
	return !u.IsIdle() && u.Orders[0].Ability == a
}

func (u *Unit) IsUsingAny(abilities ...ids.AbilityID) bool {
	return !u.IsIdle() && slices.Contains(abilities, u.Orders[0].Ability)
}

func (u *Unit) IsAttacking() bool {
	return !u.IsIdle() && gamedata.AttackAbilities[u.Orders[0].Ability]
}

func (u *Unit) IsMoving() bool     { return u.IsUsing(ids.MoveMove) }
func (u *Unit) IsPatrolling() bool { return u.IsUsing(ids.Patrol) }

func (u *Unit) IsRepairing() bool {
	return !u.IsIdle() && gamedata.RepairAbilities[u.Orders[0].Ability]
}

func (u *Unit) IsGathering() bool { return u.IsUsing(ids.HarvestGather) }
func (u *Unit) IsReturning() bool { return u.IsUsing(ids.HarvestReturn) }

// IsCollecting covers both legs of a mining trip.
func (u *Unit) IsCollecting() bool {
	return u.IsUsingAny(ids.HarvestGather, ids.HarvestReturn)
}

func (u *Unit) IsConstructing() bool {
	return !u.IsIdle() && u.Orders[0].Ability.IsConstructing()
}

func (u *Unit) IsMakingAddon() bool {
	return u.IsMakingTechlab() || u.IsMakingReactor()
}

func (u *Unit) IsMakingTechlab() bool {
	return !u.IsIdle() && gamedata.TechlabAbilities[u.Orders[0].Ability]
}

func (u *Unit) IsMakingReactor() bool {
	return !u.IsIdle() && gamedata.ReactorAbilities[u.Orders[0].Ability]
}

package unit

import (
	"log/slog"

	"github.com/nstehr/vimy/vimy-sc2/action"
	"github.com/nstehr/vimy/vimy-sc2/gamedata"
	"github.com/nstehr/vimy/vimy-sc2/ids"
	"github.com/nstehr/vimy/vimy-sc2/model"
)

// Command queues ability against target for this unit. Unless queue is set
// or AllowSpam is on, re-issuing the busy unit's current order is dropped.
func (u *Unit) Command(ability ids.AbilityID, target action.Target, queue bool) {
	if !(queue || u.AllowSpam || u.IsIdle()) {
		current := u.Orders[0]
		if current.Ability == ability && current.Target == target {
			return
		}
	}
	u.shared.Commander().Add(action.Command{Ability: ability, Target: target, Queue: queue}, u.Tag)
	slog.Debug("command queued", "tag", u.Tag, "ability", ability, "target", target, "queue", queue)
}

func (u *Unit) UseAbility(ability ids.AbilityID, queue bool) {
	u.Command(ability, action.None(), queue)
}

func (u *Unit) Smart(target action.Target, queue bool) {
	u.Command(ids.Smart, target, queue)
}

func (u *Unit) Attack(target action.Target, queue bool) {
	u.Command(ids.Attack, target, queue)
}

func (u *Unit) MoveTo(target action.Target, queue bool) {
	u.Command(ids.MoveMove, target, queue)
}

func (u *Unit) HoldPosition(queue bool) {
	u.Command(ids.HoldPosition, action.None(), queue)
}

// Gather sends a worker to mine the resource with the given tag.
func (u *Unit) Gather(resource uint64, queue bool) {
	u.Command(ids.HarvestGather, action.Tag(resource), queue)
}

func (u *Unit) ReturnResource(queue bool) {
	u.Command(ids.HarvestReturn, action.None(), queue)
}

func (u *Unit) Stop(queue bool) {
	u.Command(ids.Stop, action.None(), queue)
}

func (u *Unit) Patrol(target action.Target, queue bool) {
	u.Command(ids.Patrol, target, queue)
}

func (u *Unit) Repair(repairable uint64, queue bool) {
	u.Command(ids.EffectRepair, action.Tag(repairable), queue)
}

func (u *Unit) CancelBuilding(queue bool) {
	u.Command(ids.CancelBuildInProgress, action.None(), queue)
}

// CancelQueue drops the last queued production item.
func (u *Unit) CancelQueue(queue bool) {
	ability := ids.CancelQueue5
	if u.IsTownhall() {
		ability = ids.CancelQueueCancelToSelection
	}
	u.Command(ability, action.None(), queue)
}

// BuildGas orders a worker to build the race's gas structure on a geyser.
// Unknown types are ignored.
func (u *Unit) BuildGas(geyser uint64, queue bool) {
	gas := u.shared.RaceValues().Gas
	d, ok := u.shared.Data().Unit(gas)
	if !ok || d.Ability == nil {
		slog.Debug("no build ability for gas structure", "tag", u.Tag, "type", gas)
		return
	}
	u.Command(*d.Ability, action.Tag(geyser), queue)
}

// Build orders a worker to place structure at pos.
func (u *Unit) Build(structure ids.UnitTypeID, pos model.Point2, queue bool) {
	d, ok := u.shared.Data().Unit(structure)
	if !ok || d.Ability == nil {
		slog.Debug("no build ability", "tag", u.Tag, "type", structure)
		return
	}
	u.Command(*d.Ability, action.Pos(pos), queue)
}

// Train queues production of t.
func (u *Unit) Train(t ids.UnitTypeID, queue bool) {
	d, ok := u.shared.Data().Unit(t)
	if !ok || d.Ability == nil {
		slog.Debug("no train ability", "tag", u.Tag, "type", t)
		return
	}
	u.Command(*d.Ability, action.None(), queue)
}

// Research starts up. Vehicle and ship plating share one ability the
// upgrade table does not record, so overrides are consulted first.
func (u *Unit) Research(up ids.UpgradeID, queue bool) {
	if ability, ok := gamedata.ResearchOverrides[up]; ok {
		u.Command(ability, action.None(), queue)
		return
	}
	d, ok := u.shared.Data().Upgrade(up)
	if !ok {
		slog.Debug("no research ability", "tag", u.Tag, "upgrade", up)
		return
	}
	u.Command(d.Ability, action.None(), queue)
}

// WarpIn warps t in at pos from a warp gate. Warp-ins are never queued.
func (u *Unit) WarpIn(t ids.UnitTypeID, pos model.Point2) {
	ability, ok := gamedata.WarpGateAbilities[t]
	if !ok {
		slog.Debug("no warp-in ability", "tag", u.Tag, "type", t)
		return
	}
	u.Command(ability, action.Pos(pos), false)
}

// Package action holds the outgoing command model: order targets, the
// command key and the per-tick Commander that batches unit orders.
package action

import (
	"fmt"

	"github.com/nstehr/vimy/vimy-sc2/ids"
	"github.com/nstehr/vimy/vimy-sc2/model"
)

// TargetKind discriminates the three Target shapes.
type TargetKind uint8

const (
	TargetNone TargetKind = iota
	TargetPos
	TargetTag
)

func (k TargetKind) String() string {
	switch k {
	case TargetPos:
		return "pos"
	case TargetTag:
		return "tag"
	}
	return "none"
}

// Target is what an order points at: nothing, a map position or another
// unit. The zero value is None. Targets are comparable so they can be part
// of a map key; only the field matching the kind is ever populated.
type Target struct {
	kind TargetKind
	pos  model.Point2
	tag  uint64
}

func None() Target                { return Target{} }
func Pos(p model.Point2) Target   { return Target{kind: TargetPos, pos: p} }
func Tag(tag uint64) Target       { return Target{kind: TargetTag, tag: tag} }
func (t Target) Kind() TargetKind { return t.kind }
func (t Target) IsNone() bool     { return t.kind == TargetNone }

// Pos returns the position if the target is a position.
func (t Target) Pos() (model.Point2, bool) {
	return t.pos, t.kind == TargetPos
}

// Tag returns the unit tag if the target is a unit.
func (t Target) Tag() (uint64, bool) {
	return t.tag, t.kind == TargetTag
}

func (t Target) String() string {
	switch t.kind {
	case TargetPos:
		return fmt.Sprintf("pos(%.2f,%.2f)", t.pos.X(), t.pos.Y())
	case TargetTag:
		return fmt.Sprintf("tag(%d)", t.tag)
	}
	return "none"
}

// Command is the batching key: every unit given the same ability, target
// and queue flag in a tick is sent as one action.
type Command struct {
	Ability ids.AbilityID
	Target  Target
	Queue   bool
}

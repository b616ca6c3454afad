package ipc

import (
	"github.com/nstehr/vimy/vimy-sc2/action"
)

// NewActionsMessage converts drained command buckets into their wire form,
// keeping the order of batches.
func NewActionsMessage(tick uint32, batches []action.Batch) ActionsMessage {
	msg := ActionsMessage{Tick: tick, Actions: make([]ActionBatch, 0, len(batches))}
	for _, b := range batches {
		ab := ActionBatch{
			Ability:  uint32(b.Command.Ability),
			Queue:    b.Command.Queue,
			UnitTags: b.Tags,
		}
		if p, ok := b.Command.Target.Pos(); ok {
			ab.TargetPos = &[2]float32{p.X(), p.Y()}
		}
		if tag, ok := b.Command.Target.Tag(); ok {
			ab.TargetTag = &tag
		}
		msg.Actions = append(msg.Actions, ab)
	}
	return msg
}

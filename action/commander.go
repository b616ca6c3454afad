package action

import (
	"cmp"
	"slices"
	"sync"
)

// Commander accumulates the commands issued during one tick. Units enqueue
// into it concurrently through their shared context; the transport drains it
// once per tick.
type Commander struct {
	mu       sync.RWMutex
	commands map[Command][]uint64
}

func NewCommander() *Commander {
	return &Commander{commands: make(map[Command][]uint64)}
}

// Add appends tag to the bucket for cmd, creating the bucket if needed.
// The lock is held only for the append.
func (c *Commander) Add(cmd Command, tag uint64) {
	c.mu.Lock()
	if c.commands == nil {
		c.commands = make(map[Command][]uint64)
	}
	c.commands[cmd] = append(c.commands[cmd], tag)
	c.mu.Unlock()
}

// Drain returns every bucket and leaves the Commander empty.
func (c *Commander) Drain() map[Command][]uint64 {
	c.mu.Lock()
	out := c.commands
	c.commands = make(map[Command][]uint64)
	c.mu.Unlock()
	return out
}

// Len is the number of distinct buckets pending.
func (c *Commander) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.commands)
}

// Pending returns a copy of the tags queued under cmd.
func (c *Commander) Pending(cmd Command) []uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.commands[cmd])
}

// Batch is one drained bucket.
type Batch struct {
	Command Command
	Tags    []uint64
}

// Batches flattens a drained map into a deterministic order: by ability,
// then queue flag, then target kind and value. Tags keep enqueue order.
func Batches(m map[Command][]uint64) []Batch {
	out := make([]Batch, 0, len(m))
	for cmd, tags := range m {
		out = append(out, Batch{Command: cmd, Tags: tags})
	}
	slices.SortFunc(out, func(a, b Batch) int {
		x, y := a.Command, b.Command
		if c := cmp.Compare(x.Ability, y.Ability); c != 0 {
			return c
		}
		if x.Queue != y.Queue {
			if !x.Queue {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(x.Target.kind, y.Target.kind); c != 0 {
			return c
		}
		if c := cmp.Compare(x.Target.tag, y.Target.tag); c != 0 {
			return c
		}
		if c := cmp.Compare(x.Target.pos.X(), y.Target.pos.X()); c != 0 {
			return c
		}
		return cmp.Compare(x.Target.pos.Y(), y.Target.pos.Y())
	})
	return out
}

package agent

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/nstehr/vimy/vimy-sc2/ids"
	"github.com/nstehr/vimy/vimy-sc2/unit"
)

// EventKind identifies the category of a game event detected between two
// ticks.
type EventKind string

const (
	EventUnitLost        EventKind = "unit_lost"
	EventStructureLost   EventKind = "structure_lost"
	EventFirstContact    EventKind = "first_contact"
	EventUnderAttack     EventKind = "under_attack"
	EventUpgradeComplete EventKind = "upgrade_complete"
)

// Event represents a significant game event detected by diffing consecutive
// ticks. Events are logged; they carry enough detail to be read on their own.
type Event struct {
	Kind   EventKind
	Tick   uint32
	Tag    uint64 // 0 when the event is not about one unit
	Detail string
}

// stateSnapshot captures the diffable fields of a tick.
type stateSnapshot struct {
	mine        map[uint64]string // tag → type name for owned units
	structures  map[uint64]bool
	enemiesSeen bool
	upgrades    map[ids.UpgradeID]bool
}

func takeSnapshot(units []*unit.Unit, upgrades []ids.UpgradeID) stateSnapshot {
	s := stateSnapshot{
		mine:       make(map[uint64]string),
		structures: make(map[uint64]bool),
		upgrades:   make(map[ids.UpgradeID]bool, len(upgrades)),
	}
	for _, u := range units {
		switch {
		case u.IsMine():
			s.mine[u.Tag] = typeName(u)
			if u.IsStructure() {
				s.structures[u.Tag] = true
			}
		case u.IsEnemy():
			s.enemiesSeen = true
		}
	}
	for _, up := range upgrades {
		s.upgrades[up] = true
	}
	return s
}

func typeName(u *unit.Unit) string {
	if n := u.Name(); n != "" {
		return n
	}
	return fmt.Sprintf("type %d", u.Type)
}

// detectEvents compares cur against prev. The first tick has nothing to
// compare and yields no events. enemiesEverSeen keeps first contact from
// firing again after the enemy drops out of sight.
func detectEvents(tick uint32, units []*unit.Unit, prev *stateSnapshot, cur stateSnapshot, enemiesEverSeen bool) []Event {
	if prev == nil {
		return nil
	}
	var events []Event

	for tag, name := range prev.mine {
		if _, alive := cur.mine[tag]; alive {
			continue
		}
		kind := EventUnitLost
		if prev.structures[tag] {
			kind = EventStructureLost
		}
		events = append(events, Event{Kind: kind, Tick: tick, Tag: tag, Detail: name + " destroyed"})
	}

	if cur.enemiesSeen && !enemiesEverSeen {
		events = append(events, Event{Kind: EventFirstContact, Tick: tick, Detail: "enemy units sighted"})
	}

	for _, u := range units {
		if u.IsMine() && u.IsStructure() && u.IsAttacked() {
			events = append(events, Event{
				Kind:   EventUnderAttack,
				Tick:   tick,
				Tag:    u.Tag,
				Detail: fmt.Sprintf("%s lost %d hit points", typeName(u), u.DamageTaken()),
			})
		}
	}

	for up := range cur.upgrades {
		if !prev.upgrades[up] {
			events = append(events, Event{Kind: EventUpgradeComplete, Tick: tick, Detail: fmt.Sprintf("upgrade %d", up)})
		}
	}

	slices.SortFunc(events, func(a, b Event) int {
		if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Tag, b.Tag); c != 0 {
			return c
		}
		return cmp.Compare(a.Detail, b.Detail)
	})
	return events
}

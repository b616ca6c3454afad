package rules

import "github.com/nstehr/vimy/vimy-sc2/unit"

// Squad gives units persistent identity across ticks. Snapshots are rebuilt
// every tick, so membership is kept by tag in engine memory.
type Squad struct {
	Name string
	Tags []uint64
}

func (s *Squad) Has(tag uint64) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (s *Squad) add(tag uint64) {
	if !s.Has(tag) {
		s.Tags = append(s.Tags, tag)
	}
}

func (s *Squad) remove(tag uint64) {
	kept := s.Tags[:0]
	for _, t := range s.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	s.Tags = kept
}

const squadRetreat = "retreat"

func getSquads(memory map[string]any) map[string]*Squad {
	if v, ok := memory["squads"].(map[string]*Squad); ok {
		return v
	}
	return make(map[string]*Squad)
}

// GetSquads is the public accessor, for logging and tests.
func GetSquads(memory map[string]any) map[string]*Squad {
	return getSquads(memory)
}

func getSquad(memory map[string]any, name string) *Squad {
	squads := getSquads(memory)
	sq, ok := squads[name]
	if !ok {
		sq = &Squad{Name: name}
		squads[name] = sq
		memory["squads"] = squads
	}
	return sq
}

// updateSquads removes dead units each tick. Squads with no survivors
// are dissolved.
func updateSquads(env RuleEnv) {
	squads := getSquads(env.Memory)
	alive := makeTagSet(env.State.Units)

	for name, sq := range squads {
		kept := sq.Tags[:0]
		for _, tag := range sq.Tags {
			if alive[tag] {
				kept = append(kept, tag)
			}
		}
		sq.Tags = kept

		if len(sq.Tags) == 0 {
			delete(squads, name)
		}
	}
	env.Memory["squads"] = squads
}

// updateRetreat moves army units in and out of the retreat squad. A unit
// joins below enter and leaves above leave, so it does not flap around a
// single threshold.
func updateRetreat(env RuleEnv, enter, leave float32) {
	sq := getSquad(env.Memory, squadRetreat)
	for _, u := range env.Army() {
		pct, ok := u.HealthPercentage()
		if !ok {
			continue
		}
		switch {
		case sq.Has(u.Tag) && pct > leave:
			sq.remove(u.Tag)
		case !sq.Has(u.Tag) && pct < enter:
			sq.add(u.Tag)
		}
	}
	if len(sq.Tags) == 0 {
		delete(getSquads(env.Memory), squadRetreat)
	}
}

func makeTagSet(units []*unit.Unit) map[uint64]bool {
	s := make(map[uint64]bool, len(units))
	for _, u := range units {
		s[u.Tag] = true
	}
	return s
}

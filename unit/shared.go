package unit

import (
	"maps"
	"slices"
	"sync"

	"github.com/nstehr/vimy/vimy-sc2/action"
	"github.com/nstehr/vimy/vimy-sc2/gamedata"
	"github.com/nstehr/vimy/vimy-sc2/ids"
	"github.com/nstehr/vimy/vimy-sc2/model"
)

// Shared is the tick-scoped state every Unit of a session points at.
// The agent refreshes it once per tick before building snapshots.
//
// Mutable members are guarded by mu. Each reader and writer takes the lock
// for exactly one lookup or mutation and never calls back into a Unit while
// holding it, so a decision routine can freely mix reads and commands.
type Shared struct {
	data      *gamedata.GameData
	race      gamedata.Race
	commander *action.Commander

	mu            sync.RWMutex
	upgrades      map[ids.UpgradeID]struct{}
	enemyUpgrades map[ids.UpgradeID]struct{}
	maxCooldowns  map[ids.UnitTypeID]float32
	lastHealth    map[uint64]uint32
	abilities     map[uint64][]ids.AbilityID
	techlabs      map[uint64]struct{}
	reactors      map[uint64]struct{}
	creep         *model.PixelMap
	visibility    *model.VisibilityMap
	gameStep      uint32
}

// NewShared returns an empty context over the given reference tables.
// A nil data set is allowed; every table lookup then misses.
func NewShared(data *gamedata.GameData, race gamedata.Race) *Shared {
	return &Shared{
		data:          data,
		race:          race,
		commander:     action.NewCommander(),
		upgrades:      make(map[ids.UpgradeID]struct{}),
		enemyUpgrades: make(map[ids.UpgradeID]struct{}),
		maxCooldowns:  make(map[ids.UnitTypeID]float32),
		lastHealth:    make(map[uint64]uint32),
		abilities:     make(map[uint64][]ids.AbilityID),
		techlabs:      make(map[uint64]struct{}),
		reactors:      make(map[uint64]struct{}),
		gameStep:      1,
	}
}

func (s *Shared) Data() *gamedata.GameData     { return s.data }
func (s *Shared) Race() gamedata.Race          { return s.race }
func (s *Shared) Commander() *action.Commander { return s.commander }

// RaceValues are the basics of the bot's own race.
func (s *Shared) RaceValues() gamedata.RaceValues {
	return gamedata.RaceValuesFor(s.race)
}

func toSet[K comparable](keys []K) map[K]struct{} {
	out := make(map[K]struct{}, len(keys))
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out
}

// SetUpgrades replaces both upgrade sets.
func (s *Shared) SetUpgrades(own, enemy []ids.UpgradeID) {
	o, e := toSet(own), toSet(enemy)
	s.mu.Lock()
	s.upgrades, s.enemyUpgrades = o, e
	s.mu.Unlock()
}

// HasUpgrade reports whether the own (mine) or enemy upgrade set holds id.
func (s *Shared) HasUpgrade(mine bool, id ids.UpgradeID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := s.enemyUpgrades
	if mine {
		set = s.upgrades
	}
	_, ok := set[id]
	return ok
}

// HasAnyUpgrade reports whether the chosen upgrade set is non-empty.
func (s *Shared) HasAnyUpgrade(mine bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if mine {
		return len(s.upgrades) > 0
	}
	return len(s.enemyUpgrades) > 0
}

// Upgrades returns a sorted copy of the chosen upgrade set.
func (s *Shared) Upgrades(mine bool) []ids.UpgradeID {
	s.mu.RLock()
	set := s.enemyUpgrades
	if mine {
		set = s.upgrades
	}
	out := slices.Collect(maps.Keys(set))
	s.mu.RUnlock()
	slices.Sort(out)
	return out
}

// ObserveCooldown records cd for the type if it beats the cached maximum.
// The cache only grows.
func (s *Shared) ObserveCooldown(t ids.UnitTypeID, cd float32) {
	s.mu.Lock()
	if cd > s.maxCooldowns[t] {
		s.maxCooldowns[t] = cd
	}
	s.mu.Unlock()
}

func (s *Shared) MaxCooldown(t ids.UnitTypeID) (float32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cd, ok := s.maxCooldowns[t]
	return cd, ok
}

// SetLastHealth replaces the previous-tick hit points, keyed by tag.
func (s *Shared) SetLastHealth(hits map[uint64]uint32) {
	cp := maps.Clone(hits)
	if cp == nil {
		cp = make(map[uint64]uint32)
	}
	s.mu.Lock()
	s.lastHealth = cp
	s.mu.Unlock()
}

func (s *Shared) LastHealth(tag uint64) (uint32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.lastHealth[tag]
	return h, ok
}

// SetAbilities replaces the per-unit available ability lists.
func (s *Shared) SetAbilities(byTag map[uint64][]ids.AbilityID) {
	cp := make(map[uint64][]ids.AbilityID, len(byTag))
	for tag, list := range byTag {
		cp[tag] = slices.Clone(list)
	}
	s.mu.Lock()
	s.abilities = cp
	s.mu.Unlock()
}

// Abilities returns a copy of the abilities the unit can currently use.
func (s *Shared) Abilities(tag uint64) ([]ids.AbilityID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list, ok := s.abilities[tag]
	return slices.Clone(list), ok
}

func (s *Shared) HasAbility(tag uint64, a ids.AbilityID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.abilities[tag], a)
}

// SetAddons replaces the known techlab and reactor tags.
func (s *Shared) SetAddons(techlabs, reactors []uint64) {
	t, r := toSet(techlabs), toSet(reactors)
	s.mu.Lock()
	s.techlabs, s.reactors = t, r
	s.mu.Unlock()
}

func (s *Shared) IsTechlab(tag uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.techlabs[tag]
	return ok
}

func (s *Shared) IsReactor(tag uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.reactors[tag]
	return ok
}

func (s *Shared) SetCreep(m *model.PixelMap) {
	s.mu.Lock()
	s.creep = m
	s.mu.Unlock()
}

func (s *Shared) SetVisibility(m *model.VisibilityMap) {
	s.mu.Lock()
	s.visibility = m
	s.mu.Unlock()
}

func (s *Shared) HasCreep(p model.Point2) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creep.IsSet(p)
}

func (s *Shared) VisibilityAt(p model.Point2) model.Visibility {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visibility.AtPoint(p)
}

// SetGameStep sets the number of game loops between decisions.
func (s *Shared) SetGameStep(step uint32) {
	s.mu.Lock()
	s.gameStep = step
	s.mu.Unlock()
}

func (s *Shared) GameStep() uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gameStep
}

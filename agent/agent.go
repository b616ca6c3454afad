package agent

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nstehr/vimy/vimy-sc2/action"
	"github.com/nstehr/vimy/vimy-sc2/gamedata"
	"github.com/nstehr/vimy/vimy-sc2/ids"
	"github.com/nstehr/vimy/vimy-sc2/ipc"
	"github.com/nstehr/vimy/vimy-sc2/model"
	"github.com/nstehr/vimy/vimy-sc2/replay"
	"github.com/nstehr/vimy/vimy-sc2/rules"
	"github.com/nstehr/vimy/vimy-sc2/unit"
)

var errNoSession = errors.New("observation before hello")

// Agent owns the decision-making for a single player session. Handlers are
// called from one connection read loop, so ticks never overlap.
type Agent struct {
	Player  string
	Session string
	Race    gamedata.Race
	Engine  *rules.Engine

	data      *gamedata.GameData
	recordDir string
	gameStep  uint32

	shared   *unit.Shared
	recorder *replay.Recorder

	prev            *stateSnapshot
	enemiesEverSeen bool
}

// New returns an agent that builds snapshots from data and decides with
// engine. A non-empty recordDir records every tick there. gameStep, if
// non-zero, overrides the step the bridge announces.
func New(data *gamedata.GameData, engine *rules.Engine, recordDir string, gameStep uint32) *Agent {
	return &Agent{Engine: engine, data: data, recordDir: recordDir, gameStep: gameStep}
}

// Shared is the context of the current session, nil before hello.
func (a *Agent) Shared() *unit.Shared { return a.shared }

// Handlers maps message types to the agent's handlers.
func (a *Agent) Handlers() map[string]ipc.Handler {
	return map[string]ipc.Handler{
		ipc.TypeHello:       a.HandleHello,
		ipc.TypeObservation: a.HandleObservation,
	}
}

// HandleHello starts a session: it fixes the race, creates the Shared
// Context and acknowledges with the session id.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := env.Decode(&hello); err != nil {
		return nil, err
	}
	race, err := gamedata.ParseRace(hello.Race)
	if err != nil {
		return nil, fmt.Errorf("hello: %w", err)
	}

	if err := a.Close(); err != nil {
		slog.Warn("closing previous recording", "session", a.Session, "error", err)
	}

	a.Player = hello.Player
	a.Race = race
	a.Session = uuid.NewString()
	a.shared = unit.NewShared(a.data, race)
	a.prev = nil
	a.enemiesEverSeen = false

	step := hello.GameStep
	if a.gameStep > 0 {
		step = a.gameStep
	}
	if step > 0 {
		a.shared.SetGameStep(step)
	}
	if a.recordDir != "" {
		a.recorder = replay.NewRecorder(a.recordDir, a.Session)
	}
	slog.Info("player identified", "player", a.Player, "race", a.Race, "session", a.Session, "gameStep", a.shared.GameStep())

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok", Session: a.Session})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleObservation runs one tick: refresh the Shared Context, build the
// snapshots, let the rules queue commands, then drain them into the reply.
func (a *Agent) HandleObservation(env ipc.Envelope) (*ipc.Envelope, error) {
	if a.shared == nil {
		return nil, errNoSession
	}
	var obs ipc.ObservationMessage
	if err := env.Decode(&obs); err != nil {
		return nil, err
	}

	units, err := a.refresh(obs)
	if err != nil {
		return nil, fmt.Errorf("observation %d: %w", obs.Tick, err)
	}

	upgrades := a.shared.Upgrades(true)
	cur := takeSnapshot(units, upgrades)
	for _, ev := range detectEvents(obs.Tick, units, a.prev, cur, a.enemiesEverSeen) {
		slog.Info("game event", "kind", ev.Kind, "tick", ev.Tick, "tag", ev.Tag, "detail", ev.Detail)
	}
	a.prev = &cur
	a.enemiesEverSeen = a.enemiesEverSeen || cur.enemiesSeen

	var fired []string
	if a.Engine != nil {
		var err error
		fired, err = a.Engine.Evaluate(rules.State{Tick: obs.Tick, Shared: a.shared, Units: units})
		if err != nil {
			slog.Error("rule engine error", "error", err)
		}
	}

	batches := action.Batches(a.shared.Commander().Drain())
	msg := ipc.NewActionsMessage(obs.Tick, batches)
	a.rememberHits(units)

	slog.Debug("tick handled", "tick", obs.Tick, "units", len(units), "rules", fired, "batches", len(batches))

	if a.recorder != nil {
		frame := replay.Frame{Session: a.Session, Player: a.Player, Observation: obs, Actions: msg}
		if err := a.recorder.Write(frame); err != nil {
			slog.Warn("recording tick failed", "tick", obs.Tick, "error", err)
		}
	}

	reply, err := ipc.NewEnvelope(ipc.TypeActions, msg)
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// refresh replaces the tick-scoped parts of the Shared Context and builds
// the snapshots. A grid missing from the observation is cleared. A grid
// whose size does not match its data rejects the whole observation before
// anything is replaced. Malformed unit records are skipped.
func (a *Agent) refresh(obs ipc.ObservationMessage) ([]*unit.Unit, error) {
	for name, g := range map[string]*ipc.Grid{"creep": obs.Creep, "visibility": obs.Visibility} {
		if g == nil {
			continue
		}
		if err := g.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	s := a.shared
	s.SetUpgrades(toUpgrades(obs.Upgrades), toUpgrades(obs.EnemyUpgrades))

	abilities := make(map[uint64][]ids.AbilityID, len(obs.Abilities))
	for tag, list := range obs.Abilities {
		converted := make([]ids.AbilityID, len(list))
		for i, ab := range list {
			converted[i] = ids.AbilityID(ab)
		}
		abilities[tag] = converted
	}
	s.SetAbilities(abilities)

	var creep *model.PixelMap
	if g := obs.Creep; g != nil {
		creep = &model.PixelMap{Width: g.Width, Height: g.Height, Data: g.Data}
	}
	s.SetCreep(creep)

	var vis *model.VisibilityMap
	if g := obs.Visibility; g != nil {
		vis = model.NewVisibilityMap(g.Width, g.Height)
		for i := range vis.Data {
			vis.Data[i] = model.Visibility(g.Data[i])
		}
	}
	s.SetVisibility(vis)

	units := make([]*unit.Unit, 0, len(obs.Units))
	var techlabs, reactors []uint64
	for _, raw := range obs.Units {
		u, err := unit.FromRaw(s, raw)
		if err != nil {
			slog.Warn("skipping unit", "tick", obs.Tick, "error", err)
			continue
		}
		switch {
		case u.Type.IsTechlab():
			techlabs = append(techlabs, u.Tag)
		case u.Type.IsReactor():
			reactors = append(reactors, u.Tag)
		}
		units = append(units, u)
	}
	s.SetAddons(techlabs, reactors)
	return units, nil
}

// rememberHits stores this tick's hit points for next tick's damage checks.
func (a *Agent) rememberHits(units []*unit.Unit) {
	hits := make(map[uint64]uint32, len(units))
	for _, u := range units {
		if h, ok := u.Hits(); ok {
			hits[u.Tag] = h
		}
	}
	a.shared.SetLastHealth(hits)
}

// Close ends the recording of the current session, if any.
func (a *Agent) Close() error {
	if a.recorder == nil {
		return nil
	}
	err := a.recorder.Close()
	a.recorder = nil
	return err
}

func toUpgrades(raw []uint32) []ids.UpgradeID {
	out := make([]ids.UpgradeID, len(raw))
	for i, u := range raw {
		out[i] = ids.UpgradeID(u)
	}
	return out
}

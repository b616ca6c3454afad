package agent

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/nstehr/vimy/vimy-sc2/gamedata"
	"github.com/nstehr/vimy/vimy-sc2/ids"
	"github.com/nstehr/vimy/vimy-sc2/ipc"
	"github.com/nstehr/vimy/vimy-sc2/model"
	"github.com/nstehr/vimy/vimy-sc2/replay"
	"github.com/nstehr/vimy/vimy-sc2/rules"
	"github.com/nstehr/vimy/vimy-sc2/unit"
)

func newTestAgent(t *testing.T, recordDir string) *Agent {
	t.Helper()
	gd, err := gamedata.Default()
	if err != nil {
		t.Fatalf("load game data: %v", err)
	}
	engine, err := rules.NewEngine(rules.DefaultRules())
	if err != nil {
		t.Fatal(err)
	}
	return New(gd, engine, recordDir, 0)
}

func send(t *testing.T, h ipc.Handler, typ string, msg any) *ipc.Envelope {
	t.Helper()
	env, err := ipc.NewEnvelope(typ, msg)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := h(env)
	if err != nil {
		t.Fatalf("%s handler: %v", typ, err)
	}
	return resp
}

func hp(v float32) *float32 { return &v }

func raw(tag uint64, typ ids.UnitTypeID, alliance unit.Alliance, x, y float32) ipc.RawUnit {
	return ipc.RawUnit{
		Tag:         tag,
		UnitType:    uint32(typ),
		Alliance:    uint8(alliance),
		DisplayType: uint8(unit.DisplayVisible),
		Cloak:       uint8(unit.NotCloaked),
		Pos:         [3]float32{x, y, 10},
		Progress:    1,
	}
}

func TestHello(t *testing.T) {
	a := newTestAgent(t, "")
	resp := send(t, a.HandleHello, ipc.TypeHello, ipc.HelloMessage{Player: "p1", Race: "Terran", GameStep: 4})

	var ack ipc.AckMessage
	if err := resp.Decode(&ack); err != nil {
		t.Fatal(err)
	}
	if resp.Type != ipc.TypeAck || ack.Status != "ok" {
		t.Errorf("reply = %s %+v", resp.Type, ack)
	}
	if _, err := uuid.Parse(ack.Session); err != nil || ack.Session != a.Session {
		t.Errorf("session = %q (agent %q): %v", ack.Session, a.Session, err)
	}
	if a.Race != gamedata.Terran || a.Shared().GameStep() != 4 {
		t.Errorf("race = %v, game step = %d", a.Race, a.Shared().GameStep())
	}

	env, _ := ipc.NewEnvelope(ipc.TypeHello, ipc.HelloMessage{Player: "p1", Race: "martian"})
	if _, err := a.HandleHello(env); !errors.Is(err, gamedata.ErrUnknownRace) {
		t.Errorf("unknown race error = %v", err)
	}
}

func TestGameStepOverride(t *testing.T) {
	gd, err := gamedata.Default()
	if err != nil {
		t.Fatal(err)
	}
	a := New(gd, nil, "", 8)
	send(t, a.HandleHello, ipc.TypeHello, ipc.HelloMessage{Player: "p1", Race: "zerg", GameStep: 2})
	if got := a.Shared().GameStep(); got != 8 {
		t.Errorf("GameStep = %d, want 8", got)
	}
}

func TestObservationBeforeHello(t *testing.T) {
	a := newTestAgent(t, "")
	env, _ := ipc.NewEnvelope(ipc.TypeObservation, ipc.ObservationMessage{Tick: 1})
	if _, err := a.HandleObservation(env); !errors.Is(err, errNoSession) {
		t.Errorf("error = %v, want errNoSession", err)
	}
}

func TestTickProducesActions(t *testing.T) {
	dir := t.TempDir()
	a := newTestAgent(t, dir)
	send(t, a.HandleHello, ipc.TypeHello, ipc.HelloMessage{Player: "p1", Race: "terran"})

	bad := raw(99, ids.SCV, unit.AllianceSelf, 0, 0)
	bad.Alliance = 7
	obs := ipc.ObservationMessage{
		Tick: 1,
		Units: []ipc.RawUnit{
			raw(1, ids.CommandCenter, unit.AllianceSelf, 0, 0),
			raw(2, ids.SCV, unit.AllianceSelf, 3, 0),
			raw(3, ids.MineralField, unit.AllianceNeutral, 8, 0),
			raw(4, ids.BarracksReactor, unit.AllianceSelf, 20, 20),
			bad,
		},
		Upgrades: []uint32{uint32(ids.StimpackResearch)},
	}

	resp := send(t, a.HandleObservation, ipc.TypeObservation, obs)
	if resp.Type != ipc.TypeActions {
		t.Fatalf("reply type = %q", resp.Type)
	}
	var msg ipc.ActionsMessage
	if err := resp.Decode(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.Tick != 1 || len(msg.Actions) != 2 {
		t.Fatalf("actions = %+v", msg)
	}
	train, gather := msg.Actions[0], msg.Actions[1]
	if train.Ability != uint32(ids.TrainSCV) || train.UnitTags[0] != 1 {
		t.Errorf("train batch = %+v", train)
	}
	if gather.Ability != uint32(ids.HarvestGather) || gather.TargetTag == nil || *gather.TargetTag != 3 {
		t.Errorf("gather batch = %+v", gather)
	}

	s := a.Shared()
	if !s.HasUpgrade(true, ids.StimpackResearch) {
		t.Error("upgrades not copied into the shared context")
	}
	if !s.IsReactor(4) {
		t.Error("reactor tag not registered")
	}
	if s.Commander().Len() != 0 {
		t.Error("commander should be drained after the tick")
	}

	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
	var frames int
	err := replay.ReadFile(replay.NewRecorder(dir, a.Session).Path(), func(f replay.Frame) error {
		frames++
		if f.Session != a.Session || f.Observation.Tick != 1 || len(f.Actions.Actions) != 2 {
			t.Errorf("frame = %+v", f)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if frames != 1 {
		t.Errorf("frames = %d, want 1", frames)
	}
}

func TestDamageAcrossTicks(t *testing.T) {
	gd, err := gamedata.Default()
	if err != nil {
		t.Fatal(err)
	}
	a := New(gd, nil, "", 0)
	send(t, a.HandleHello, ipc.TypeHello, ipc.HelloMessage{Player: "p1", Race: "terran"})

	depot := raw(1, ids.SupplyDepot, unit.AllianceSelf, 0, 0)
	depot.Health, depot.HealthMax = hp(400), hp(400)
	send(t, a.HandleObservation, ipc.TypeObservation, ipc.ObservationMessage{Tick: 1, Units: []ipc.RawUnit{depot}})

	depot.Health = hp(380)
	send(t, a.HandleObservation, ipc.TypeObservation, ipc.ObservationMessage{Tick: 2, Units: []ipc.RawUnit{depot}})
	if last, ok := a.Shared().LastHealth(1); !ok || last != 380 {
		t.Errorf("LastHealth = %d, %v, want 380", last, ok)
	}
}

func TestMalformedGridRejected(t *testing.T) {
	tests := []struct {
		name string
		obs  ipc.ObservationMessage
	}{
		{"negative visibility width", ipc.ObservationMessage{Tick: 1, Visibility: &ipc.Grid{Width: -1, Height: 1, Data: []byte{2}}}},
		{"visibility larger than data", ipc.ObservationMessage{Tick: 1, Visibility: &ipc.Grid{Width: 1 << 30, Height: 1 << 30, Data: []byte{2}}}},
		{"negative creep height", ipc.ObservationMessage{Tick: 1, Creep: &ipc.Grid{Width: 2, Height: -3}}},
		{"creep larger than data", ipc.ObservationMessage{Tick: 1, Creep: &ipc.Grid{Width: 4, Height: 4, Data: make([]byte, 15)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAgent(t, "")
			send(t, a.HandleHello, ipc.TypeHello, ipc.HelloMessage{Player: "p1", Race: "terran"})

			tt.obs.Upgrades = []uint32{uint32(ids.StimpackResearch)}
			env, _ := ipc.NewEnvelope(ipc.TypeObservation, tt.obs)
			if _, err := a.HandleObservation(env); !errors.Is(err, ipc.ErrMalformedGrid) {
				t.Errorf("error = %v, want ErrMalformedGrid", err)
			}
			if a.Shared().HasUpgrade(true, ids.StimpackResearch) {
				t.Error("rejected observation changed the shared context")
			}
		})
	}
}

func TestGridsResetEachTick(t *testing.T) {
	a := newTestAgent(t, "")
	send(t, a.HandleHello, ipc.TypeHello, ipc.HelloMessage{Player: "p1", Race: "zerg"})

	p := model.Point2{1.5, 0.5}
	send(t, a.HandleObservation, ipc.TypeObservation, ipc.ObservationMessage{
		Tick:       1,
		Creep:      &ipc.Grid{Width: 2, Height: 2, Data: []byte{0, 1, 0, 0}},
		Visibility: &ipc.Grid{Width: 2, Height: 2, Data: []byte{0, 2, 0, 0}},
	})
	if !a.Shared().HasCreep(p) || a.Shared().VisibilityAt(p) != model.Visible {
		t.Fatalf("tick 1: creep = %v, visibility = %v", a.Shared().HasCreep(p), a.Shared().VisibilityAt(p))
	}

	send(t, a.HandleObservation, ipc.TypeObservation, ipc.ObservationMessage{Tick: 2})
	if a.Shared().HasCreep(p) {
		t.Error("creep from tick 1 survived a tick without a creep grid")
	}
	if got := a.Shared().VisibilityAt(p); got != model.Hidden {
		t.Errorf("VisibilityAt = %v, want Hidden", got)
	}
}

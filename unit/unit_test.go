package unit

import (
	"errors"
	"math"
	"testing"

	"github.com/nstehr/vimy/vimy-sc2/action"
	"github.com/nstehr/vimy/vimy-sc2/gamedata"
	"github.com/nstehr/vimy/vimy-sc2/ids"
	"github.com/nstehr/vimy/vimy-sc2/ipc"
	"github.com/nstehr/vimy/vimy-sc2/model"
)

func u32(v uint32) *uint32   { return &v }
func u64(v uint64) *uint64   { return &v }
func f32(v float32) *float32 { return &v }

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func defaultShared(t *testing.T) *Shared {
	t.Helper()
	gd, err := gamedata.Default()
	if err != nil {
		t.Fatalf("load default game data: %v", err)
	}
	return NewShared(gd, gamedata.Terran)
}

func TestHits(t *testing.T) {
	tests := []struct {
		name                 string
		health, shield       *uint32
		healthMax, shieldMax *uint32
		hits                 uint32
		hitsOK               bool
		max                  uint32
		maxOK                bool
		pctOK                bool
	}{
		{"both", u32(40), u32(20), u32(80), u32(40), 60, true, 120, true, true},
		{"health only", u32(45), nil, u32(45), nil, 45, true, 45, true, true},
		{"shield only", nil, u32(10), nil, u32(20), 10, true, 20, true, true},
		{"snapshot", nil, nil, nil, nil, 0, false, 0, false, false},
		{"zero max", u32(0), nil, u32(0), nil, 0, true, 0, true, false},
		{"max unknown", u32(10), nil, nil, nil, 10, true, 0, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := &Unit{Health: tc.health, Shield: tc.shield, HealthMax: tc.healthMax, ShieldMax: tc.shieldMax}
			if hits, ok := u.Hits(); hits != tc.hits || ok != tc.hitsOK {
				t.Errorf("Hits = %v, %v, want %v, %v", hits, ok, tc.hits, tc.hitsOK)
			}
			if m, ok := u.HitsMax(); m != tc.max || ok != tc.maxOK {
				t.Errorf("HitsMax = %v, %v, want %v, %v", m, ok, tc.max, tc.maxOK)
			}
			pct, ok := u.HitsPercentage()
			if ok != tc.pctOK {
				t.Errorf("HitsPercentage ok = %v, want %v", ok, tc.pctOK)
			}
			if ok && !approx(pct, float32(tc.hits)/float32(tc.max)) {
				t.Errorf("HitsPercentage = %v, want %v", pct, float32(tc.hits)/float32(tc.max))
			}
		})
	}

	u := &Unit{Energy: u32(50), EnergyMax: u32(200)}
	if p, ok := u.EnergyPercentage(); !ok || p != 0.25 {
		t.Errorf("EnergyPercentage = %v, %v", p, ok)
	}
	if _, ok := u.ShieldPercentage(); ok {
		t.Error("ShieldPercentage should be absent")
	}
}

func TestAttackedSinceLastTick(t *testing.T) {
	s := defaultShared(t)
	s.SetLastHealth(map[uint64]uint32{1: 100, 2: 50})

	hit := &Unit{shared: s, Tag: 1, Health: u32(70)}
	healed := &Unit{shared: s, Tag: 2, Health: u32(55)}
	fresh := &Unit{shared: s, Tag: 3, Health: u32(10)}
	ghost := &Unit{shared: s, Tag: 1}

	if !hit.IsAttacked() || hit.DamageTaken() != 30 {
		t.Errorf("hit: IsAttacked = %v, DamageTaken = %d", hit.IsAttacked(), hit.DamageTaken())
	}
	if healed.IsAttacked() || healed.DamageTaken() != 0 {
		t.Errorf("healed: IsAttacked = %v, DamageTaken = %d", healed.IsAttacked(), healed.DamageTaken())
	}
	if fresh.IsAttacked() || fresh.DamageTaken() != 0 {
		t.Error("a unit with no history was not attacked")
	}
	if ghost.IsAttacked() || ghost.DamageTaken() != 0 {
		t.Error("a unit with no hit points was not attacked")
	}
}

func TestDetector(t *testing.T) {
	s := defaultShared(t)
	tests := []struct {
		name     string
		typ      ids.UnitTypeID
		progress float32
		powered  bool
		want     bool
	}{
		{"observer", ids.Observer, 1, false, true},
		{"building observer still detects", ids.Observer, 0.5, false, true},
		{"turret ready", ids.MissileTurret, 1, false, true},
		{"turret building", ids.MissileTurret, 0.5, false, false},
		{"cannon powered", ids.PhotonCannon, 1, true, true},
		{"cannon unpowered", ids.PhotonCannon, 1, false, false},
		{"marine", ids.Marine, 1, true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := &Unit{shared: s, Type: tc.typ, BuildProgress: tc.progress, Powered: tc.powered}
			if got := u.IsDetector(); got != tc.want {
				t.Errorf("IsDetector = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDisplayAndVisibility(t *testing.T) {
	s := defaultShared(t)
	vis := model.NewVisibilityMap(4, 4)
	vis.Set(1, 1, model.Visible)
	vis.Set(2, 2, model.Fogged)
	s.SetVisibility(vis)

	inSight := model.Point2{1.5, 1.5}
	fogged := model.Point2{2.5, 2.5}

	if !(&Unit{shared: s, Display: DisplayVisible, Position: inSight}).IsVisible() {
		t.Error("visible unit in a visible cell should be visible")
	}
	if (&Unit{shared: s, Display: DisplayVisible, Position: fogged}).IsVisible() {
		t.Error("visible display in a fogged cell is not visible")
	}
	if !(&Unit{shared: s, Display: DisplaySnapshot, Position: fogged}).IsSnapshot() {
		t.Error("remembered unit in fog should be a snapshot")
	}
	if (&Unit{shared: s, Display: DisplaySnapshot, Position: inSight}).IsSnapshot() {
		t.Error("remembered unit whose cell is in sight is not a snapshot")
	}
	if !(&Unit{shared: s, Display: DisplayHidden}).IsHidden() {
		t.Error("IsHidden")
	}
	if !(&Unit{shared: s, Display: DisplayPlaceholder}).IsPlaceholder() {
		t.Error("IsPlaceholder")
	}
}

func TestCloak(t *testing.T) {
	tests := []struct {
		state                         CloakState
		cloaked, revealed, attackable bool
	}{
		{CloakUnknown, false, false, false},
		{Cloaked, true, false, false},
		{CloakedDetected, true, true, true},
		{NotCloaked, false, false, true},
		{CloakedAllied, true, false, false},
	}
	for _, tc := range tests {
		u := &Unit{Cloak: tc.state}
		if u.IsCloaked() != tc.cloaked || u.IsRevealed() != tc.revealed || u.CanBeAttacked() != tc.attackable {
			t.Errorf("cloak %d: cloaked=%v revealed=%v attackable=%v", tc.state, u.IsCloaked(), u.IsRevealed(), u.CanBeAttacked())
		}
	}
}

func TestClassification(t *testing.T) {
	s := defaultShared(t)
	scv := &Unit{shared: s, Type: ids.SCV, BuildProgress: 1, Buffs: []ids.BuffID{ids.CarryMineralFieldMinerals}}
	if !scv.IsWorker() || !scv.IsMelee() || !scv.IsReady() || scv.IsTownhall() {
		t.Error("SCV classification")
	}
	if !scv.IsCarryingMinerals() || scv.IsCarryingVespene() || !scv.IsCarryingResource() {
		t.Error("SCV carrying minerals")
	}
	if !scv.IsLight() || !scv.IsMechanical() || scv.IsArmored() {
		t.Errorf("SCV attributes = %v", scv.Attributes())
	}
	if scv.Race() != gamedata.Terran || scv.SupplyCost() != 1 || scv.SightRange() != 8 {
		t.Error("SCV type data")
	}

	mineral := &Unit{shared: s, Type: ids.MineralField}
	geyser := &Unit{shared: s, Type: ids.VespeneGeyser}
	if !mineral.IsMineral() || mineral.IsGeyser() || !geyser.IsGeyser() {
		t.Error("resource classification")
	}

	unknown := &Unit{shared: s, Type: 60000}
	if unknown.Race() != gamedata.Random || unknown.Armor() != 0 || unknown.Speed() != 0 || unknown.CanAttack() {
		t.Error("unknown types fall back to zero values")
	}

	building := &Unit{shared: s, Type: ids.Barracks, BuildProgress: 0.999}
	if building.IsReady() {
		t.Error("0.999 progress is not ready")
	}
}

func TestBuildingSize(t *testing.T) {
	s := defaultShared(t)
	tests := []struct {
		typ  ids.UnitTypeID
		size int
		ok   bool
	}{
		{ids.SupplyDepot, 2, true},
		{ids.CommandCenter, 5, true},
		{ids.Barracks, 3, true},
		{ids.BarracksTechLab, 2, true},
		{ids.Marine, 0, false},
	}
	for _, tc := range tests {
		u := &Unit{shared: s, Type: tc.typ}
		if size, ok := u.BuildingSize(); size != tc.size || ok != tc.ok {
			t.Errorf("%v BuildingSize = %v, %v, want %v, %v", tc.typ, size, ok, tc.size, tc.ok)
		}
	}
}

func TestCargo(t *testing.T) {
	u := &Unit{CargoSpaceTaken: u32(2), CargoSpaceMax: u32(8)}
	if left, ok := u.CargoLeft(); !ok || left != 6 {
		t.Errorf("CargoLeft = %v, %v, want 6, true", left, ok)
	}
	if !u.HasCargo() {
		t.Error("HasCargo")
	}
	if _, ok := (&Unit{CargoSpaceMax: u32(8)}).CargoLeft(); ok {
		t.Error("CargoLeft should be absent without taken space")
	}
}

func TestAddonsAndIdle(t *testing.T) {
	s := defaultShared(t)
	s.SetAddons([]uint64{100}, []uint64{200})

	lab := &Unit{shared: s, Type: ids.Barracks, AddonTag: u64(100)}
	reactor := &Unit{shared: s, Type: ids.Barracks, AddonTag: u64(200)}
	bare := &Unit{shared: s, Type: ids.Barracks}

	if !lab.HasTechlab() || lab.HasReactor() || !lab.HasAddon() {
		t.Error("techlab barracks")
	}
	if !reactor.HasReactor() || reactor.HasTechlab() {
		t.Error("reactor barracks")
	}
	if bare.HasAddon() || bare.HasTechlab() || bare.HasReactor() {
		t.Error("bare barracks")
	}

	train := func(progress float32) Order {
		return Order{Ability: ids.TrainMarine, Progress: progress}
	}

	tests := []struct {
		name                            string
		u                               *Unit
		orders                          []Order
		idle, almostIdle, unused, almost bool
	}{
		{"bare idle", bare, nil, true, true, true, true},
		{"bare busy", bare, []Order{train(0.5)}, false, false, false, false},
		{"bare almost done", bare, []Order{train(0.96)}, false, true, false, true},
		{"reactor one slot", reactor, []Order{train(0.1)}, false, false, true, true},
		{"reactor both slots", reactor, []Order{train(0.1), train(0.2)}, false, false, false, false},
		{"reactor one slot almost done", reactor, []Order{train(0.1), train(0.95)}, false, false, false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.u.Orders = tc.orders
			if got := tc.u.IsIdle(); got != tc.idle {
				t.Errorf("IsIdle = %v, want %v", got, tc.idle)
			}
			if got := tc.u.IsAlmostIdle(); got != tc.almostIdle {
				t.Errorf("IsAlmostIdle = %v, want %v", got, tc.almostIdle)
			}
			if got := tc.u.IsUnused(); got != tc.unused {
				t.Errorf("IsUnused = %v, want %v", got, tc.unused)
			}
			if got := tc.u.IsAlmostUnused(); got != tc.almost {
				t.Errorf("IsAlmostUnused = %v, want %v", got, tc.almost)
			}
		})
	}
}

func TestOrderPredicates(t *testing.T) {
	s := defaultShared(t)
	u := &Unit{shared: s, Type: ids.SCV}

	if u.Target() != action.None() || u.IsAttacking() || u.IsCollecting() {
		t.Error("idle unit has no target")
	}
	if _, ok := u.OrderedAbility(); ok {
		t.Error("idle unit has no ordered ability")
	}

	u.Orders = []Order{{Ability: ids.HarvestGather, Target: action.Tag(77)}}
	if tag, ok := u.TargetTag(); !ok || tag != 77 {
		t.Errorf("TargetTag = %v, %v", tag, ok)
	}
	if !u.IsGathering() || !u.IsCollecting() || u.IsReturning() {
		t.Error("gathering predicates")
	}

	u.Orders = []Order{{Ability: ids.AttackAttack, Target: action.Pos(model.Point2{3, 4})}}
	if !u.IsAttacking() {
		t.Error("AttackAttack is an attack")
	}
	if p, ok := u.TargetPos(); !ok || p != (model.Point2{3, 4}) {
		t.Errorf("TargetPos = %v, %v", p, ok)
	}

	u.Orders = []Order{{Ability: ids.BuildSupplyDepot}}
	if !u.IsConstructing() {
		t.Error("BuildSupplyDepot is construction")
	}
	u.Orders = []Order{{Ability: ids.EffectRepairSCV}}
	if !u.IsRepairing() {
		t.Error("EffectRepairSCV is a repair")
	}
	u.Orders = []Order{{Ability: ids.BuildReactorBarracks}}
	if !u.IsMakingAddon() || !u.IsMakingReactor() || u.IsMakingTechlab() {
		t.Error("reactor addon predicates")
	}
	u.Orders = []Order{{Ability: ids.MoveMove}}
	if !u.IsMoving() || !u.IsUsingAny(ids.Stop, ids.MoveMove) {
		t.Error("moving predicates")
	}
}

func TestFromRawRoundTrip(t *testing.T) {
	s := defaultShared(t)
	raw := ipc.RawUnit{
		Tag:            4294967297,
		UnitType:       uint32(ids.Marine),
		Owner:          1,
		Alliance:       uint8(AllianceSelf),
		DisplayType:    uint8(DisplayVisible),
		Cloak:          uint8(NotCloaked),
		Pos:            [3]float32{10.5, 20.25, 11},
		Facing:         1.5,
		Radius:         0.375,
		Progress:       1,
		Buffs:          []uint32{uint32(ids.Stimpack)},
		Flying:         false,
		Health:         f32(45),
		HealthMax:      f32(55),
		WeaponCooldown: f32(3),
		Orders: []ipc.RawOrder{
			{Ability: uint32(ids.AttackAttack), TargetPos: &[2]float32{30, 40}},
			{Ability: uint32(ids.MoveMove), TargetTag: u64(9), Progress: 0.5},
			{Ability: uint32(ids.HoldPositionHold)},
		},
		RallyTargets: []ipc.RawRallyTarget{{Point: [2]float32{1, 2}, Tag: u64(5)}},
	}

	u, err := FromRaw(s, raw)
	if err != nil {
		t.Fatalf("FromRaw: %v", err)
	}
	if u.Tag != raw.Tag || u.Type != ids.Marine || u.Owner != 1 || u.Alliance != AllianceSelf {
		t.Errorf("identity = %d %v %d %v", u.Tag, u.Type, u.Owner, u.Alliance)
	}
	if u.Position != (model.Point2{10.5, 20.25}) || u.Position3 != (model.Point3{10.5, 20.25, 11}) {
		t.Errorf("position = %v / %v", u.Position, u.Position3)
	}
	if u.Facing != 1.5 || u.Radius != 0.375 || !u.IsReady() {
		t.Errorf("facing/radius/progress = %v %v %v", u.Facing, u.Radius, u.BuildProgress)
	}
	if u.Health == nil || *u.Health != 45 || u.HealthMax == nil || *u.HealthMax != 55 {
		t.Errorf("health = %v / %v", u.Health, u.HealthMax)
	}
	for name, p := range map[string]*uint32{
		"shield": u.Shield, "shield max": u.ShieldMax, "energy": u.Energy,
		"minerals": u.MineralContents, "cargo taken": u.CargoSpaceTaken,
	} {
		if p != nil {
			t.Errorf("%s should stay absent, got %d", name, *p)
		}
	}
	if u.AddonTag != nil || u.EngagedTargetTag != nil {
		t.Error("absent tags should stay nil")
	}
	if !u.HasBuff(ids.Stimpack) {
		t.Error("buff lost")
	}

	want := []Order{
		{Ability: ids.AttackAttack, Target: action.Pos(model.Point2{30, 40})},
		{Ability: ids.MoveMove, Target: action.Tag(9), Progress: 0.5},
		{Ability: ids.HoldPositionHold, Target: action.None()},
	}
	if len(u.Orders) != len(want) {
		t.Fatalf("orders = %+v", u.Orders)
	}
	for i := range want {
		if u.Orders[i] != want[i] {
			t.Errorf("order %d = %+v, want %+v", i, u.Orders[i], want[i])
		}
	}
	if len(u.RallyTargets) != 1 || *u.RallyTargets[0].Tag != 5 || u.RallyTargets[0].Point != (model.Point2{1, 2}) {
		t.Errorf("rally targets = %+v", u.RallyTargets)
	}
	if cd, ok := s.MaxCooldown(ids.Marine); !ok || cd != 3 {
		t.Errorf("decoding should feed the cooldown cache, got %v, %v", cd, ok)
	}
}

func TestFromRawClampsVitals(t *testing.T) {
	s := defaultShared(t)
	tests := []struct {
		name string
		in   float32
		want uint32
	}{
		{"fraction", 44.9, 44},
		{"negative", -3, 0},
		{"nan", float32(math.NaN()), 0},
		{"max", math.MaxUint32, math.MaxUint32},
		{"above max", 1e20, math.MaxUint32},
		{"infinite", float32(math.Inf(1)), math.MaxUint32},
	}
	for _, tt := range tests {
		raw := ipc.RawUnit{
			Tag:         1,
			UnitType:    uint32(ids.Bunker),
			Alliance:    uint8(AllianceSelf),
			DisplayType: uint8(DisplayVisible),
			Health:      f32(tt.in),
			Passengers:  []ipc.RawPassenger{{Tag: 2, UnitType: uint32(ids.Marine), Health: tt.in}},
		}
		u, err := FromRaw(s, raw)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if *u.Health != tt.want {
			t.Errorf("%s: Health = %d, want %d", tt.name, *u.Health, tt.want)
		}
		if got := u.Passengers[0].Health; got != tt.want {
			t.Errorf("%s: passenger Health = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestFromRawOverridesDetectRange(t *testing.T) {
	s := defaultShared(t)
	raw := ipc.RawUnit{Tag: 1, UnitType: uint32(ids.Observer), Alliance: uint8(AllianceSelf), DisplayType: uint8(DisplayVisible), DetectRange: 9}
	u, err := FromRaw(s, raw)
	if err != nil {
		t.Fatal(err)
	}
	if u.DetectRange != 11 {
		t.Errorf("DetectRange = %v, want 11", u.DetectRange)
	}
}

func TestFromRawRejectsMalformed(t *testing.T) {
	s := defaultShared(t)
	valid := ipc.RawUnit{Tag: 1, UnitType: uint32(ids.Marine), Alliance: uint8(AllianceEnemy), DisplayType: uint8(DisplayVisible)}

	tests := []struct {
		name   string
		mutate func(*ipc.RawUnit)
	}{
		{"no type", func(r *ipc.RawUnit) { r.UnitType = 0 }},
		{"alliance zero", func(r *ipc.RawUnit) { r.Alliance = 0 }},
		{"alliance too large", func(r *ipc.RawUnit) { r.Alliance = 9 }},
		{"display type", func(r *ipc.RawUnit) { r.DisplayType = 5 }},
		{"cloak", func(r *ipc.RawUnit) { r.Cloak = 5 }},
		{"order with two targets", func(r *ipc.RawUnit) {
			r.Orders = []ipc.RawOrder{{Ability: 1, TargetPos: &[2]float32{1, 1}, TargetTag: u64(3)}}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := valid
			tc.mutate(&raw)
			if _, err := FromRaw(s, raw); !errors.Is(err, ErrMalformed) {
				t.Errorf("FromRaw error = %v, want ErrMalformed", err)
			}
		})
	}

	if _, err := FromRaw(s, valid); err != nil {
		t.Errorf("valid record rejected: %v", err)
	}
}

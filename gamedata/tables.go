package gamedata

import "github.com/nstehr/vimy/vimy-sc2/ids"

// FramesPerSecond is the number of game loops per in-game second at
// "faster" speed.
const FramesPerSecond float32 = 22.4

// UpgradeMultiplier scales a stat when Upgrade is researched.
type UpgradeMultiplier struct {
	Upgrade    ids.UpgradeID
	Multiplier float32
}

// UpgradeBonus adds a flat amount to a stat when Upgrade is researched.
type UpgradeBonus struct {
	Upgrade ids.UpgradeID
	Bonus   float32
}

// ---- Movement ----

// Two buffs override every other speed modifier.
const (
	MedivacBoostMultiplier     float32 = 1.7
	VoidRayAlignmentMultiplier float32 = 0.75
)

// SpeedBuffs compound multiplicatively on top of base speed.
var SpeedBuffs = map[ids.BuffID]float32{
	ids.Stimpack:                   1.5,
	ids.StimpackMarauder:           1.5,
	ids.Charging:                   2.2,
	ids.FungalGrowth:               0.25,
	ids.Slow:                       0.5,
	ids.TimeWarpProduction:         0.5,
	ids.InhibitorZoneTemporalField: 0.65,
}

// SpeedBuffImmune ignores all speed-altering buffs (frenzied).
var SpeedBuffImmune = map[ids.UnitTypeID]bool{
	ids.Ultralisk: true,
}

// SpeedUpgrades apply regardless of terrain.
var SpeedUpgrades = map[ids.UnitTypeID]UpgradeMultiplier{
	ids.Zergling: {ids.Zerglingmovementspeed, 1.6},
	ids.Baneling: {ids.CentrificalHooks, 1.18},
	ids.Roach:    {ids.GlialReconstitution, 1.333333},
	ids.Overlord: {ids.Overlordspeed, 2.915},
	ids.Overseer: {ids.Overlordspeed, 1.8015},
	ids.Zealot:   {ids.Charge, 1.5},
}

// SpeedOnCreep is the creep multiplier for types that benefit from creep.
var SpeedOnCreep = map[ids.UnitTypeID]float32{
	ids.Queen:     2.67,
	ids.Drone:     1.3,
	ids.Zergling:  1.3,
	ids.Baneling:  1.3,
	ids.Roach:     1.3,
	ids.Ravager:   1.3,
	ids.Hydralisk: 1.3,
	ids.Ultralisk: 1.3,
}

// OffCreepSpeedUpgrades only apply while the unit is off creep.
var OffCreepSpeedUpgrades = map[ids.UnitTypeID]UpgradeMultiplier{
	ids.Hydralisk: {ids.EvolveMuscularAugments, 1.25},
	ids.Ultralisk: {ids.AnabolicSynthesis, 1.2},
}

// ---- Weapons ----

// RangeUpgrades extend every weapon of the type.
var RangeUpgrades = map[ids.UnitTypeID]UpgradeBonus{
	ids.Hydralisk:         {ids.EvolveGroovedSpines, 1},
	ids.Phoenix:           {ids.PhoenixRangeUpgrade, 2},
	ids.PlanetaryFortress: {ids.HiSecAutoTracking, 1},
	ids.MissileTurret:     {ids.HiSecAutoTracking, 1},
	ids.AutoTurret:        {ids.HiSecAutoTracking, 1},
}

// AttackIntervalBuffs multiply the attacker's weapon interval.
var AttackIntervalBuffs = map[ids.BuffID]float32{
	ids.Stimpack:           1 / 1.5,
	ids.StimpackMarauder:   1 / 1.5,
	ids.TimeWarpProduction: 2,
}

// AttackSpeedUpgrades divide the weapon interval by Multiplier.
var AttackSpeedUpgrades = map[ids.UnitTypeID]UpgradeMultiplier{
	ids.Zergling: {ids.Zerglingattackspeed, 1.4},
	ids.Adept:    {ids.AdeptPiercingAttack, 1.45},
}

// UpgradeDamage is how much one attack upgrade level adds to a weapon.
// Base nil means the default of 1 per level.
type UpgradeDamage struct {
	Base  *uint32
	Bonus map[Attribute]uint32
}

// PerLevel returns the base damage added per attack upgrade level.
func (u UpgradeDamage) PerLevel() uint32 {
	if u.Base == nil {
		return 1
	}
	return *u.Base
}

func perLevel(v uint32) *uint32 { return &v }

// DamageBonusPerUpgrade is keyed by attacker type, then weapon target.
var DamageBonusPerUpgrade = map[ids.UnitTypeID]map[TargetType]UpgradeDamage{
	ids.Marauder:        {Ground: {Bonus: map[Attribute]uint32{Armored: 1}}},
	ids.SiegeTank:       {Ground: {Base: perLevel(2), Bonus: map[Attribute]uint32{Armored: 1}}},
	ids.SiegeTankSieged: {Ground: {Base: perLevel(4), Bonus: map[Attribute]uint32{Armored: 1}}},
	ids.Hellion:         {Ground: {Bonus: map[Attribute]uint32{Light: 1}}},
	ids.HellionTank:     {Ground: {Base: perLevel(2), Bonus: map[Attribute]uint32{Light: 1}}},
	ids.VikingFighter:   {Air: {Bonus: map[Attribute]uint32{Armored: 1}}},
	ids.Stalker:         {Any: {Bonus: map[Attribute]uint32{Armored: 1}}},
	ids.Adept:           {Ground: {Bonus: map[Attribute]uint32{Light: 1}}},
	ids.Colossus:        {Ground: {Bonus: map[Attribute]uint32{Light: 1}}},
	ids.Phoenix:         {Air: {Bonus: map[Attribute]uint32{Light: 1}}},
	ids.VoidRay:         {Any: {Bonus: map[Attribute]uint32{Armored: 1}}},
	ids.Baneling:        {Ground: {Base: perLevel(2), Bonus: map[Attribute]uint32{Light: 2}}},
	ids.Roach:           {Ground: {Base: perLevel(2)}},
	ids.Ravager:         {Ground: {Base: perLevel(2)}},
	ids.Ultralisk:       {Ground: {Base: perLevel(3)}},
	ids.SporeCrawler:    {Air: {Bonus: map[Attribute]uint32{Biological: 1}}},
}

// AttributeBonusUpgrade raises one attribute bonus of a type by a flat amount.
type AttributeBonusUpgrade struct {
	Upgrade   ids.UpgradeID
	Attribute Attribute
	Bonus     uint32
}

var AttributeBonusUpgrades = map[ids.UnitTypeID]AttributeBonusUpgrade{
	ids.Hellion:     {ids.HighCapacityBarrels, Light, 5},
	ids.HellionTank: {ids.HighCapacityBarrels, Light, 12},
}

// A target carrying ArmoredDamageDebuff takes ArmoredDamageDebuffBonus extra
// from bonuses keyed on Armored. The buff is checked on the target, not on
// the attacker.
const (
	ArmoredDamageDebuff             = ids.VoidRaySwarmDamageBoost
	ArmoredDamageDebuffBonus uint32 = 6
)

// MissedWeapons covers types whose weapons are absent from the game's data.
var MissedWeapons = map[ids.UnitTypeID][]Weapon{
	ids.Baneling: {{
		Target:      Ground,
		Damage:      16,
		DamageBonus: []DamageBonus{{Light, 19}, {Structure, 64}},
		Attacks:     1,
		Range:       0.25,
		Speed:       1,
	}},
	ids.Battlecruiser: {
		{Target: Ground, Damage: 8, Attacks: 1, Range: 6, Speed: 0.16},
		{Target: Air, Damage: 5, Attacks: 1, Range: 6, Speed: 0.16},
	},
	ids.Bunker: {{Target: Any, Damage: 6, Attacks: 4, Range: 6, Speed: 0.61}},
	ids.Carrier: {{Target: Any, Damage: 5, Attacks: 16, Range: 8, Speed: 2.14}},
	ids.Oracle: {{
		Target:      Ground,
		Damage:      15,
		DamageBonus: []DamageBonus{{Light, 7}},
		Attacks:     1,
		Range:       4,
		Speed:       0.61,
	}},
	ids.WidowMine: {{
		Target:      Any,
		Damage:      125,
		DamageBonus: []DamageBonus{{Armored, 35}},
		Attacks:     1,
		Range:       5,
		Speed:       29,
	}},
}

// NoWeapons are disguised forms that never attack whatever the data says.
var NoWeapons = map[ids.UnitTypeID]bool{
	ids.Changeling:              true,
	ids.ChangelingZealot:        true,
	ids.ChangelingMarineShield:  true,
	ids.ChangelingMarine:        true,
	ids.ChangelingZerglingWings: true,
	ids.ChangelingZergling:      true,
}

// CocoonWeapons maps transitional forms to the type whose weapons they use.
// Baneling forms resolve through MissedWeapons, the ravager cocoon through
// the reference tables.
var CocoonWeapons = map[ids.UnitTypeID]ids.UnitTypeID{
	ids.BanelingBurrowed: ids.Baneling,
	ids.BanelingCocoon:   ids.Baneling,
	ids.RavagerCocoon:    ids.Ravager,
}

// ---- Defense ----

const (
	ArmorReductionDebuff        = ids.RavenShredderMissileArmorReduction
	ArmorReductionPenalty int32 = 3

	GuardianShieldBonus    int32   = 2
	GuardianShieldMinRange float32 = 2
)

// ArmorUpgrade adds Bonus armor when the defender's owner has Upgrade.
type ArmorUpgrade struct {
	Upgrade ids.UpgradeID
	Bonus   int32
}

// TerranStructureArmor applies to every Terran structure.
var TerranStructureArmor = ArmorUpgrade{ids.TerranBuildingArmor, 2}

// UnitArmorUpgrades apply to specific non-Terran types.
var UnitArmorUpgrades = map[ids.UnitTypeID]ArmorUpgrade{
	ids.Ultralisk:         {ids.ChitinousPlating, 2},
	ids.UltraliskBurrowed: {ids.ChitinousPlating, 2},
}

// AlwaysAttackable types can be hit by ground and air weapons alike.
var AlwaysAttackable = map[ids.UnitTypeID]bool{
	ids.Colossus: true,
}

// SiegedMinRangeSquared is the squared distance at or below which a sieged
// tank cannot fire.
const SiegedMinRangeSquared float32 = 4

// ---- Detection ----

var DetectorTypes = map[ids.UnitTypeID]bool{
	ids.Observer:          true,
	ids.ObserverSiegeMode: true,
	ids.Raven:             true,
	ids.Overseer:          true,
	ids.OverseerSiegeMode: true,
}

// ReadyDetectorTypes detect once construction finishes.
var ReadyDetectorTypes = map[ids.UnitTypeID]bool{
	ids.MissileTurret: true,
	ids.SporeCrawler:  true,
}

// PoweredDetectorTypes additionally need power.
var PoweredDetectorTypes = map[ids.UnitTypeID]bool{
	ids.PhotonCannon: true,
}

// DetectRangeOverrides replace the reported detect range.
var DetectRangeOverrides = map[ids.UnitTypeID]float32{
	ids.Observer:          11,
	ids.ObserverSiegeMode: 13.75,
}

// ---- Orders ----

var AttackAbilities = map[ids.AbilityID]bool{
	ids.Attack:              true,
	ids.AttackAttack:        true,
	ids.AttackAttackTowards: true,
	ids.AttackAttackBarrage: true,
	ids.ScanMove:            true,
}

var RepairAbilities = map[ids.AbilityID]bool{
	ids.EffectRepair:     true,
	ids.EffectRepairSCV:  true,
	ids.EffectRepairMule: true,
}

var TechlabAbilities = map[ids.AbilityID]bool{
	ids.BuildTechLabBarracks: true,
	ids.BuildTechLabFactory:  true,
	ids.BuildTechLabStarport: true,
}

var ReactorAbilities = map[ids.AbilityID]bool{
	ids.BuildReactorBarracks: true,
	ids.BuildReactorFactory:  true,
	ids.BuildReactorStarport: true,
}

// WarpGateAbilities maps a unit type to its warp-in ability.
var WarpGateAbilities = map[ids.UnitTypeID]ids.AbilityID{
	ids.Zealot:      ids.WarpGateTrainZealot,
	ids.Stalker:     ids.WarpGateTrainStalker,
	ids.HighTemplar: ids.WarpGateTrainHighTemplar,
	ids.DarkTemplar: ids.WarpGateTrainDarkTemplar,
	ids.Sentry:      ids.WarpGateTrainSentry,
	ids.Adept:       ids.WarpGateTrainAdept,
}

// ResearchOverrides are upgrades researched through a shared ability that
// the upgrade table does not record.
var ResearchOverrides = map[ids.UpgradeID]ids.AbilityID{
	ids.TerranVehicleAndShipArmorsLevel1: ids.ResearchTerranVehicleAndShipPlating,
	ids.TerranVehicleAndShipArmorsLevel2: ids.ResearchTerranVehicleAndShipPlating,
	ids.TerranVehicleAndShipArmorsLevel3: ids.ResearchTerranVehicleAndShipPlating,
}

// ---- Races ----

// RaceValues are the race-specific basics a bot needs.
type RaceValues struct {
	StartTownhall ids.UnitTypeID
	Gas           ids.UnitTypeID
	Supply        ids.UnitTypeID
	Worker        ids.UnitTypeID
}

var raceValues = map[Race]RaceValues{
	Terran:  {ids.CommandCenter, ids.Refinery, ids.SupplyDepot, ids.SCV},
	Protoss: {ids.Nexus, ids.Assimilator, ids.Pylon, ids.Probe},
	Zerg:    {ids.Hatchery, ids.Extractor, ids.Overlord, ids.Drone},
}

// RaceValuesFor returns the values for r; Random yields the zero value.
func RaceValuesFor(r Race) RaceValues {
	return raceValues[r]
}

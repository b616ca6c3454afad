// Package ids holds the numeric identifiers the game uses on the wire for
// unit types, abilities, buffs and upgrades. Values match the game's stable
// data ids so raw observations can be compared without translation.
package ids

// UnitTypeID identifies a unit type.
type UnitTypeID uint32

// AbilityID identifies an ability (orders, trains, builds, researches).
type AbilityID uint32

// BuffID identifies a buff or debuff applied to a unit.
type BuffID uint32

// UpgradeID identifies a researchable upgrade.
type UpgradeID uint32

// Unit types referenced by the core. Only types with special handling or
// used by the bundled reference data are listed.
const (
	Colossus                UnitTypeID = 4
	BanelingCocoon          UnitTypeID = 8
	Baneling                UnitTypeID = 9
	Mothership              UnitTypeID = 10
	Changeling              UnitTypeID = 12
	ChangelingZealot        UnitTypeID = 13
	ChangelingMarineShield  UnitTypeID = 14
	ChangelingMarine        UnitTypeID = 15
	ChangelingZerglingWings UnitTypeID = 16
	ChangelingZergling      UnitTypeID = 17
	CommandCenter           UnitTypeID = 18
	SupplyDepot             UnitTypeID = 19
	Refinery                UnitTypeID = 20
	Barracks                UnitTypeID = 21
	EngineeringBay          UnitTypeID = 22
	MissileTurret           UnitTypeID = 23
	Bunker                  UnitTypeID = 24
	Factory                 UnitTypeID = 27
	Starport                UnitTypeID = 28
	AutoTurret              UnitTypeID = 31
	SiegeTankSieged         UnitTypeID = 32
	SiegeTank               UnitTypeID = 33
	VikingAssault           UnitTypeID = 34
	VikingFighter           UnitTypeID = 35
	CommandCenterFlying     UnitTypeID = 36
	BarracksTechLab         UnitTypeID = 37
	BarracksReactor         UnitTypeID = 38
	FactoryTechLab          UnitTypeID = 39
	FactoryReactor          UnitTypeID = 40
	StarportTechLab         UnitTypeID = 41
	StarportReactor         UnitTypeID = 42
	SCV                     UnitTypeID = 45
	Marine                  UnitTypeID = 48
	Reaper                  UnitTypeID = 49
	Ghost                   UnitTypeID = 50
	Marauder                UnitTypeID = 51
	Thor                    UnitTypeID = 52
	Hellion                 UnitTypeID = 53
	Medivac                 UnitTypeID = 54
	Banshee                 UnitTypeID = 55
	Raven                   UnitTypeID = 56
	Battlecruiser           UnitTypeID = 57
	Nexus                   UnitTypeID = 59
	Pylon                   UnitTypeID = 60
	Assimilator             UnitTypeID = 61
	Gateway                 UnitTypeID = 62
	PhotonCannon            UnitTypeID = 66
	Zealot                  UnitTypeID = 73
	Stalker                 UnitTypeID = 74
	HighTemplar             UnitTypeID = 75
	DarkTemplar             UnitTypeID = 76
	Sentry                  UnitTypeID = 77
	Phoenix                 UnitTypeID = 78
	Carrier                 UnitTypeID = 79
	VoidRay                 UnitTypeID = 80
	WarpPrism               UnitTypeID = 81
	Observer                UnitTypeID = 82
	Immortal                UnitTypeID = 83
	Probe                   UnitTypeID = 84
	Hatchery                UnitTypeID = 86
	Extractor               UnitTypeID = 88
	SpawningPool            UnitTypeID = 89
	SporeCrawler            UnitTypeID = 99
	Lair                    UnitTypeID = 100
	Hive                    UnitTypeID = 101
	Drone                   UnitTypeID = 104
	Zergling                UnitTypeID = 105
	Overlord                UnitTypeID = 106
	Hydralisk               UnitTypeID = 107
	Mutalisk                UnitTypeID = 108
	Ultralisk               UnitTypeID = 109
	Roach                   UnitTypeID = 110
	BanelingBurrowed        UnitTypeID = 115
	DroneBurrowed           UnitTypeID = 116
	Queen                   UnitTypeID = 126
	Overseer                UnitTypeID = 129
	PlanetaryFortress       UnitTypeID = 130
	UltraliskBurrowed       UnitTypeID = 131
	OrbitalCommand          UnitTypeID = 132
	WarpGate                UnitTypeID = 133
	OrbitalCommandFlying    UnitTypeID = 134
	Archon                  UnitTypeID = 141
	MULE                    UnitTypeID = 268
	Adept                   UnitTypeID = 311
	MineralField            UnitTypeID = 341
	VespeneGeyser           UnitTypeID = 342
	HellionTank             UnitTypeID = 484
	Oracle                  UnitTypeID = 495
	Tempest                 UnitTypeID = 496
	WidowMine               UnitTypeID = 498
	RavagerCocoon           UnitTypeID = 687
	Ravager                 UnitTypeID = 688
	Liberator               UnitTypeID = 689
	Cyclone                 UnitTypeID = 692
	ShieldBattery           UnitTypeID = 1910
	ObserverSiegeMode       UnitTypeID = 1911
	OverseerSiegeMode       UnitTypeID = 1912
)

// Abilities referenced by the core and the command sugar.
const (
	Smart                               AbilityID = 1
	StopStop                            AbilityID = 4
	MoveMove                            AbilityID = 16
	PatrolPatrol                        AbilityID = 17
	HoldPositionHold                    AbilityID = 18
	ScanMove                            AbilityID = 19
	AttackAttack                        AbilityID = 23
	AttackAttackTowards                 AbilityID = 24
	AttackAttackBarrage                 AbilityID = 25
	EffectRepairMule                    AbilityID = 78
	CancelQueue5                        AbilityID = 306
	CancelQueueCancelToSelection        AbilityID = 308
	CancelBuildInProgress               AbilityID = 314
	EffectRepairSCV                     AbilityID = 316
	BuildCommandCenter                  AbilityID = 318
	BuildSupplyDepot                    AbilityID = 319
	BuildRefinery                       AbilityID = 320
	BuildBarracks                       AbilityID = 321
	BuildEngineeringBay                 AbilityID = 322
	BuildMissileTurret                  AbilityID = 323
	BuildBunker                         AbilityID = 324
	BuildFactory                        AbilityID = 328
	BuildStarport                       AbilityID = 329
	BuildTechLabBarracks                AbilityID = 421
	BuildReactorBarracks                AbilityID = 422
	BuildTechLabFactory                 AbilityID = 454
	BuildReactorFactory                 AbilityID = 455
	BuildTechLabStarport                AbilityID = 487
	BuildReactorStarport                AbilityID = 488
	TrainSCV                            AbilityID = 524
	MorphSupplyDepotLower               AbilityID = 556
	TrainMarine                         AbilityID = 560
	TrainReaper                         AbilityID = 561
	TrainMarauder                       AbilityID = 563
	ResearchStimpack                    AbilityID = 730
	ResearchCombatShield                AbilityID = 731
	ResearchConcussiveShells            AbilityID = 761
	BuildNexus                          AbilityID = 880
	BuildPylon                          AbilityID = 881
	BuildAssimilator                    AbilityID = 882
	BuildGateway                        AbilityID = 883
	TrainZealot                         AbilityID = 916
	TrainStalker                        AbilityID = 917
	TrainProbe                          AbilityID = 1006
	BuildHatchery                       AbilityID = 1152
	BuildExtractor                      AbilityID = 1154
	BuildSpawningPool                   AbilityID = 1155
	TrainDrone                          AbilityID = 1342
	TrainZergling                       AbilityID = 1343
	WarpGateTrainZealot                 AbilityID = 1413
	WarpGateTrainStalker                AbilityID = 1414
	WarpGateTrainHighTemplar            AbilityID = 1416
	WarpGateTrainDarkTemplar            AbilityID = 1417
	WarpGateTrainSentry                 AbilityID = 1418
	WarpGateTrainAdept                  AbilityID = 1419
	Stop                                AbilityID = 3665
	HarvestGather                       AbilityID = 3666
	HarvestReturn                       AbilityID = 3667
	Attack                              AbilityID = 3674
	EffectRepair                        AbilityID = 3685
	ResearchTerranVehicleAndShipPlating AbilityID = 3699
	HoldPosition                        AbilityID = 3793
	Move                                AbilityID = 3794
	Patrol                              AbilityID = 3795
)

// Buffs referenced by the derived stat engine.
const (
	GuardianShield                          BuffID = 18
	TimeWarpProduction                      BuffID = 20
	FungalGrowth                            BuffID = 17
	StimpackMarauder                        BuffID = 24
	Stimpack                                BuffID = 27
	Charging                                BuffID = 30
	Slow                                    BuffID = 33
	MedivacSpeedBoost                       BuffID = 89
	VoidRaySwarmDamageBoost                 BuffID = 122
	CarryMineralFieldMinerals               BuffID = 271
	CarryHighYieldMineralFieldMinerals      BuffID = 272
	CarryHarvestableVespeneGeyserGas        BuffID = 273
	CarryHarvestableVespeneGeyserGasProtoss BuffID = 274
	CarryHarvestableVespeneGeyserGasZerg    BuffID = 275
	InhibitorZoneTemporalField              BuffID = 289
	RavenShredderMissileArmorReduction      BuffID = 298
)

// Upgrades referenced by the derived stat engine and command sugar.
const (
	TerranBuildingArmor              UpgradeID = 13
	StimpackResearch                 UpgradeID = 15
	ShieldWall                       UpgradeID = 16
	PunisherGrenades                 UpgradeID = 17
	HighCapacityBarrels              UpgradeID = 19
	HiSecAutoTracking                UpgradeID = 5
	Charge                           UpgradeID = 86
	Overlordspeed                    UpgradeID = 62
	GlialReconstitution              UpgradeID = 2
	Zerglingmovementspeed            UpgradeID = 66
	Zerglingattackspeed              UpgradeID = 65
	CentrificalHooks                 UpgradeID = 75
	EvolveGroovedSpines              UpgradeID = 134
	EvolveMuscularAugments           UpgradeID = 135
	AnabolicSynthesis                UpgradeID = 88
	ChitinousPlating                 UpgradeID = 4
	PhoenixRangeUpgrade              UpgradeID = 99
	AdeptPiercingAttack              UpgradeID = 130
	TerranVehicleAndShipArmorsLevel1 UpgradeID = 116
	TerranVehicleAndShipArmorsLevel2 UpgradeID = 117
	TerranVehicleAndShipArmorsLevel3 UpgradeID = 118
	TerranInfantryWeaponsLevel1      UpgradeID = 7
	TerranInfantryArmorsLevel1       UpgradeID = 11
)

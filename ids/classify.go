package ids

var workerTypes = map[UnitTypeID]bool{
	SCV: true, Probe: true, Drone: true, DroneBurrowed: true, MULE: true,
}

var townhallTypes = map[UnitTypeID]bool{
	CommandCenter: true, CommandCenterFlying: true,
	OrbitalCommand: true, OrbitalCommandFlying: true, PlanetaryFortress: true,
	Nexus: true, Hatchery: true, Lair: true, Hive: true,
}

var addonTypes = map[UnitTypeID]bool{
	BarracksTechLab: true, BarracksReactor: true,
	FactoryTechLab: true, FactoryReactor: true,
	StarportTechLab: true, StarportReactor: true,
}

var techlabTypes = map[UnitTypeID]bool{
	BarracksTechLab: true, FactoryTechLab: true, StarportTechLab: true,
}

var reactorTypes = map[UnitTypeID]bool{
	BarracksReactor: true, FactoryReactor: true, StarportReactor: true,
}

// Ground attackers whose primary weapon range is below 1.
var meleeTypes = map[UnitTypeID]bool{
	SCV: true, Probe: true, Drone: true, DroneBurrowed: true, MULE: true,
	Zealot: true, DarkTemplar: true,
	Zergling: true, Baneling: true, BanelingBurrowed: true,
	Ultralisk: true, UltraliskBurrowed: true,
}

// constructingAbilities are the worker build orders. Add-on and morph
// abilities are not included: the producing structure is the one busy.
var constructingAbilities = map[AbilityID]bool{
	BuildCommandCenter: true, BuildSupplyDepot: true, BuildRefinery: true,
	BuildBarracks: true, BuildEngineeringBay: true, BuildMissileTurret: true,
	BuildBunker: true, BuildFactory: true, BuildStarport: true,
	BuildNexus: true, BuildPylon: true, BuildAssimilator: true, BuildGateway: true,
	BuildHatchery: true, BuildExtractor: true, BuildSpawningPool: true,
}

func (t UnitTypeID) IsWorker() bool   { return workerTypes[t] }
func (t UnitTypeID) IsTownhall() bool { return townhallTypes[t] }
func (t UnitTypeID) IsAddon() bool    { return addonTypes[t] }
func (t UnitTypeID) IsMelee() bool    { return meleeTypes[t] }
func (t UnitTypeID) IsTechlab() bool  { return techlabTypes[t] }
func (t UnitTypeID) IsReactor() bool  { return reactorTypes[t] }

// IsConstructing reports whether a worker using this ability is placing a structure.
func (a AbilityID) IsConstructing() bool { return constructingAbilities[a] }

// Package bwtypes holds the core enumerations shared by every planning
// subsystem: flag/road lifecycle states, building quality, the reduced
// goods ladder, underground resource kinds, and building types.
package bwtypes

import "fmt"

// FlagState is the committed lifecycle state of a flag at a map point.
type FlagState int

const (
	FlagDoesNotExist FlagState = iota
	FlagRequested
	FlagFinished
	FlagDestructionRequested
)

func (s FlagState) String() string {
	switch s {
	case FlagDoesNotExist:
		return "DoesNotExist"
	case FlagRequested:
		return "Requested"
	case FlagFinished:
		return "Finished"
	case FlagDestructionRequested:
		return "DestructionRequested"
	default:
		return fmt.Sprintf("FlagState(%d)", int(s))
	}
}

// RoadState is the committed lifecycle state of a road segment.
type RoadState int

const (
	RoadDoesNotExist RoadState = iota
	RoadRequested
	RoadFinished
	RoadDestructionRequested
)

func (s RoadState) String() string {
	switch s {
	case RoadDoesNotExist:
		return "DoesNotExist"
	case RoadRequested:
		return "Requested"
	case RoadFinished:
		return "Finished"
	case RoadDestructionRequested:
		return "DestructionRequested"
	default:
		return fmt.Sprintf("RoadState(%d)", int(s))
	}
}

// BuildingState is the committed lifecycle state of a building.
type BuildingState int

const (
	BuildingPlanningRequest BuildingState = iota
	BuildingConstructionRequested
	BuildingUnderConstruction
	BuildingFinished
	BuildingDestructionRequested
)

func (s BuildingState) String() string {
	switch s {
	case BuildingPlanningRequest:
		return "PlanningRequest"
	case BuildingConstructionRequested:
		return "ConstructionRequested"
	case BuildingUnderConstruction:
		return "UnderConstruction"
	case BuildingFinished:
		return "Finished"
	case BuildingDestructionRequested:
		return "DestructionRequested"
	default:
		return fmt.Sprintf("BuildingState(%d)", int(s))
	}
}

// HasValidPoint reports whether a building in this state must carry a
// valid map point (testable property, spec §8).
func (s BuildingState) HasValidPoint() bool {
	switch s {
	case BuildingConstructionRequested, BuildingUnderConstruction, BuildingFinished, BuildingDestructionRequested:
		return true
	default:
		return false
	}
}

// BuildingQuality is the ordered ladder a point's terrain supports, plus
// the two non-ordered specials (mine, harbour).
type BuildingQuality int

const (
	BQNone BuildingQuality = iota
	BQFlag
	BQHut
	BQHouse
	BQCastle
	BQMine
	BQHarbour
)

func (q BuildingQuality) String() string {
	switch q {
	case BQNone:
		return "None"
	case BQFlag:
		return "Flag"
	case BQHut:
		return "Hut"
	case BQHouse:
		return "House"
	case BQCastle:
		return "Castle"
	case BQMine:
		return "Mine"
	case BQHarbour:
		return "Harbour"
	default:
		return fmt.Sprintf("BuildingQuality(%d)", int(q))
	}
}

// Covers reports whether this quality is sufficient to host a building
// that requires `want`. Mine and harbour only cover themselves; the
// ordered ladder covers anything at or below it.
func (q BuildingQuality) Covers(want BuildingQuality) bool {
	switch want {
	case BQMine:
		return q == BQMine
	case BQHarbour:
		return q == BQHarbour
	default:
		return q >= want && q <= BQCastle
	}
}

// GoodType is the reduced goods ladder used by the production planner.
// Ordered so that production of a good never depends on a good with a
// larger index (original_source Types.h BGoodType).
type GoodType int

const (
	GoodWeapon GoodType = iota
	GoodBeer
	GoodTool
	GoodShip
	GoodDonkey
	GoodCoin
	GoodIron
	GoodCoal
	GoodIronOre
	GoodGold
	GoodBoard
	GoodWood
	GoodTree
	GoodStone
	GoodFood
	GoodFlour
	GoodPig
	GoodGrain
	GoodWater
	GoodNone
	goodCount
)

var goodNames = [goodCount]string{
	GoodWeapon: "weapon", GoodBeer: "beer", GoodTool: "tool", GoodShip: "ship",
	GoodDonkey: "donkey", GoodCoin: "coin", GoodIron: "iron", GoodCoal: "coal",
	GoodIronOre: "iron_ore", GoodGold: "gold", GoodBoard: "board", GoodWood: "wood",
	GoodTree: "tree", GoodStone: "stone", GoodFood: "food", GoodFlour: "flour",
	GoodPig: "pig", GoodGrain: "grain", GoodWater: "water", GoodNone: "none",
}

func (g GoodType) String() string {
	if g >= 0 && g < goodCount {
		return goodNames[g]
	}
	return fmt.Sprintf("GoodType(%d)", int(g))
}

// GoodCount is the number of distinct goods in the reduced ladder.
const GoodCount = int(goodCount)

// ResourceType is an underground/terrain resource kind tracked by the
// resource map, each with its own query radius (ProductionConsts.h).
type ResourceType int

const (
	ResourceIron ResourceType = iota
	ResourceGold
	ResourceCoal
	ResourceGranite
	ResourceWater
	ResourcePlantSpace2
	ResourcePlantSpace6
	ResourceFish
	ResourceHuntableAnimals
	ResourceWood
	ResourceStone
	resourceCount
)

// ResourceCount is the number of distinct resource kinds.
const ResourceCount = int(resourceCount)

func (r ResourceType) String() string {
	switch r {
	case ResourceIron:
		return "iron"
	case ResourceGold:
		return "gold"
	case ResourceCoal:
		return "coal"
	case ResourceGranite:
		return "granite"
	case ResourceWater:
		return "water"
	case ResourcePlantSpace2:
		return "plantspace2"
	case ResourcePlantSpace6:
		return "plantspace6"
	case ResourceFish:
		return "fish"
	case ResourceHuntableAnimals:
		return "huntable_animals"
	case ResourceWood:
		return "wood"
	case ResourceStone:
		return "stone"
	default:
		return fmt.Sprintf("ResourceType(%d)", int(r))
	}
}

// Radius returns the query radius (in hex steps) at which a building
// consuming this resource reaches out to harvest it.
func (r ResourceType) Radius() int {
	switch r {
	case ResourceWater:
		return 1
	case ResourceIron, ResourceGold, ResourceCoal, ResourceGranite, ResourcePlantSpace2:
		return 2
	case ResourcePlantSpace6, ResourceWood:
		return 6
	case ResourceFish:
		return 7
	case ResourceStone:
		return 8
	case ResourceHuntableAnimals:
		return 20
	default:
		return 0
	}
}

// BuildingType enumerates the engine's building kinds the planner reasons
// about directly. The host engine may define a richer set; this is the
// closed subset the production/scoring tables key off.
type BuildingType int

const (
	BldWoodcutter BuildingType = iota
	BldForester
	BldSawmill
	BldQuarry
	BldGraniteMine
	BldCoalMine
	BldIronMine
	BldGoldMine
	BldIronSmelter
	BldArmory
	BldMetalworks
	BldMint
	BldWell
	BldFarm
	BldMill
	BldBakery
	BldPigFarm
	BldSlaughterhouse
	BldBrewery
	BldDonkeyBreeder
	BldFisher
	BldHunter
	BldCharburner
	BldStorehouse
	BldHeadquarters
	BldHarbour
	BldBarracks
	BldGuardhouse
	BldWatchtower
	BldFortress
	BldCatapult
	BldLookoutTower
	buildingTypeCount
)

// BuildingTypeCount is the number of distinct building types.
const BuildingTypeCount = int(buildingTypeCount)

var buildingTypeNames = [buildingTypeCount]string{
	BldWoodcutter: "woodcutter", BldForester: "forester", BldSawmill: "sawmill",
	BldQuarry: "quarry", BldGraniteMine: "granite_mine", BldCoalMine: "coal_mine",
	BldIronMine: "iron_mine", BldGoldMine: "gold_mine", BldIronSmelter: "iron_smelter",
	BldArmory: "armory", BldMetalworks: "metalworks", BldMint: "mint", BldWell: "well",
	BldFarm: "farm", BldMill: "mill", BldBakery: "bakery", BldPigFarm: "pig_farm",
	BldSlaughterhouse: "slaughterhouse", BldBrewery: "brewery", BldDonkeyBreeder: "donkey_breeder",
	BldFisher: "fisher", BldHunter: "hunter", BldCharburner: "charburner",
	BldStorehouse: "storehouse", BldHeadquarters: "headquarters", BldHarbour: "harbour",
	BldBarracks: "barracks", BldGuardhouse: "guardhouse", BldWatchtower: "watchtower",
	BldFortress: "fortress", BldCatapult: "catapult", BldLookoutTower: "lookout_tower",
}

func (b BuildingType) String() string {
	if b >= 0 && b < buildingTypeCount {
		return buildingTypeNames[b]
	}
	return fmt.Sprintf("BuildingType(%d)", int(b))
}

// Size returns the building quality required to host this type. Mines
// and the harbour use the non-ordered specials; military buildings scale
// with the ordered ladder by rank.
func (b BuildingType) Size() BuildingQuality {
	switch b {
	case BldGraniteMine, BldCoalMine, BldIronMine, BldGoldMine:
		return BQMine
	case BldHarbour:
		return BQHarbour
	case BldWoodcutter, BldForester, BldWell, BldFarm, BldFisher, BldHunter, BldCharburner, BldBarracks:
		return BQHut
	case BldSawmill, BldMill, BldBakery, BldPigFarm, BldSlaughterhouse, BldBrewery,
		BldDonkeyBreeder, BldIronSmelter, BldArmory, BldMetalworks, BldMint,
		BldGuardhouse, BldWatchtower, BldQuarry, BldLookoutTower:
		return BQHouse
	case BldStorehouse, BldHeadquarters, BldFortress, BldCatapult:
		return BQCastle
	default:
		return BQHut
	}
}

// IsMilitary reports whether this building type garrisons soldiers and
// therefore participates in territory capture and attack planning.
func (b BuildingType) IsMilitary() bool {
	switch b {
	case BldBarracks, BldGuardhouse, BldWatchtower, BldFortress:
		return true
	default:
		return false
	}
}

// MilitaryRank orders military building types from weakest to strongest,
// used when the expansion planner upgrades a candidate's type.
func (b BuildingType) MilitaryRank() int {
	switch b {
	case BldBarracks:
		return 0
	case BldGuardhouse:
		return 1
	case BldWatchtower:
		return 2
	case BldFortress:
		return 3
	default:
		return -1
	}
}

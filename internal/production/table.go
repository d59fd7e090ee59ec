// Package production holds the static goods-flow table every production
// building type follows, and the production planner that requests new
// buildings to balance a region's supply and demand.
//
// The table in this file is ported directly from the PRODUCTION array in
// original_source/libs/s25main/ai/beowulf/ProductionConsts.h (spec §11
// supplemented feature), translated from the engine's full ware enum to
// this module's reduced bwtypes.GoodType ladder.
package production

import "hearthold/internal/bwtypes"

// Stats describes one building type's production: the good it produces
// (GoodNone if it produces nothing directly consumable, e.g. a
// catapult), the goods it consumes, and its relative production speed
// (higher means more output per unit time, used to balance overhead
// targets in §4.10's "keep production >= consumption + one producer
// speed" rules).
type Stats struct {
	Produces bwtypes.GoodType
	Consumes []bwtypes.GoodType
	Speed    int
}

// Table maps every building type to its production statistics.
var Table = map[bwtypes.BuildingType]Stats{
	bwtypes.BldWoodcutter:     {Produces: bwtypes.GoodWood, Speed: 10},
	bwtypes.BldForester:       {Produces: bwtypes.GoodTree, Speed: 10},
	bwtypes.BldSawmill:        {Produces: bwtypes.GoodBoard, Consumes: []bwtypes.GoodType{bwtypes.GoodWood}, Speed: 20},
	bwtypes.BldQuarry:         {Produces: bwtypes.GoodStone, Speed: 8},
	bwtypes.BldGraniteMine:    {Produces: bwtypes.GoodStone, Consumes: []bwtypes.GoodType{bwtypes.GoodFood}, Speed: 5},
	bwtypes.BldCoalMine:       {Produces: bwtypes.GoodCoal, Consumes: []bwtypes.GoodType{bwtypes.GoodFood}, Speed: 5},
	bwtypes.BldIronMine:       {Produces: bwtypes.GoodIronOre, Consumes: []bwtypes.GoodType{bwtypes.GoodFood}, Speed: 5},
	bwtypes.BldGoldMine:       {Produces: bwtypes.GoodGold, Consumes: []bwtypes.GoodType{bwtypes.GoodFood}, Speed: 5},
	bwtypes.BldIronSmelter:    {Produces: bwtypes.GoodIron, Consumes: []bwtypes.GoodType{bwtypes.GoodIronOre, bwtypes.GoodCoal}, Speed: 10},
	bwtypes.BldArmory:         {Produces: bwtypes.GoodWeapon, Consumes: []bwtypes.GoodType{bwtypes.GoodIron, bwtypes.GoodCoal}, Speed: 10},
	bwtypes.BldMetalworks:     {Produces: bwtypes.GoodTool, Consumes: []bwtypes.GoodType{bwtypes.GoodIron, bwtypes.GoodBoard}, Speed: 10},
	bwtypes.BldMint:           {Produces: bwtypes.GoodCoin, Consumes: []bwtypes.GoodType{bwtypes.GoodGold, bwtypes.GoodCoal}, Speed: 10},
	bwtypes.BldWell:           {Produces: bwtypes.GoodWater, Speed: 50},
	bwtypes.BldFarm:           {Produces: bwtypes.GoodGrain, Speed: 5},
	bwtypes.BldMill:           {Produces: bwtypes.GoodFlour, Consumes: []bwtypes.GoodType{bwtypes.GoodGrain}, Speed: 15},
	bwtypes.BldBakery:         {Produces: bwtypes.GoodFood, Consumes: []bwtypes.GoodType{bwtypes.GoodFlour, bwtypes.GoodWater}, Speed: 10},
	bwtypes.BldPigFarm:        {Produces: bwtypes.GoodPig, Consumes: []bwtypes.GoodType{bwtypes.GoodGrain, bwtypes.GoodWater}, Speed: 8},
	bwtypes.BldSlaughterhouse: {Produces: bwtypes.GoodFood, Consumes: []bwtypes.GoodType{bwtypes.GoodPig}, Speed: 10},
	bwtypes.BldBrewery:        {Produces: bwtypes.GoodBeer, Consumes: []bwtypes.GoodType{bwtypes.GoodGrain, bwtypes.GoodWater}, Speed: 10},
	bwtypes.BldDonkeyBreeder:  {Produces: bwtypes.GoodDonkey, Consumes: []bwtypes.GoodType{bwtypes.GoodGrain, bwtypes.GoodWater}, Speed: 10},
	bwtypes.BldFisher:         {Produces: bwtypes.GoodFood, Speed: 10},
	bwtypes.BldHunter:         {Produces: bwtypes.GoodFood, Speed: 6},
	bwtypes.BldCharburner:     {Produces: bwtypes.GoodCoal, Consumes: []bwtypes.GoodType{bwtypes.GoodWood}, Speed: 8},
}

// StatsFor returns the production statistics for t, or an entry that
// produces GoodNone and consumes nothing for non-production types such as
// military buildings or storehouses.
func StatsFor(t bwtypes.BuildingType) Stats {
	if s, ok := Table[t]; ok {
		return s
	}
	return Stats{Produces: bwtypes.GoodNone}
}

// fibonacciThresholds backs the §4.10 "Fibonacci threshold indexed by
// [sawmill/quarry] count" rule that gates seeding a second production
// group once military building count outpaces it.
var fibonacciThresholds = []int{1, 2, 3, 5, 8, 13, 21, 34}

// FibonacciThreshold returns the Fibonacci-scaled military-building
// threshold for the nth (0-indexed) producer of a given chain, clamping
// to the table's largest entry once count exceeds it.
func FibonacciThreshold(producerCount int) int {
	if producerCount < 0 {
		producerCount = 0
	}
	if producerCount >= len(fibonacciThresholds) {
		return fibonacciThresholds[len(fibonacciThresholds)-1]
	}
	return fibonacciThresholds[producerCount]
}

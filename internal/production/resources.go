package production

import "hearthold/internal/bwtypes"

// RequiredResource maps each resource-gathering building type to the
// bwtypes.ResourceType its placement scoring must check via the resource
// map's GetReachable (spec §4.7's "resource abundance" criterion). Types
// absent from this map have no resource-abundance gate — their placement
// is scored purely on distance/grouping criteria.
//
// Ported from the REQUIRED_RESOURCES table in
// original_source/.../ProductionConsts.h (spec §11 supplemented
// feature); this formalises what §4.7 otherwise leaves as an unstated
// per-type special case.
var RequiredResource = map[bwtypes.BuildingType]bwtypes.ResourceType{
	bwtypes.BldWoodcutter:  bwtypes.ResourceWood,
	bwtypes.BldForester:    bwtypes.ResourcePlantSpace6,
	bwtypes.BldQuarry:      bwtypes.ResourceStone,
	bwtypes.BldGraniteMine: bwtypes.ResourceGranite,
	bwtypes.BldCoalMine:    bwtypes.ResourceCoal,
	bwtypes.BldIronMine:    bwtypes.ResourceIron,
	bwtypes.BldGoldMine:    bwtypes.ResourceGold,
	bwtypes.BldWell:        bwtypes.ResourceWater,
	bwtypes.BldFarm:        bwtypes.ResourcePlantSpace2,
	bwtypes.BldFisher:      bwtypes.ResourceFish,
	bwtypes.BldHunter:      bwtypes.ResourceHuntableAnimals,
	bwtypes.BldCharburner:  bwtypes.ResourcePlantSpace6,
}

// Minimum thresholds (arbitrary bucketed units, spec §4.7) below which a
// candidate site is simply illegal for that type rather than merely
// low-scoring.
var minimumResourceThreshold = map[bwtypes.BuildingType]int{
	bwtypes.BldWoodcutter:  3,
	bwtypes.BldQuarry:      5,
	bwtypes.BldGraniteMine: 1,
	bwtypes.BldCoalMine:    1,
	bwtypes.BldIronMine:    1,
	bwtypes.BldGoldMine:    1,
	bwtypes.BldFisher:      1,
	bwtypes.BldHunter:      1,
}

// MinimumResource returns the minimum abundance (by the bucketed scale
// used in scoring) required for t to be placeable at all, or 0 if t has
// no minimum.
func MinimumResource(t bwtypes.BuildingType) int {
	return minimumResourceThreshold[t]
}

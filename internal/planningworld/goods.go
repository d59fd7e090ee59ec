package planningworld

import "hearthold/internal/bwtypes"

// destinationRule describes where a building's output should flow:
// either to the nearest matching member of its own production group, or
// to the nearest building of a candidate type anywhere in the same road
// network.
type destinationRule struct {
	checkGroup bool
	candidates []bwtypes.BuildingType
}

// destinationTable mirrors spec §4.3's "Goods destination lookup"
// example entries, generalised to the full production chain named in
// §4.10/§11's ported production table.
var destinationTable = map[bwtypes.BuildingType]destinationRule{
	bwtypes.BldWoodcutter: {checkGroup: true, candidates: []bwtypes.BuildingType{bwtypes.BldSawmill}},
	bwtypes.BldForester:   {checkGroup: false, candidates: []bwtypes.BuildingType{bwtypes.BldSawmill}},
	bwtypes.BldIronSmelter: {checkGroup: true, candidates: []bwtypes.BuildingType{bwtypes.BldArmory, bwtypes.BldMetalworks}},
	bwtypes.BldWell: {checkGroup: true, candidates: []bwtypes.BuildingType{
		bwtypes.BldBakery, bwtypes.BldBrewery, bwtypes.BldDonkeyBreeder, bwtypes.BldSlaughterhouse,
	}},
	bwtypes.BldFarm: {checkGroup: false, candidates: []bwtypes.BuildingType{
		bwtypes.BldMill, bwtypes.BldPigFarm, bwtypes.BldDonkeyBreeder, bwtypes.BldBrewery,
	}},
	bwtypes.BldMill:      {checkGroup: true, candidates: []bwtypes.BuildingType{bwtypes.BldBakery}},
	bwtypes.BldPigFarm:   {checkGroup: true, candidates: []bwtypes.BuildingType{bwtypes.BldSlaughterhouse}},
	bwtypes.BldCoalMine:  {checkGroup: false, candidates: []bwtypes.BuildingType{bwtypes.BldIronSmelter, bwtypes.BldArmory, bwtypes.BldMint}},
	bwtypes.BldIronMine:  {checkGroup: false, candidates: []bwtypes.BuildingType{bwtypes.BldIronSmelter}},
	bwtypes.BldGoldMine:  {checkGroup: false, candidates: []bwtypes.BuildingType{bwtypes.BldMint}},
	bwtypes.BldQuarry:    {checkGroup: false, candidates: []bwtypes.BuildingType{bwtypes.BldStorehouse, bwtypes.BldHeadquarters}},
	bwtypes.BldSawmill:   {checkGroup: false, candidates: []bwtypes.BuildingType{bwtypes.BldStorehouse, bwtypes.BldHeadquarters}},
}

var defaultDestination = destinationRule{checkGroup: false, candidates: []bwtypes.BuildingType{
	bwtypes.BldStorehouse, bwtypes.BldHeadquarters, bwtypes.BldHarbour,
}}

// GoodsDestination returns the building that should receive b's output:
// first consulting b's production group if the destination table says
// to, then falling back to the nearest building of a candidate type
// within the same road network. nearestOfType is the caller-supplied lookup
// for "nearest of type within this network id" since that requires
// spatial data the planning world's building list alone doesn't index.
func (w *World) GoodsDestination(b *Building, networkID int, nearestOfType func(types []bwtypes.BuildingType, networkID int, from Point) *Building) *Building {
	rule, ok := destinationTable[b.Type]
	if !ok {
		rule = defaultDestination
	}

	if rule.checkGroup && b.Group != InvalidGroupID {
		if g, ok := w.Group(b.Group); ok {
			for _, candidateType := range rule.candidates {
				for _, member := range g.Buildings {
					if member != nil && member.Type == candidateType && member.State == bwtypes.BuildingFinished {
						return member
					}
				}
			}
		}
	}

	if nearestOfType == nil || !b.hasPoint {
		return nil
	}
	return nearestOfType(rule.candidates, networkID, b.Point)
}

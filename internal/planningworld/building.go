package planningworld

import (
	"hearthold/internal/bwtypes"
	"hearthold/internal/hexgrid"
)

// Point is the map-coordinate type used throughout the planning world.
type Point = hexgrid.Point

// BuildingID uniquely identifies a Building for the lifetime of the
// planning world.
type BuildingID int

// GroupID uniquely identifies a production Group.
type GroupID int

// InvalidGroupID marks a building with no group assignment.
const InvalidGroupID GroupID = -1

// Building is a planner-owned record of a building at any stage of its
// lifecycle. Point is only meaningful once State.HasValidPoint() is true
// (spec §8 invariant).
type Building struct {
	ID      BuildingID
	Type    bwtypes.BuildingType
	State   bwtypes.BuildingState
	Point   Point
	hasPoint bool
	Group   GroupID
}

// HasPoint reports whether this building currently carries a valid map
// point.
func (b *Building) HasPoint() bool { return b.hasPoint }

// Group is an ordered list of expected building types with a parallel
// list of currently assigned buildings (nil entries are open slots). A
// building belongs to at most one group.
type Group struct {
	ID        GroupID
	Types     []bwtypes.BuildingType
	Buildings []*Building
}

// OpenSlot returns the index of the first open slot matching t, or -1.
func (g *Group) OpenSlot(t bwtypes.BuildingType) int {
	for i, want := range g.Types {
		if want == t && g.Buildings[i] == nil {
			return i
		}
	}
	return -1
}

// groupTemplates seeds a production group's expected member types when a
// building of the given seed type is created without an existing group to
// join. Grounded on spec §4.3's "creating a sawmill or woodcutter or
// forester without a group seeds a board-production group" example,
// generalised across the other grouped production chains named in §4.10.
var groupTemplates = map[bwtypes.BuildingType][]bwtypes.BuildingType{
	bwtypes.BldSawmill:    {bwtypes.BldSawmill, bwtypes.BldWoodcutter, bwtypes.BldWoodcutter, bwtypes.BldForester},
	bwtypes.BldWoodcutter: {bwtypes.BldSawmill, bwtypes.BldWoodcutter, bwtypes.BldWoodcutter, bwtypes.BldForester},
	bwtypes.BldForester:   {bwtypes.BldSawmill, bwtypes.BldWoodcutter, bwtypes.BldWoodcutter, bwtypes.BldForester},
	bwtypes.BldIronSmelter: {bwtypes.BldIronSmelter, bwtypes.BldArmory},
	bwtypes.BldArmory:      {bwtypes.BldIronSmelter, bwtypes.BldArmory},
	bwtypes.BldMill:        {bwtypes.BldMill, bwtypes.BldBakery},
	bwtypes.BldBakery:      {bwtypes.BldMill, bwtypes.BldBakery},
	bwtypes.BldPigFarm:        {bwtypes.BldPigFarm, bwtypes.BldSlaughterhouse},
	bwtypes.BldSlaughterhouse: {bwtypes.BldPigFarm, bwtypes.BldSlaughterhouse},
}

// isGroupedProductionType reports whether t normally belongs to a group.
func isGroupedProductionType(t bwtypes.BuildingType) bool {
	_, ok := groupTemplates[t]
	return ok
}

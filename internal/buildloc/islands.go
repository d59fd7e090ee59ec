package buildloc

import "hearthold/internal/hexgrid"

// IslandID identifies a disjoint buildable-but-unconnected region.
type IslandID int

// InvalidIsland marks terrain that is not buildable at all.
const InvalidIsland IslandID = -1

// Walkable reports whether a point is on buildable/walkable land, as
// opposed to water or impassable terrain.
type Walkable interface {
	Walkable(p hexgrid.Point) bool
}

// IslandTracker partitions buildable terrain into disjoint islands
// separated by water/impassable terrain, so the expansion planner does
// not propose buildings on an unreachable shore.
//
// Supplemented from original_source/libs/s25main/ai/beowulf/
// RoadIslands.h, which the spec.md distillation omitted; added per
// SPEC_FULL.md §11.
type IslandTracker struct {
	grid     hexgrid.Grid
	walkable Walkable
	ids      map[hexgrid.Point]IslandID
}

// NewIslandTracker constructs a tracker over grid.
func NewIslandTracker(grid hexgrid.Grid, walkable Walkable) *IslandTracker {
	return &IslandTracker{grid: grid, walkable: walkable, ids: make(map[hexgrid.Point]IslandID)}
}

// Detect performs a full rebuild: every walkable point not yet assigned
// gets a fresh island id by flood-filling across walkable neighbours.
func (t *IslandTracker) Detect() {
	t.ids = make(map[hexgrid.Point]IslandID)
	next := IslandID(0)
	stepOk := func(p hexgrid.Point, d hexgrid.Direction) bool {
		return t.walkable.Walkable(t.grid.Neighbor(p, d))
	}
	for y := 0; y < t.grid.Height; y++ {
		for x := 0; x < t.grid.Width; x++ {
			p := hexgrid.Point{X: x, Y: y}
			if !t.walkable.Walkable(p) {
				continue
			}
			if _, ok := t.ids[p]; ok {
				continue
			}
			id := next
			t.grid.FloodFill(p, stepOk, func(reached hexgrid.Point) {
				t.ids[reached] = id
			})
			next++
		}
	}
}

// Get returns the island id at p, or InvalidIsland.
func (t *IslandTracker) Get(p hexgrid.Point) IslandID {
	if id, ok := t.ids[p]; ok {
		return id
	}
	return InvalidIsland
}

// SameIsland reports whether a and b are on the same buildable island.
func (t *IslandTracker) SameIsland(a, b hexgrid.Point) bool {
	ia, ib := t.Get(a), t.Get(b)
	return ia != InvalidIsland && ia == ib
}

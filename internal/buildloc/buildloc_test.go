package buildloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hearthold/internal/bwtypes"
	"hearthold/internal/hexgrid"
)

type fakeQuality struct {
	q map[hexgrid.Point]bwtypes.BuildingQuality
}

func (f fakeQuality) EffectiveQuality(p hexgrid.Point) bwtypes.BuildingQuality {
	if q, ok := f.q[p]; ok {
		return q
	}
	return bwtypes.BQHouse
}

type alwaysReach struct{}

func (alwaysReach) RoadPossibleOrPresent(hexgrid.Point) bool { return true }

func TestCalculateAddsQualifyingPoints(t *testing.T) {
	grid := hexgrid.NewGrid(10, 10)
	q := fakeQuality{q: map[hexgrid.Point]bwtypes.BuildingQuality{}}
	e := New(grid, q, alwaysReach{})
	anchor := hexgrid.Point{X: 5, Y: 5}
	e.Calculate(anchor)
	assert.Greater(t, e.GetSize(), 0)
	assert.Equal(t, e.GetSize(), e.NodeCount())
}

func TestUpdateRemovesDowngradedPoint(t *testing.T) {
	grid := hexgrid.NewGrid(10, 10)
	qmap := map[hexgrid.Point]bwtypes.BuildingQuality{}
	q := fakeQuality{q: qmap}
	e := New(grid, q, alwaysReach{})
	anchor := hexgrid.Point{X: 5, Y: 5}
	e.Calculate(anchor)

	target := hexgrid.Point{X: 5, Y: 6}
	require.NotEqual(t, bwtypes.BQNone, e.GetAt(target))

	qmap[target] = bwtypes.BQNone
	e.Update(target, 2)
	assert.Equal(t, bwtypes.BQNone, e.GetAt(target))
	assert.Equal(t, e.GetSize(), e.NodeCount())
}

func TestGetNearestOrdersByDistance(t *testing.T) {
	grid := hexgrid.NewGrid(20, 20)
	q := fakeQuality{q: map[hexgrid.Point]bwtypes.BuildingQuality{}}
	e := New(grid, q, alwaysReach{})
	anchor := hexgrid.Point{X: 10, Y: 10}
	e.Calculate(anchor)

	nearest := e.GetNearest(anchor, 3, bwtypes.BQHut)
	require.Len(t, nearest, 3)
	for i := 1; i < len(nearest); i++ {
		assert.LessOrEqual(t, grid.Distance(anchor, nearest[i-1]), grid.Distance(anchor, nearest[i]))
	}
}

func TestEnumeratorLinkedListLengthMatchesIndex(t *testing.T) {
	grid := hexgrid.NewGrid(8, 8)
	qmap := map[hexgrid.Point]bwtypes.BuildingQuality{}
	q := fakeQuality{q: qmap}
	e := New(grid, q, alwaysReach{})
	e.Calculate(hexgrid.Point{X: 4, Y: 4})

	assert.Equal(t, len(e.index), e.NodeCount())
	assert.Equal(t, e.GetSize(), len(e.index))
}

func TestIslandTrackerSeparatesUnreachableTerrain(t *testing.T) {
	grid := hexgrid.NewGrid(10, 10)
	walkableSet := map[hexgrid.Point]bool{}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			walkableSet[hexgrid.Point{X: x, Y: y}] = true
		}
	}
	for y := 6; y < 9; y++ {
		for x := 6; x < 9; x++ {
			walkableSet[hexgrid.Point{X: x, Y: y}] = true
		}
	}
	tracker := NewIslandTracker(grid, fakeWalkable{walkableSet})
	tracker.Detect()

	a := hexgrid.Point{X: 1, Y: 1}
	b := hexgrid.Point{X: 7, Y: 7}
	assert.False(t, tracker.SameIsland(a, b))
	assert.True(t, tracker.SameIsland(a, hexgrid.Point{X: 2, Y: 2}))
}

type fakeWalkable struct{ set map[hexgrid.Point]bool }

func (f fakeWalkable) Walkable(p hexgrid.Point) bool { return f.set[p] }

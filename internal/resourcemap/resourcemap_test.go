package resourcemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hearthold/internal/bwtypes"
	"hearthold/internal/hexgrid"
)

type fakeTerrain struct {
	amounts   map[hexgrid.Point]map[bwtypes.ResourceType]int
	visible   map[hexgrid.Point]bool
	mineable  map[hexgrid.Point]bool
	walkable  map[hexgrid.Point]bool
}

func newFakeTerrain() *fakeTerrain {
	return &fakeTerrain{
		amounts:  make(map[hexgrid.Point]map[bwtypes.ResourceType]int),
		visible:  make(map[hexgrid.Point]bool),
		mineable: make(map[hexgrid.Point]bool),
		walkable: make(map[hexgrid.Point]bool),
	}
}

func (f *fakeTerrain) Visible(p hexgrid.Point) bool  { return f.visible[p] }
func (f *fakeTerrain) Mineable(p hexgrid.Point) bool { return f.mineable[p] }
func (f *fakeTerrain) Walkable(p hexgrid.Point) bool { return f.walkable[p] }
func (f *fakeTerrain) ResourceAmount(p hexgrid.Point, r bwtypes.ResourceType) int {
	if byType, ok := f.amounts[p]; ok {
		return byType[r]
	}
	return 0
}
func (f *fakeTerrain) setAmount(p hexgrid.Point, r bwtypes.ResourceType, v int) {
	if f.amounts[p] == nil {
		f.amounts[p] = make(map[bwtypes.ResourceType]int)
	}
	f.amounts[p][r] = v
}

func TestGetWaterAlwaysDirect(t *testing.T) {
	grid := hexgrid.NewGrid(10, 10)
	terrain := newFakeTerrain()
	p := hexgrid.Point{X: 3, Y: 3}
	terrain.setAmount(p, bwtypes.ResourceWater, 7)
	m := New(grid, terrain)
	assert.Equal(t, 7, m.Get(p, bwtypes.ResourceWater, false))
}

func TestGetMineralHiddenWithoutVisibility(t *testing.T) {
	grid := hexgrid.NewGrid(10, 10)
	terrain := newFakeTerrain()
	p := hexgrid.Point{X: 3, Y: 3}
	terrain.setAmount(p, bwtypes.ResourceIron, 9)
	m := New(grid, terrain)
	assert.Equal(t, 0, m.Get(p, bwtypes.ResourceIron, false))
}

func TestGetMineralGuessFromNeighbors(t *testing.T) {
	grid := hexgrid.NewGrid(10, 10)
	terrain := newFakeTerrain()
	p := hexgrid.Point{X: 3, Y: 3}
	n := grid.Neighbor(p, hexgrid.East)
	terrain.mineable[n] = true
	terrain.visible[n] = true
	terrain.setAmount(n, bwtypes.ResourceIron, 10)
	m := New(grid, terrain)
	guessed := m.Get(p, bwtypes.ResourceIron, true)
	assert.Greater(t, guessed, 0)
}

func TestHarvestedRoundTrip(t *testing.T) {
	grid := hexgrid.NewGrid(10, 10)
	terrain := newFakeTerrain()
	m := New(grid, terrain)
	center := hexgrid.Point{X: 5, Y: 5}
	require.Equal(t, 0, m.Harvested(center, bwtypes.ResourceWood))
	m.Added(center, bwtypes.ResourceWood)
	assert.Equal(t, 1, m.Harvested(center, bwtypes.ResourceWood))
	m.Removed(center, bwtypes.ResourceWood)
	assert.Equal(t, 0, m.Harvested(center, bwtypes.ResourceWood))
}

func TestGetReachableSkipsClaimedPoints(t *testing.T) {
	grid := hexgrid.NewGrid(20, 20)
	terrain := newFakeTerrain()
	center := hexgrid.Point{X: 10, Y: 10}
	terrain.visible[center] = true
	terrain.walkable[center] = true
	terrain.setAmount(center, bwtypes.ResourceWater, 5)
	m := New(grid, terrain)

	before := m.GetReachable(center, bwtypes.ResourceWater, false, false, false)
	assert.Greater(t, before, 0)

	m.Added(center, bwtypes.ResourceWater)
	after := m.GetReachable(center, bwtypes.ResourceWater, false, false, false)
	assert.Less(t, after, before)
}

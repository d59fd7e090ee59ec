package roadnetwork

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hearthold/internal/bwtypes"
	"hearthold/internal/hexgrid"
)

type fakeWorld struct {
	roads     map[hexgrid.Point]map[hexgrid.Direction]bool
	flags     []hexgrid.Point
	connected map[hexgrid.Point]bool
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		roads:     make(map[hexgrid.Point]map[hexgrid.Direction]bool),
		connected: make(map[hexgrid.Point]bool),
	}
}

func (w *fakeWorld) HasRoad(p hexgrid.Point, d hexgrid.Direction) bool {
	return w.roads[p][d]
}
func (w *fakeWorld) IsPointConnected(p hexgrid.Point) bool { return w.connected[p] }
func (w *fakeWorld) Flags() []hexgrid.Point                { return w.flags }

func (w *fakeWorld) addRoad(grid hexgrid.Grid, p hexgrid.Point, d hexgrid.Direction) {
	if w.roads[p] == nil {
		w.roads[p] = make(map[hexgrid.Direction]bool)
	}
	w.roads[p][d] = true
	n := grid.Neighbor(p, d)
	if w.roads[n] == nil {
		w.roads[n] = make(map[hexgrid.Direction]bool)
	}
	w.roads[n][d.Opposite()] = true
}

func TestSingleFlagHasNoConnections(t *testing.T) {
	grid := hexgrid.NewGrid(10, 10)
	world := newFakeWorld()
	a := hexgrid.Point{X: 2, Y: 2}
	world.flags = []hexgrid.Point{a}

	tr := New(grid, world)
	tr.Detect()

	assert.NotEqual(t, InvalidID, tr.Get(a))

	other := hexgrid.Point{X: 5, Y: 5}
	assert.Equal(t, InvalidID, tr.Get(other))
}

func TestTwoFlagsConnectedByRoadShareNetwork(t *testing.T) {
	grid := hexgrid.NewGrid(10, 10)
	world := newFakeWorld()
	a := hexgrid.Point{X: 2, Y: 2}
	b := grid.Neighbor(a, hexgrid.East)
	world.addRoad(grid, a, hexgrid.East)
	world.flags = []hexgrid.Point{a, b}

	tr := New(grid, world)
	tr.Detect()

	require.True(t, tr.SameNetwork(a, b))
}

func TestTwoFlagsWithoutRoadAreSeparate(t *testing.T) {
	grid := hexgrid.NewGrid(10, 10)
	world := newFakeWorld()
	a := hexgrid.Point{X: 2, Y: 2}
	b := hexgrid.Point{X: 7, Y: 7}
	world.flags = []hexgrid.Point{a, b}

	tr := New(grid, world)
	tr.Detect()

	assert.False(t, tr.SameNetwork(a, b))
}

func TestOnFlagStateChangedAssignsFreshID(t *testing.T) {
	grid := hexgrid.NewGrid(10, 10)
	world := newFakeWorld()
	tr := New(grid, world)

	p := hexgrid.Point{X: 1, Y: 1}
	tr.OnFlagStateChanged(p, bwtypes.FlagRequested)
	id := tr.Get(p)
	assert.NotEqual(t, InvalidID, id)

	// Requesting again (idempotent transition) keeps the same id.
	tr.OnFlagStateChanged(p, bwtypes.FlagRequested)
	assert.Equal(t, id, tr.Get(p))
}

func TestOnFlagDestroyedClearsWhenDisconnected(t *testing.T) {
	grid := hexgrid.NewGrid(10, 10)
	world := newFakeWorld()
	tr := New(grid, world)

	p := hexgrid.Point{X: 1, Y: 1}
	tr.OnFlagStateChanged(p, bwtypes.FlagRequested)
	require.NotEqual(t, InvalidID, tr.Get(p))

	world.connected[p] = false
	tr.OnFlagStateChanged(p, bwtypes.FlagDestructionRequested)
	assert.Equal(t, InvalidID, tr.Get(p))
}

// Checks on one fixed layout that every flag in a Detect() pass ends up
// in exactly one network, and two flags are in the same network iff a
// path of roads connects them (the road-network connectivity invariant,
// spec §8).
func TestDetectConnectivityInvariant(t *testing.T) {
	grid := hexgrid.NewGrid(8, 8)
	world := newFakeWorld()
	a := hexgrid.Point{X: 1, Y: 1}
	b := grid.Neighbor(a, hexgrid.East)
	c := grid.Neighbor(b, hexgrid.East)
	d := hexgrid.Point{X: 6, Y: 6}

	world.addRoad(grid, a, hexgrid.East)
	world.addRoad(grid, b, hexgrid.East)
	world.flags = []hexgrid.Point{a, b, c, d}

	tr := New(grid, world)
	tr.Detect()

	assert.True(t, tr.SameNetwork(a, b))
	assert.True(t, tr.SameNetwork(b, c))
	assert.True(t, tr.SameNetwork(a, c))
	assert.False(t, tr.SameNetwork(a, d))
}

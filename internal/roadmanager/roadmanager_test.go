package roadmanager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hearthold/internal/bwtypes"
	"hearthold/internal/hexgrid"
	"hearthold/internal/planningworld"
)

type fakeWorld struct {
	roads      map[hexgrid.Point]map[hexgrid.Direction]bool
	flags      map[hexgrid.Point]bool
	builtRoads [][]hexgrid.Direction
	quality    bwtypes.BuildingQuality
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		roads:   make(map[hexgrid.Point]map[hexgrid.Direction]bool),
		flags:   make(map[hexgrid.Point]bool),
		quality: bwtypes.BQHouse,
	}
}

func (w *fakeWorld) HasFlag(p hexgrid.Point) bool { return w.flags[p] }
func (w *fakeWorld) HasRoad(p hexgrid.Point, d hexgrid.Direction) bool {
	return w.roads[p][d]
}
func (w *fakeWorld) EffectiveQuality(hexgrid.Point) bwtypes.BuildingQuality { return w.quality }
func (w *fakeWorld) ConstructRoad(p hexgrid.Point, route []hexgrid.Direction) error {
	w.builtRoads = append(w.builtRoads, route)
	cur := p
	for _, d := range route {
		if w.roads[cur] == nil {
			w.roads[cur] = make(map[hexgrid.Direction]bool)
		}
		w.roads[cur][d] = true
		cur = hexgrid.NewGrid(20, 20).Neighbor(cur, d)
	}
	return nil
}

func TestConnectBuildsRouteBetweenFlags(t *testing.T) {
	grid := hexgrid.NewGrid(20, 20)
	world := newFakeWorld()
	from := hexgrid.Point{X: 5, Y: 5}
	to := grid.Neighbor(grid.Neighbor(from, hexgrid.East), hexgrid.East)

	m := New(grid, world)
	route, ok := m.Connect(1, from, to, 5, nil)
	require.True(t, ok)
	assert.NotEmpty(t, route)
	assert.NotEmpty(t, world.builtRoads)
}

func TestConnectTracksUsers(t *testing.T) {
	grid := hexgrid.NewGrid(20, 20)
	world := newFakeWorld()
	from := hexgrid.Point{X: 5, Y: 5}
	to := grid.Neighbor(from, hexgrid.East)

	m := New(grid, world)
	_, ok := m.Connect(7, from, to, 1, nil)
	require.True(t, ok)

	users := m.UsersOf(from, hexgrid.East)
	require.Len(t, users, 1)
	assert.Equal(t, planningworld.BuildingID(7), users[0])

	m.RemoveUser(7)
	assert.Empty(t, m.UsersOf(from, hexgrid.East))
}

func TestSplitNewSegmentsSkipsExistingRoad(t *testing.T) {
	grid := hexgrid.NewGrid(20, 20)
	world := newFakeWorld()
	start := hexgrid.Point{X: 0, Y: 0}
	world.roads[start] = map[hexgrid.Direction]bool{hexgrid.East: true}

	m := New(grid, world)
	route := hexgrid.Route{hexgrid.East, hexgrid.East}
	segs := m.splitNewSegments(start, route)
	require.Len(t, segs, 1)
	assert.Equal(t, grid.Neighbor(start, hexgrid.East), segs[0].start)
}

package buildingplanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hearthold/internal/bwtypes"
	"hearthold/internal/buildloc"
	"hearthold/internal/hexgrid"
	"hearthold/internal/planningworld"
)

type fakeWorld struct {
	quality    bwtypes.BuildingQuality
	built      map[planningworld.BuildingID]hexgrid.Point
	deconstruct map[planningworld.BuildingID]bool
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		quality:     bwtypes.BQHouse,
		built:       make(map[planningworld.BuildingID]hexgrid.Point),
		deconstruct: make(map[planningworld.BuildingID]bool),
	}
}

func (w *fakeWorld) Construct(b *planningworld.Building, p hexgrid.Point) error {
	w.built[b.ID] = p
	b.Point = p
	return nil
}
func (w *fakeWorld) Deconstruct(b *planningworld.Building) { w.deconstruct[b.ID] = true }
func (w *fakeWorld) EffectiveQuality(hexgrid.Point) bwtypes.BuildingQuality { return w.quality }

type fakeQuality struct{ bq bwtypes.BuildingQuality }

func (q fakeQuality) EffectiveQuality(hexgrid.Point) bwtypes.BuildingQuality { return q.bq }

type alwaysReach struct{}

func (alwaysReach) RoadPossibleOrPresent(hexgrid.Point) bool { return true }

type fakeConnector struct{ fail bool }

func (c fakeConnector) Connect(b *planningworld.Building, anchor hexgrid.Point) bool { return !c.fail }

func newEnum(grid hexgrid.Grid, anchor hexgrid.Point) *buildloc.Enumerator {
	e := buildloc.New(grid, fakeQuality{bq: bwtypes.BQHouse}, alwaysReach{})
	e.Calculate(anchor)
	return e
}

func neutralScore(bwtypes.BuildingType, hexgrid.Point) []float64 { return []float64{1.0} }

func TestTickPlacesQueuedBuilding(t *testing.T) {
	grid := hexgrid.NewGrid(20, 20)
	world := newFakeWorld()
	p := New(grid, world, nil)

	anchor := hexgrid.Point{X: 5, Y: 5}
	b := &planningworld.Building{ID: 1, Type: bwtypes.BldWoodcutter, Group: planningworld.InvalidGroupID}
	p.Request(b, anchor)

	enumFor := func(hexgrid.Point) *buildloc.Enumerator { return newEnum(grid, anchor) }
	p.Tick(enumFor, neutralScore, fakeConnector{})

	_, ok := world.built[1]
	require.True(t, ok)
	assert.False(t, world.deconstruct[1])
}

func TestPlaceDeconstructsOnConnectFailure(t *testing.T) {
	grid := hexgrid.NewGrid(20, 20)
	world := newFakeWorld()
	p := New(grid, world, nil)

	anchor := hexgrid.Point{X: 5, Y: 5}
	b := &planningworld.Building{ID: 2, Type: bwtypes.BldWoodcutter, Group: planningworld.InvalidGroupID}
	p.Request(b, anchor)

	enumFor := func(hexgrid.Point) *buildloc.Enumerator { return newEnum(grid, anchor) }
	p.Tick(enumFor, neutralScore, fakeConnector{fail: true})

	assert.True(t, world.deconstruct[2])
}

func TestFixedPositionRequestUsesGivenPoint(t *testing.T) {
	grid := hexgrid.NewGrid(20, 20)
	world := newFakeWorld()
	p := New(grid, world, nil)

	anchor := hexgrid.Point{X: 5, Y: 5}
	target := hexgrid.Point{X: 8, Y: 8}
	b := &planningworld.Building{ID: 3, Type: bwtypes.BldBarracks, Group: planningworld.InvalidGroupID}
	p.RequestFixed(b, anchor, target)

	enumFor := func(hexgrid.Point) *buildloc.Enumerator { return newEnum(grid, anchor) }
	p.Tick(enumFor, neutralScore, fakeConnector{})

	assert.Equal(t, target, world.built[3])
}

func TestBlacklistPreventsRepeatSearchUntilCleared(t *testing.T) {
	grid := hexgrid.NewGrid(20, 20)
	world := newFakeWorld()
	world.quality = bwtypes.BQNone
	p := New(grid, world, nil)

	anchor := hexgrid.Point{X: 5, Y: 5}
	b := &planningworld.Building{ID: 4, Type: bwtypes.BldBarracks, Group: planningworld.InvalidGroupID}
	target := hexgrid.Point{X: 9, Y: 9}
	p.RequestFixed(b, anchor, target)

	enumFor := func(hexgrid.Point) *buildloc.Enumerator { return newEnum(grid, anchor) }
	p.Tick(enumFor, neutralScore, fakeConnector{})

	assert.True(t, p.blacklist[bwtypes.BldBarracks])

	p.OnBQChanged()
	assert.False(t, p.blacklist[bwtypes.BldBarracks])
}

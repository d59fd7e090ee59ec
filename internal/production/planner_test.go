package production

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hearthold/internal/bwtypes"
	"hearthold/internal/hexgrid"
	"hearthold/internal/planningworld"
)

type fakeSink struct{}

func (fakeSink) PlaceBuilding(planningworld.Point, bwtypes.BuildingType) {}
func (fakeSink) PlaceFlag(planningworld.Point)                           {}
func (fakeSink) DestroyBuilding(planningworld.Point)                     {}
func (fakeSink) DestroyFlag(planningworld.Point)                         {}
func (fakeSink) BuildRoad(planningworld.Point, []hexgrid.Direction)      {}
func (fakeSink) DestroyRoad(planningworld.Point, hexgrid.Direction)      {}

type fakeBQ struct{}

func (fakeBQ) BaseQuality(planningworld.Point) bwtypes.BuildingQuality { return bwtypes.BQHouse }

type recordingRequester struct {
	requested []bwtypes.BuildingType
}

func (r *recordingRequester) Request(b *planningworld.Building, anchor planningworld.Point) {
	r.requested = append(r.requested, b.Type)
}

func TestStatsForKnownTypes(t *testing.T) {
	s := StatsFor(bwtypes.BldSawmill)
	assert.Equal(t, bwtypes.GoodBoard, s.Produces)
	assert.Contains(t, s.Consumes, bwtypes.GoodWood)
}

func TestFibonacciThresholdMonotonic(t *testing.T) {
	prev := FibonacciThreshold(0)
	for i := 1; i < 10; i++ {
		next := FibonacciThreshold(i)
		assert.GreaterOrEqual(t, next, prev)
		prev = next
	}
}

func TestPlanRequestsSawmillWhenNoneExist(t *testing.T) {
	grid := hexgrid.NewGrid(10, 10)
	world := planningworld.New(grid, fakeSink{}, fakeBQ{}, nil, nil)
	planner := New(world, func() int { return 10 }, func() int { return 0 }, func() int { return 0 }, nil)

	region := Region{NetworkID: 1, Anchor: hexgrid.Point{X: 1, Y: 1}, IsMain: true}
	req := &recordingRequester{}
	planner.Plan(region, func(*planningworld.Building) bool { return true }, nil, req)

	assert.Contains(t, req.requested, bwtypes.BldSawmill)
}

func TestPlanRespectsZeroBudget(t *testing.T) {
	grid := hexgrid.NewGrid(10, 10)
	world := planningworld.New(grid, fakeSink{}, fakeBQ{}, nil, nil)
	planner := New(world, func() int { return 0 }, func() int { return 0 }, func() int { return 0 }, nil)

	region := Region{NetworkID: 1, Anchor: hexgrid.Point{X: 1, Y: 1}, IsMain: true}
	req := &recordingRequester{}
	planner.Plan(region, func(*planningworld.Building) bool { return true }, nil, req)

	require.Empty(t, req.requested)
}

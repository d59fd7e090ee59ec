package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hearthold/internal/bwtypes"
	"hearthold/internal/hexgrid"
)

type fakeWorld struct {
	resourceAbundance int
	goodsDistance     int
	hasGoodsDist      bool
	farmDistance      int
	hasFarmDist       bool
	openFlags         int
	sumDelta          int
}

func (f fakeWorld) Grid() hexgrid.Grid { return hexgrid.NewGrid(10, 10) }
func (f fakeWorld) NearestGroupMemberDistance(hexgrid.Point, []bwtypes.BuildingType) (int, bool) {
	return 0, false
}
func (f fakeWorld) NearestSameTypeDistance(hexgrid.Point, bwtypes.BuildingType) (int, bool) {
	return 100, true
}
func (f fakeWorld) NearestFarmOrCharburnerDistance(hexgrid.Point) (int, bool) {
	return f.farmDistance, f.hasFarmDist
}
func (f fakeWorld) OpenFlagNeighborCount(hexgrid.Point) int { return f.openFlags }
func (f fakeWorld) NonVisibleWithin(hexgrid.Point, int) int { return 0 }
func (f fakeWorld) ResourceAbundance(hexgrid.Point, bwtypes.BuildingType) int {
	return f.resourceAbundance
}
func (f fakeWorld) DistanceToGoodsDestination(hexgrid.Point, bwtypes.BuildingType) (int, bool) {
	return f.goodsDistance, f.hasGoodsDist
}
func (f fakeWorld) BuildLocationSumDelta(hexgrid.Point, bwtypes.BuildingQuality) int {
	return f.sumDelta
}

func TestScoreIllegalBelowMinimumResource(t *testing.T) {
	w := fakeWorld{resourceAbundance: 0}
	v := Score(w, bwtypes.BldWoodcutter, hexgrid.Point{X: 1, Y: 1})
	assert.Nil(t, v)
}

func TestScoreLegalAboveMinimumResource(t *testing.T) {
	w := fakeWorld{resourceAbundance: 10, goodsDistance: 4, hasGoodsDist: true}
	v := Score(w, bwtypes.BldWoodcutter, hexgrid.Point{X: 1, Y: 1})
	require.NotEmpty(t, v)
	assert.Greater(t, Hypervolume(v), 0.0)
}

func TestScoreIllegalTooCloseToFarm(t *testing.T) {
	w := fakeWorld{farmDistance: 1, hasFarmDist: true}
	v := Score(w, bwtypes.BldStorehouse, hexgrid.Point{X: 1, Y: 1})
	assert.Nil(t, v)
}

func TestHypervolumeOfEmptyIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Hypervolume(nil))
}

func TestPlainBuildingWithNoCriteriaIsNeutral(t *testing.T) {
	w := fakeWorld{}
	v := Score(w, bwtypes.BldStorehouse, hexgrid.Point{X: 1, Y: 1})
	require.NotEmpty(t, v)
	assert.Equal(t, 1.0, Hypervolume(v))
}

// Package scoring implements the per-criterion heuristic evaluator of
// spec §4.7: given a building type and a candidate point, produce a
// vector of scores in [0,1], one per applicable criterion, combined by
// the caller as a product (hypervolume). An empty vector means illegal.
//
// Grounded on the teacher's internal/engine/ai_managers.go and
// strategic_ai.go (StrategicDecision.Confidence as a [0,1] combinable
// score) and original_source/.../Heuristics.h's bucketed-scale approach.
package scoring

import (
	"hearthold/internal/bwtypes"
	"hearthold/internal/hexgrid"
	"hearthold/internal/production"
)

// Bucket scales used by the bucketed criteria (spec §4.7): resource
// abundance and distance both snap to a fixed breakpoint ladder rather
// than a continuous function, matching the reference AI's tuning.
var resourceBuckets = []int{5, 10, 15, 20, 30, 40, 50, 65, 80, 100}
var distanceBuckets = []int{2, 4, 6, 8, 10, 12, 14, 16, 18, 20}

// bucketScore returns index/len position of the first bucket value v
// does not exceed, as a [0,1] score; higher is better for "moreIsBetter"
// criteria (resource abundance), lower is better otherwise (distance).
func bucketScore(v int, buckets []int, moreIsBetter bool) float64 {
	n := len(buckets)
	pos := n
	for i, b := range buckets {
		if v <= b {
			pos = i
			break
		}
	}
	frac := float64(pos) / float64(n)
	if moreIsBetter {
		return frac
	}
	return 1 - frac
}

// World is the read surface the scorer needs beyond resourcemap/buildloc,
// namely group/distance lookups that depend on the planning world.
type World interface {
	Grid() hexgrid.Grid
	NearestGroupMemberDistance(p hexgrid.Point, types []bwtypes.BuildingType) (int, bool)
	NearestSameTypeDistance(p hexgrid.Point, t bwtypes.BuildingType) (int, bool)
	NearestFarmOrCharburnerDistance(p hexgrid.Point) (int, bool)
	OpenFlagNeighborCount(p hexgrid.Point) int
	NonVisibleWithin(p hexgrid.Point, radius int) int
	ResourceAbundance(p hexgrid.Point, t bwtypes.BuildingType) int
	DistanceToGoodsDestination(p hexgrid.Point, t bwtypes.BuildingType) (int, bool)
	BuildLocationSumDelta(p hexgrid.Point, size bwtypes.BuildingQuality) int
}

// groupProximity names, per building type, which group-mate types it
// should sit near (spec §4.7).
var groupProximity = map[bwtypes.BuildingType][]bwtypes.BuildingType{
	bwtypes.BldWoodcutter: {bwtypes.BldForester, bwtypes.BldSawmill},
	bwtypes.BldBakery:     {bwtypes.BldMill, bwtypes.BldWell},
	bwtypes.BldSlaughterhouse: {bwtypes.BldPigFarm},
}

var minSpacingTypes = map[bwtypes.BuildingType]int{
	bwtypes.BldHunter:      6,
	bwtypes.BldFisher:      6,
	bwtypes.BldQuarry:      4,
	bwtypes.BldLookoutTower: 8,
}

const farmerRadius = 2

// Score returns the criterion vector for placing a building of type t at
// point p. An empty, non-nil slice signals illegal; nil also means
// illegal (callers should treat both identically — len(v) == 0).
func Score(w World, t bwtypes.BuildingType, p hexgrid.Point) []float64 {
	var v []float64

	if minReq := production.MinimumResource(t); minReq > 0 {
		abundance := w.ResourceAbundance(p, t)
		if abundance < minReq {
			return nil
		}
		v = append(v, bucketScore(abundance, resourceBuckets, true))
	}

	if dist, ok := w.DistanceToGoodsDestination(p, t); ok {
		v = append(v, bucketScore(dist, distanceBuckets, false))
	}

	if wants, ok := groupProximity[t]; ok {
		if dist, found := w.NearestGroupMemberDistance(p, wants); found {
			v = append(v, bucketScore(dist, distanceBuckets, false))
		}
	}

	if minSpace, ok := minSpacingTypes[t]; ok {
		if dist, found := w.NearestSameTypeDistance(p, t); found && dist < minSpace {
			return nil
		}
	}

	if t == bwtypes.BldLookoutTower {
		nonVisible := w.NonVisibleWithin(p, 12)
		if nonVisible < 20 {
			return nil
		}
		v = append(v, bucketScore(nonVisible, resourceBuckets, true))
	}

	if dist, ok := w.NearestFarmOrCharburnerDistance(p); ok {
		if dist < 2*farmerRadius {
			return nil
		}
	}

	if openFlags := w.OpenFlagNeighborCount(p); openFlags > 0 {
		v = append(v, 1.0/float64(1+openFlags))
	}

	if delta := w.BuildLocationSumDelta(p, t.Size()); delta != 0 {
		// Penalise wasting a large-BQ spot on a small building: a
		// bigger delta (more territory degraded) scores worse.
		penalty := 1.0 / float64(1+delta)
		if penalty < 0 {
			penalty = 0
		}
		v = append(v, penalty)
	}

	if len(v) == 0 {
		// No applicable criteria at all (e.g. a plain storehouse):
		// treat as neutrally placeable.
		v = append(v, 1.0)
	}
	return v
}

// Hypervolume combines a criterion vector by product; an empty vector
// always means illegal and must be checked by the caller before calling
// this (Hypervolume of an empty vector would otherwise misleadingly
// return 1).
func Hypervolume(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	out := 1.0
	for _, x := range v {
		out *= x
	}
	return out
}

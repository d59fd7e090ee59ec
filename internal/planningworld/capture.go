package planningworld

import (
	"hearthold/internal/bwtypes"
	"hearthold/internal/hexgrid"
)

// Grid is the map-geometry type used by capture prediction.
type Grid = hexgrid.Grid

// militaryRadius is the territory-influence radius of a military
// building type, used by capture prediction. Larger garrisons project
// influence further, matching the general shape (if not the exact
// tuning) of the reference AI's territory rule.
func militaryRadius(t bwtypes.BuildingType) int {
	switch t {
	case bwtypes.BldBarracks:
		return 6
	case bwtypes.BldGuardhouse:
		return 8
	case bwtypes.BldWatchtower:
		return 10
	case bwtypes.BldFortress:
		return 13
	default:
		return 0
	}
}

// KnownMilitary is a snapshot of one military building (own or hostile)
// used as input to capture prediction.
type KnownMilitary struct {
	Point   Point
	Type    bwtypes.BuildingType
	Hostile bool
}

// CapturePrediction is the outcome of simulating a hypothetical new
// military building: the points whose ownership would flip to the agent,
// and the hostile buildings that would be destroyed because they'd fall
// inside the agent's new territory.
type CapturePrediction struct {
	CapturedPoints     []Point
	DestroyedHostile   []KnownMilitary
}

// PredictCapture simulates the engine's territory rule over a snapshot of
// all known military buildings plus one hypothetical new building at p of
// type t: each military building "owns" the points within its radius,
// ties broken by whichever building is closest (own buildings win ties in
// the agent's favour, matching the reference's own-priority convention).
// hostileBuildingAt reports the hostile building, if any, located at a
// point, for destroyed-building accounting.
func PredictCapture(grid Grid, known []KnownMilitary, p Point, t bwtypes.BuildingType, hostileBuildingAt func(Point) (bwtypes.BuildingType, bool)) CapturePrediction {
	hypothetical := append(append([]KnownMilitary(nil), known...), KnownMilitary{Point: p, Type: t, Hostile: false})

	ownerOf := func(pt Point) (owner *KnownMilitary, dist int) {
		best := -1
		var bestOwner *KnownMilitary
		for i := range hypothetical {
			m := &hypothetical[i]
			r := militaryRadius(m.Type)
			d := grid.Distance(m.Point, pt)
			if d > r {
				continue
			}
			if best == -1 || d < best || (d == best && !m.Hostile && bestOwner != nil && bestOwner.Hostile) {
				best = d
				bestOwner = m
			}
		}
		return bestOwner, best
	}

	var result CapturePrediction
	radius := militaryRadius(t)

	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			pt := Point{X: p.X + dx, Y: p.Y + dy}
			pt = wrapPoint(grid, pt)
			if grid.Distance(p, pt) > radius {
				continue
			}
			owner, _ := ownerOf(pt)
			if owner == nil || owner.Hostile {
				continue
			}
			if owner.Point == p {
				result.CapturedPoints = append(result.CapturedPoints, pt)
				if bt, ok := hostileBuildingAt(pt); ok {
					result.DestroyedHostile = append(result.DestroyedHostile, KnownMilitary{Point: pt, Type: bt, Hostile: true})
				}
			}
		}
	}
	return result
}

func wrapPoint(g Grid, p Point) Point {
	x, y := p.X%g.Width, p.Y%g.Height
	if x < 0 {
		x += g.Width
	}
	if y < 0 {
		y += g.Height
	}
	return Point{X: x, Y: y}
}

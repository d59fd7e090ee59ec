package managers

import (
	"hearthold/internal/hexgrid"
	"hearthold/internal/planningworld"
)

// storehouseMinDistance is how far a candidate point must already be
// from the anchor's headquarters before an interior storehouse is worth
// the carrier-path it saves (original_source recurrent/StorehouseManager.h).
const storehouseMinDistance = 12

// StorehouseRequester places an ordinary (scored) building request.
type StorehouseRequester interface {
	Request(b *planningworld.Building, anchor hexgrid.Point)
}

// StorehouseManager decides when an interior storehouse, beyond the
// headquarters, is worth constructing to shorten carrier paths across a
// large territory. Gated the same way the expansion planner's global
// throttle is: never while ≥3 military sites are under construction
// (spec §11).
type StorehouseManager struct{}

// NewStorehouseManager constructs a storehouse manager; it holds no
// state of its own between ticks.
func NewStorehouseManager() *StorehouseManager { return &StorehouseManager{} }

// Tick requests one new storehouse, anchored at hq, once the farthest
// production building is at least storehouseMinDistance from hq and fewer
// than maxConcurrentMilitarySites military sites are under construction.
func (s *StorehouseManager) Tick(grid hexgrid.Grid, hq hexgrid.Point, farthestProduction hexgrid.Point, militarySitesUnderConstruction int, req StorehouseRequester, create func() *planningworld.Building) bool {
	if militarySitesUnderConstruction >= maxConcurrentMilitarySites {
		return false
	}
	if grid.Distance(hq, farthestProduction) < storehouseMinDistance {
		return false
	}
	req.Request(create(), hq)
	return true
}

const maxConcurrentMilitarySites = 3

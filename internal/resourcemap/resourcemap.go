// Package resourcemap tracks queryable per-point resource counts (ore,
// stone, wood, fish, plantspace, huntable animals, water) with
// fog-of-war-aware guessing and harvested-claim bookkeeping, so two
// buildings never silently double-claim the same resource pool.
//
// Grounded on the teacher's internal/engine/resource_validator.go
// (ResourceValidator/ResourceCheck/ValidationResult shape, generalised
// from inventory validation to spatial resource validation) and on the
// radius table in original_source/.../ProductionConsts.h.
package resourcemap

import (
	"hearthold/internal/bwtypes"
	"hearthold/internal/hexgrid"
)

// Terrain is the read-only terrain/visibility query surface the resource
// map consults; in production this is backed by gameiface.EngineView.
type Terrain interface {
	Visible(p hexgrid.Point) bool
	ResourceAmount(p hexgrid.Point, r bwtypes.ResourceType) int
	Mineable(p hexgrid.Point) bool
	Walkable(p hexgrid.Point) bool
}

// Map answers per-point resource queries and owns the harvested-claim
// bookkeeping that prevents double-claiming of a shared resource pool.
type Map struct {
	grid     hexgrid.Grid
	terrain  Terrain
	known    map[hexgrid.Point]map[bwtypes.ResourceType]bool
	harvested map[hexgrid.Point]map[bwtypes.ResourceType]int
}

// New constructs a resource map over grid, querying terrain for live
// values.
func New(grid hexgrid.Grid, terrain Terrain) *Map {
	return &Map{
		grid:      grid,
		terrain:   terrain,
		known:     make(map[hexgrid.Point]map[bwtypes.ResourceType]bool),
		harvested: make(map[hexgrid.Point]map[bwtypes.ResourceType]int),
	}
}

// MarkUnderground records that a geologist (or equivalent) has revealed
// minerals at p for resource type r.
func (m *Map) MarkUnderground(p hexgrid.Point, r bwtypes.ResourceType) {
	if m.known[p] == nil {
		m.known[p] = make(map[bwtypes.ResourceType]bool)
	}
	m.known[p][r] = true
}

func (m *Map) isMineral(r bwtypes.ResourceType) bool {
	switch r {
	case bwtypes.ResourceIron, bwtypes.ResourceGold, bwtypes.ResourceCoal:
		return true
	default:
		return false
	}
}

// Get returns the resource count of type r at point p. For minerals and
// fish, returns the true engine value if known/visible; otherwise, if
// guess is set, returns the mean of mineable 1-ring neighbours (at least
// 1 if any neighbour is mineable). Water is always read directly since it
// is never hidden by fog. Surface resources (plantspace/wood/stone/
// huntable-animals) require visibility and otherwise return zero.
func (m *Map) Get(p hexgrid.Point, r bwtypes.ResourceType, guess bool) int {
	switch r {
	case bwtypes.ResourceWater:
		return m.terrain.ResourceAmount(p, r)
	case bwtypes.ResourceIron, bwtypes.ResourceGold, bwtypes.ResourceCoal, bwtypes.ResourceGranite, bwtypes.ResourceFish:
		if m.terrain.Visible(p) || m.known[p][r] {
			return m.terrain.ResourceAmount(p, r)
		}
		if !guess {
			return 0
		}
		return m.guessFromNeighbors(p, r)
	default:
		if !m.terrain.Visible(p) {
			return 0
		}
		return m.terrain.ResourceAmount(p, r)
	}
}

func (m *Map) guessFromNeighbors(p hexgrid.Point, r bwtypes.ResourceType) int {
	sum, n := 0, 0
	for _, nb := range m.grid.Neighbors(p) {
		if !m.terrain.Mineable(nb) {
			continue
		}
		n++
		if m.terrain.Visible(nb) || m.known[nb][r] {
			sum += m.terrain.ResourceAmount(nb, r)
		}
	}
	if n == 0 {
		return 0
	}
	avg := sum / n
	if avg < 1 {
		avg = 1
	}
	return avg
}

// reachable reports whether a worker could plausibly reach p. Minerals
// and radius-2 plant space always count as reachable; fish requires one
// walkable neighbour; every other resource requires p itself to be
// walkable. No path search or cost bound is applied.
func (m *Map) reachable(p hexgrid.Point, r bwtypes.ResourceType) bool {
	switch r {
	case bwtypes.ResourceIron, bwtypes.ResourceGold, bwtypes.ResourceCoal, bwtypes.ResourceGranite, bwtypes.ResourcePlantSpace2:
		return true // mineable terrain is always reachable by the miner standing on it
	case bwtypes.ResourceFish:
		for _, nb := range m.grid.Neighbors(p) {
			if m.terrain.Walkable(nb) {
				return true
			}
		}
		return false
	default:
		return m.terrain.Walkable(p)
	}
}

// GetReachable sums (optionally distance-weighted) resource values over
// every point within r's radius of center, skipping points whose pool is
// already fully claimed (Harvested > 0) unless includeClaimed is set, and
// skipping points a worker could not plausibly reach.
func (m *Map) GetReachable(center hexgrid.Point, r bwtypes.ResourceType, guess, weighted, includeClaimed bool) int {
	radius := r.Radius()
	total := 0
	m.forEachInRadius(center, radius, func(p hexgrid.Point, dist int) {
		if !includeClaimed && m.Harvested(p, r) > 0 {
			return
		}
		if !m.reachable(p, r) {
			return
		}
		v := m.Get(p, r, guess)
		if v == 0 {
			return
		}
		if weighted {
			v *= (radius + 1 - dist)
		}
		total += v
	})
	return total
}

func (m *Map) forEachInRadius(center hexgrid.Point, radius int, visit func(p hexgrid.Point, dist int)) {
	stepOk := func(hexgrid.Point, hexgrid.Direction) bool { return true }
	m.grid.FloodFill(center, stepOk, func(p hexgrid.Point) {
		d := m.grid.Distance(center, p)
		if d <= radius {
			visit(p, d)
		}
	})
}

// Harvested returns the number of agent-owned buildings currently
// claiming point p for resource type r.
func (m *Map) Harvested(p hexgrid.Point, r bwtypes.ResourceType) int {
	byType := m.harvested[p]
	if byType == nil {
		return 0
	}
	return byType[r]
}

// Added registers that a new building centered at center now claims
// resource r over its radius, incrementing the harvested counter at
// every point within reach.
func (m *Map) Added(center hexgrid.Point, r bwtypes.ResourceType) {
	m.adjustHarvested(center, r, 1)
}

// Removed undoes a prior Added call for a building that was deconstructed
// or destroyed.
func (m *Map) Removed(center hexgrid.Point, r bwtypes.ResourceType) {
	m.adjustHarvested(center, r, -1)
}

func (m *Map) adjustHarvested(center hexgrid.Point, r bwtypes.ResourceType, delta int) {
	m.forEachInRadius(center, r.Radius(), func(p hexgrid.Point, _ int) {
		if m.harvested[p] == nil {
			m.harvested[p] = make(map[bwtypes.ResourceType]int)
		}
		m.harvested[p][r] += delta
		if m.harvested[p][r] <= 0 {
			delete(m.harvested[p], r)
		}
	})
}

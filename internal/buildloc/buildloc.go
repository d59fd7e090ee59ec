// Package buildloc maintains, per road network, the set of points at
// which a building of a given size may legally be placed — a
// doubly-linked list of nodes backed by a freelist arena, indexed by a
// map-sized pointer array, matching the arena design in
// original_source/libs/s25main/ai/beowulf/BuildLocations.h exactly
// (Calculate/Update/Get/GetNearest/GetSum/GetSize), generalised from the
// reference's MapPoint/BuildingQuality types to this module's hexgrid and
// bwtypes packages.
package buildloc

import (
	"hearthold/internal/bwtypes"
	"hearthold/internal/hexgrid"
)

// QualitySource supplies the effective building quality at a point,
// folding in any planning-world blocking (planningworld.World satisfies
// this).
type QualitySource interface {
	EffectiveQuality(p hexgrid.Point) bwtypes.BuildingQuality
}

// RoadReachSource reports whether a point is reachable for building-site
// purposes from the enumerator's anchor: either it already carries a
// road/flag, or the enumerator may propose a road there.
type RoadReachSource interface {
	RoadPossibleOrPresent(p hexgrid.Point) bool
}

type node struct {
	point      hexgrid.Point
	bq         bwtypes.BuildingQuality
	next, prev *node
}

// Enumerator is a single anchor's view of buildable points. The default
// minimum Update radius is 2, matching BuildLocations.h's Update default.
type Enumerator struct {
	grid    hexgrid.Grid
	quality QualitySource
	reach   RoadReachSource
	anchor  hexgrid.Point

	index map[hexgrid.Point]*node
	first *node
	last  *node
	freed *node
	size  int
	sum   int
}

// New constructs an enumerator over grid, anchored eventually via
// Calculate.
func New(grid hexgrid.Grid, quality QualitySource, reach RoadReachSource) *Enumerator {
	return &Enumerator{grid: grid, quality: quality, reach: reach, index: make(map[hexgrid.Point]*node)}
}

// Calculate discards any existing contents and rebuilds the enumerator
// from scratch by flood-filling from anchor over road-possible-or-present
// edges, adding a node for every reached point whose effective BQ is
// above flag-only.
func (e *Enumerator) Calculate(anchor hexgrid.Point) {
	e.free()
	e.anchor = anchor

	stepOk := func(p hexgrid.Point, d hexgrid.Direction) bool {
		return e.reach.RoadPossibleOrPresent(p) || e.reach.RoadPossibleOrPresent(e.grid.Neighbor(p, d))
	}
	e.grid.FloodFill(anchor, stepOk, func(p hexgrid.Point) {
		bq := e.quality.EffectiveQuality(p)
		if bq > bwtypes.BQFlag {
			e.add(p, bq)
		}
	})
}

// Update re-evaluates every point within radius of center (clamped to a
// minimum of 2), removing nodes whose quality dropped below usable and
// adding/adjusting nodes whose quality is now usable.
func (e *Enumerator) Update(center hexgrid.Point, radius int) {
	if radius < 2 {
		radius = 2
	}
	stepOk := func(hexgrid.Point, hexgrid.Direction) bool { return true }
	e.grid.FloodFill(center, stepOk, func(p hexgrid.Point) {
		if e.grid.Distance(center, p) > radius {
			return
		}
		bq := e.quality.EffectiveQuality(p)
		existing, has := e.index[p]
		switch {
		case bq <= bwtypes.BQFlag && has:
			e.remove(existing)
		case bq > bwtypes.BQFlag && has:
			e.updateNode(existing, bq)
		case bq > bwtypes.BQFlag && !has:
			e.add(p, bq)
		}
	})
}

func (e *Enumerator) add(p hexgrid.Point, bq bwtypes.BuildingQuality) {
	n := e.allocate(p, bq)
	n.next = nil
	n.prev = e.last
	if e.last != nil {
		e.last.next = n
	}
	e.last = n
	if e.first == nil {
		e.first = n
	}
	e.index[p] = n
	e.size++
	e.sum += int(bq) - 1
}

func (e *Enumerator) allocate(p hexgrid.Point, bq bwtypes.BuildingQuality) *node {
	if e.freed != nil {
		n := e.freed
		e.freed = n.next
		n.point, n.bq, n.next, n.prev = p, bq, nil, nil
		return n
	}
	return &node{point: p, bq: bq}
}

func (e *Enumerator) remove(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		e.first = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		e.last = n.prev
	}
	delete(e.index, n.point)
	e.size--
	e.sum -= int(n.bq) - 1

	n.next = e.freed
	n.prev = nil
	e.freed = n
}

func (e *Enumerator) updateNode(n *node, bq bwtypes.BuildingQuality) {
	e.sum -= int(n.bq) - 1
	n.bq = bq
	e.sum += int(n.bq) - 1
}

func (e *Enumerator) free() {
	e.index = make(map[hexgrid.Point]*node)
	e.first, e.last, e.freed = nil, nil, nil
	e.size, e.sum = 0, 0
}

// Get returns every point whose recorded quality is at least bq.
func (e *Enumerator) Get(bq bwtypes.BuildingQuality) []hexgrid.Point {
	var out []hexgrid.Point
	for n := e.first; n != nil; n = n.next {
		if n.bq >= bq {
			out = append(out, n.point)
		}
	}
	return out
}

// GetAt returns the recorded quality at p, or BQNone if untracked.
func (e *Enumerator) GetAt(p hexgrid.Point) bwtypes.BuildingQuality {
	if n, ok := e.index[p]; ok {
		return n.bq
	}
	return bwtypes.BQNone
}

// GetNearest returns up to amount points of at least quality bq, nearest
// to pt first.
func (e *Enumerator) GetNearest(pt hexgrid.Point, amount int, bq bwtypes.BuildingQuality) []hexgrid.Point {
	candidates := e.Get(bq)
	return e.grid.Nearest(pt, candidates, amount)
}

// GetSum returns the sum of (quality-value - 1) across all tracked
// nodes — the territory-degradation metric used by the castle-wasting
// scoring penalty (spec §4.4/§4.7).
func (e *Enumerator) GetSum() int { return e.sum }

// GetSize returns the number of tracked nodes; must always equal the
// linked-list length (spec §8 invariant), which NodeCount recomputes the
// slow way for tests to check against.
func (e *Enumerator) GetSize() int { return e.size }

// NodeCount walks the linked list and counts it, for testing GetSize's
// invariant independently of the incrementally maintained counter.
func (e *Enumerator) NodeCount() int {
	n := 0
	for cur := e.first; cur != nil; cur = cur.next {
		n++
	}
	return n
}

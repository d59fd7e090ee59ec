// Package roadnetwork partitions flags into equivalence classes ("road
// networks") connected by present road segments, maintained incrementally
// with a full-rebuild fallback.
//
// Ported from the authoritative algorithm in
// original_source/libs/s25main/ai/beowulf/RoadNetworks.h/.cpp: assign ids
// lazily as flags are requested, clear to invalid on destruction unless
// still connected, and fall back to a full Detect() (flood-fill from every
// still-invalid flag) whenever incremental bookkeeping cannot be trusted
// — split detection on road destruction is deliberately not implemented,
// matching the upstream incompleteness called out in spec §9. Guarded by
// a mutex in the style of the teacher's internal/engine/group_manager.go.
package roadnetwork

import (
	"sync"

	"hearthold/internal/bwtypes"
	"hearthold/internal/hexgrid"
)

// InvalidID marks a point with no assigned road network.
const InvalidID = -1

// World is the read surface the tracker needs: whether a road is present
// on an edge, and the set of known flag points.
type World interface {
	HasRoad(p hexgrid.Point, d hexgrid.Direction) bool
	IsPointConnected(p hexgrid.Point) bool
	Flags() []hexgrid.Point
}

// Tracker assigns road-network ids to flag points.
type Tracker struct {
	mu    sync.RWMutex
	grid  hexgrid.Grid
	world World
	ids   map[hexgrid.Point]int
	next  int
}

// New constructs a tracker over grid, backed by world.
func New(grid hexgrid.Grid, world World) *Tracker {
	return &Tracker{
		grid: grid,
		world: world,
		ids:  make(map[hexgrid.Point]int),
	}
}

// Get returns the road-network id assigned to p, or InvalidID.
func (t *Tracker) Get(p hexgrid.Point) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id, ok := t.ids[p]; ok {
		return id
	}
	return InvalidID
}

// SameNetwork reports whether a and b are connected (Get(a) == Get(b) and
// both valid).
func (t *Tracker) SameNetwork(a, b hexgrid.Point) bool {
	ga, gb := t.Get(a), t.Get(b)
	return ga != InvalidID && ga == gb
}

// OnFlagStateChanged updates ids incrementally for a single flag state
// transition, mirroring RoadNetworks.cpp's OnFlagStateChanged: a newly
// requested flag gets a fresh id if it doesn't have one yet; a flag that
// stops existing is cleared to invalid unless the world reports it is
// still connected (in which case a later Detect call will reassign it
// correctly).
func (t *Tracker) OnFlagStateChanged(p hexgrid.Point, state bwtypes.FlagState) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch state {
	case bwtypes.FlagRequested:
		if _, ok := t.ids[p]; !ok {
			t.ids[p] = t.next
			t.next++
		}
	case bwtypes.FlagDestructionRequested, bwtypes.FlagDoesNotExist:
		if !t.world.IsPointConnected(p) {
			delete(t.ids, p)
		}
	case bwtypes.FlagFinished:
		// no-op: id was already assigned on Requested.
	}
}

// Detect performs a full rebuild: every flag reported by World.Flags is
// assigned a network id by flood-filling over present-road edges,
// starting fresh ids from zero. This is the correct baseline after any
// road or flag destruction, since the incremental path above cannot
// detect a network split.
func (t *Tracker) Detect() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ids = make(map[hexgrid.Point]int)
	t.next = 0

	stepOk := func(p hexgrid.Point, d hexgrid.Direction) bool {
		return t.world.HasRoad(p, d)
	}

	for _, flag := range t.world.Flags() {
		if _, already := t.ids[flag]; already {
			continue
		}
		id := t.next
		t.grid.FloodFill(flag, stepOk, func(reached hexgrid.Point) {
			t.ids[reached] = id
		})
		t.next++
	}
}

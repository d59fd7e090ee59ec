// Package planningworld is the agent's shadow of the engine map: it
// unifies committed state (buildings, flags, roads, road-network ids)
// with ephemeral planning overlays so every other planner component can
// query a single coherent "world as it will be" view without confusing
// a plan with reality.
//
// Grounded on the teacher's internal/engine/world.go (World as the
// central shadow-state hub holding players/objects/resources behind a
// single struct) and internal/engine/objects.go, generalised from the
// teacher's live-simulation world to a planning-only shadow, and on the
// overlay/committed split described in original_source's Types.h
// (FlagState/RoadState) plus spec §9's "planning overlays vs committed
// state" design note.
package planningworld

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"hearthold/internal/bwtypes"
	"hearthold/internal/hexgrid"
	"hearthold/internal/roadnetwork"
)

// CommandSink is the subset of the engine command surface the planning
// world needs to emit committed mutations (spec §6).
type CommandSink interface {
	PlaceBuilding(p Point, t bwtypes.BuildingType)
	PlaceFlag(p Point)
	DestroyBuilding(p Point)
	DestroyFlag(p Point)
	BuildRoad(p Point, dirs []hexgrid.Direction)
	DestroyRoad(p Point, first hexgrid.Direction)
}

// BQSource supplies the engine's base building-quality view, before any
// planning-world blocking adjustments are applied.
type BQSource interface {
	BaseQuality(p Point) bwtypes.BuildingQuality
}

type roadKey struct {
	p Point
	d hexgrid.Direction
}

// World is the planner's shadow map.
type World struct {
	mu   sync.RWMutex
	grid hexgrid.Grid
	log  *zap.Logger

	commands CommandSink
	bq       BQSource
	roadnet  *roadnetwork.Tracker

	buildings     map[BuildingID]*Building
	nextBuildingID BuildingID

	groups      map[GroupID]*Group
	nextGroupID GroupID

	flagState   map[Point]bwtypes.FlagState
	flagOverlay map[Point]int

	roadState   map[roadKey]bwtypes.RoadState
	roadOverlay map[roadKey]int

	// blocking records extra points where no building may be placed,
	// e.g. propagated from a neighbouring castle-sized building (spec
	// §4.3 "blocking manner").
	blocking map[Point]bool
}

// New constructs an empty planning world over grid, emitting commands to
// sink and reading base building quality from bq.
func New(grid hexgrid.Grid, sink CommandSink, bq BQSource, roadnet *roadnetwork.Tracker, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		grid:        grid,
		log:         log,
		commands:    sink,
		bq:          bq,
		roadnet:     roadnet,
		buildings:   make(map[BuildingID]*Building),
		groups:      make(map[GroupID]*Group),
		flagState:   make(map[Point]bwtypes.FlagState),
		flagOverlay: make(map[Point]int),
		roadState:   make(map[roadKey]bwtypes.RoadState),
		roadOverlay: make(map[roadKey]int),
		blocking:    make(map[Point]bool),
	}
}

// FlagPoint returns the point a building at p connects its road network
// through: its south-east neighbour (spec §3).
func (w *World) FlagPoint(p Point) Point {
	return w.grid.Neighbor(p, hexgrid.SouthEast)
}

// --- Flag / road presence -------------------------------------------------

// HasFlag reports whether a flag is present at p: committed
// Requested/Finished, or a nonzero planning overlay.
func (w *World) HasFlag(p Point) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.hasFlagLocked(p)
}

func (w *World) hasFlagLocked(p Point) bool {
	s := w.flagState[p]
	return s == bwtypes.FlagRequested || s == bwtypes.FlagFinished || w.flagOverlay[p] > 0
}

// HasRoad reports whether a road segment is present on the canonical
// storage direction of the edge (p, d).
func (w *World) HasRoad(p Point, d hexgrid.Direction) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.hasRoadLocked(p, d)
}

func (w *World) hasRoadLocked(p Point, d hexgrid.Direction) bool {
	key, _ := w.canonicalRoad(p, d)
	state := w.roadState[key]
	return state == bwtypes.RoadRequested || state == bwtypes.RoadFinished || w.roadOverlay[key] > 0
}

// canonicalRoad folds a (point, any-direction) edge reference down to its
// canonical storage key. The boolean return is unused but kept for
// symmetry with a resolved/"needs opposite" flag during debugging.
func (w *World) canonicalRoad(p Point, d hexgrid.Direction) (roadKey, bool) {
	if d.IsCanonical() {
		return roadKey{p: p, d: d}, false
	}
	n := w.grid.Neighbor(p, d)
	return roadKey{p: n, d: d.Opposite()}, true
}

// IsPointConnected reports whether p currently has any present road
// edge, used by the road-network tracker's incremental hook.
func (w *World) IsPointConnected(p Point) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for d := hexgrid.Direction(0); d < hexgrid.DirectionCount; d++ {
		if w.hasRoadLocked(p, d) {
			return true
		}
	}
	return false
}

// Flags returns every point with a committed (non-overlay) flag, for the
// road-network tracker's full rebuild.
func (w *World) Flags() []Point {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Point, 0, len(w.flagState))
	for p, s := range w.flagState {
		if s == bwtypes.FlagRequested || s == bwtypes.FlagFinished {
			out = append(out, p)
		}
	}
	return out
}

// --- Building quality ------------------------------------------------------

// EffectiveQuality returns the building quality usable at p, folding the
// engine's base quality with any planning-world blocking.
func (w *World) EffectiveQuality(p Point) bwtypes.BuildingQuality {
	w.mu.RLock()
	blocked := w.blocking[p]
	w.mu.RUnlock()
	if blocked {
		return bwtypes.BQNone
	}
	return w.bq.BaseQuality(p)
}

// SetBlocked marks or clears p as blocked beyond the engine's own view,
// e.g. because a newly finished castle-sized building propagates a
// no-large-building restriction to its neighbours (spec §4.3).
func (w *World) SetBlocked(p Point, blocked bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if blocked {
		w.blocking[p] = true
	} else {
		delete(w.blocking, p)
	}
}

// --- Building creation / lookup -------------------------------------------

// Create allocates a Building in PlanningRequest state. If group is
// InvalidGroupID and t is a grouped production type, Create tries to
// join the first existing group with a free matching slot before seeding
// a brand-new group from that type's template.
func (w *World) Create(t bwtypes.BuildingType, group GroupID) *Building {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextBuildingID
	w.nextBuildingID++
	b := &Building{ID: id, Type: t, State: bwtypes.BuildingPlanningRequest, Group: InvalidGroupID}
	w.buildings[id] = b

	if group != InvalidGroupID {
		w.assignToGroupLocked(b, group)
		return b
	}

	if !isGroupedProductionType(t) {
		return b
	}

	for _, g := range w.groups {
		if slot := g.OpenSlot(t); slot >= 0 {
			g.Buildings[slot] = b
			b.Group = g.ID
			return b
		}
	}

	// No existing group had room: seed a fresh one from the template
	// and retry assignment into it.
	newGroup := w.seedGroupLocked(t)
	if slot := newGroup.OpenSlot(t); slot >= 0 {
		newGroup.Buildings[slot] = b
		b.Group = newGroup.ID
	}
	return b
}

func (w *World) seedGroupLocked(seedType bwtypes.BuildingType) *Group {
	template := groupTemplates[seedType]
	id := w.nextGroupID
	w.nextGroupID++
	g := &Group{ID: id, Types: append([]bwtypes.BuildingType(nil), template...), Buildings: make([]*Building, len(template))}
	w.groups[id] = g
	return g
}

func (w *World) assignToGroupLocked(b *Building, group GroupID) {
	g, ok := w.groups[group]
	if !ok {
		return
	}
	if slot := g.OpenSlot(b.Type); slot >= 0 {
		g.Buildings[slot] = b
		b.Group = group
	}
}

// Remove deletes a building that never progressed past PlanningRequest
// (spec §8 round-trip: Create then Remove before Construct must leave
// the building count unchanged).
func (w *World) Remove(id BuildingID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.buildings[id]
	if !ok {
		return
	}
	if b.Group != InvalidGroupID {
		if g, ok := w.groups[b.Group]; ok {
			for i, member := range g.Buildings {
				if member == b {
					g.Buildings[i] = nil
				}
			}
		}
	}
	delete(w.buildings, id)
}

// Building looks up a building by id.
func (w *World) Building(id BuildingID) (*Building, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	b, ok := w.buildings[id]
	return b, ok
}

// Group looks up a group by id.
func (w *World) Group(id GroupID) (*Group, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	g, ok := w.groups[id]
	return g, ok
}

// Buildings returns every building currently tracked, for iteration by
// planners (production tally, attack target ranking, etc.).
func (w *World) Buildings() []*Building {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*Building, 0, len(w.buildings))
	for _, b := range w.buildings {
		out = append(out, b)
	}
	return out
}

// --- Committed mutations ---------------------------------------------------

// Construct issues a place-building command for b at p. Requires b not
// yet committed (not ConstructionRequested, UnderConstruction or
// Finished). If no flag exists at p's flag
// point, one is requested alongside. All committed mutations first clear
// any outstanding plan overlays (spec §4.3).
func (w *World) Construct(b *Building, p Point) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if b.State == bwtypes.BuildingFinished || b.State == bwtypes.BuildingConstructionRequested || b.State == bwtypes.BuildingUnderConstruction {
		return fmt.Errorf("planningworld: building %d already committed (state %v)", b.ID, b.State)
	}

	// Transition b out of PlanningRequest before the plan clear below:
	// clearPlanLocked drops every building still in that state, and b
	// must not be one of them once it's been committed.
	b.Point = p
	b.hasPoint = true
	b.State = bwtypes.BuildingConstructionRequested

	w.clearPlanLocked()

	w.commands.PlaceBuilding(p, b.Type)

	flagPt := w.grid.Neighbor(p, hexgrid.SouthEast)
	if !w.hasFlagLocked(flagPt) {
		w.constructFlagLocked(flagPt)
	}
	return nil
}

// ConstructFlag issues a place-flag command at p if none is present.
func (w *World) ConstructFlag(p Point) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clearPlanLocked()
	w.constructFlagLocked(p)
}

func (w *World) constructFlagLocked(p Point) {
	if w.hasFlagLocked(p) {
		return
	}
	w.commands.PlaceFlag(p)
	w.flagState[p] = bwtypes.FlagRequested
	if w.roadnet != nil {
		w.roadnet.OnFlagStateChanged(p, bwtypes.FlagRequested)
	}
}

// ConstructRoad marks the edges along route (starting at p, which must
// already have a present flag) as Requested and issues the build-road
// command.
func (w *World) ConstructRoad(p Point, route []hexgrid.Direction) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.hasFlagLocked(p) {
		return fmt.Errorf("planningworld: cannot build road from %v without a present flag", p)
	}
	w.clearPlanLocked()

	w.commands.BuildRoad(p, route)
	cur := p
	for _, d := range route {
		key, _ := w.canonicalRoad(cur, d)
		w.roadState[key] = bwtypes.RoadRequested
		cur = w.grid.Neighbor(cur, d)
	}
	return nil
}

// Deconstruct issues a destroy-building command and marks the building
// DestructionRequested.
func (w *World) Deconstruct(b *Building) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clearPlanLocked()
	if b.hasPoint {
		w.commands.DestroyBuilding(b.Point)
	}
	b.State = bwtypes.BuildingDestructionRequested
}

// DeconstructFlag issues a destroy-flag command and flood-fills the
// connected roads out to the next flag, marking them
// DestructionRequested too (since the engine removes a flag's adjoining
// road stubs along with it).
func (w *World) DeconstructFlag(p Point) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clearPlanLocked()

	if !w.hasFlagLocked(p) {
		return
	}
	w.commands.DestroyFlag(p)
	w.flagState[p] = bwtypes.FlagDestructionRequested
	if w.roadnet != nil {
		w.roadnet.OnFlagStateChanged(p, bwtypes.FlagDestructionRequested)
	}

	for d := hexgrid.Direction(0); d < hexgrid.DirectionCount; d++ {
		cur, dir := p, d
		for w.hasRoadLocked(cur, dir) {
			key, _ := w.canonicalRoad(cur, dir)
			w.roadState[key] = bwtypes.RoadDestructionRequested
			cur = w.grid.Neighbor(cur, dir)
			if w.hasFlagLocked(cur) {
				break
			}
			for nd := hexgrid.Direction(0); nd < hexgrid.DirectionCount; nd++ {
				if w.hasRoadLocked(cur, nd) {
					dir = nd
					break
				}
			}
		}
	}
}

// DeconstructRoad issues a destroy-road command for the segment starting
// at p in direction first.
func (w *World) DeconstructRoad(p Point, first hexgrid.Direction) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clearPlanLocked()

	w.commands.DestroyRoad(p, first)
	key, _ := w.canonicalRoad(p, first)
	w.roadState[key] = bwtypes.RoadDestructionRequested
}

// --- Planning mutations (no commands emitted) ------------------------------

// Plan marks b as provisionally placed at p without emitting any engine
// command. Used by the scorer/planner to evaluate hypothetical layouts.
func (w *World) Plan(b *Building, p Point) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b.Point = p
	b.hasPoint = true
	flagPt := w.grid.Neighbor(p, hexgrid.SouthEast)
	w.flagOverlay[flagPt]++
}

// PlanFlag increments the planning overlay counter for p. Idempotent
// with respect to repeated planning at the same point (the counter just
// increments further; ClearPlan resets it to zero regardless of count).
func (w *World) PlanFlag(p Point) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.flagOverlay[p]++
}

// PlanRoad increments the planning overlay counters along route starting
// at p.
func (w *World) PlanRoad(p Point, route []hexgrid.Direction) {
	w.mu.Lock()
	defer w.mu.Unlock()
	cur := p
	for _, d := range route {
		key, _ := w.canonicalRoad(cur, d)
		w.roadOverlay[key]++
		cur = w.grid.Neighbor(cur, d)
	}
}

// ClearPlan erases every planning overlay and drops any building still in
// PlanningRequest state that was never committed.
func (w *World) ClearPlan() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clearPlanLocked()
}

func (w *World) clearPlanLocked() {
	w.flagOverlay = make(map[Point]int)
	w.roadOverlay = make(map[roadKey]int)
	for id, b := range w.buildings {
		if b.State == bwtypes.BuildingPlanningRequest {
			if b.Group != InvalidGroupID {
				if g, ok := w.groups[b.Group]; ok {
					for i, member := range g.Buildings {
						if member == b {
							g.Buildings[i] = nil
						}
					}
				}
			}
			delete(w.buildings, id)
		}
	}
}

// Package roadmanager finds and builds a road from a building's flag to
// an appropriate destination flag, splitting the route into the
// contiguous new-construction sub-segments the engine accepts, and
// repairs connections when a road is destroyed.
//
// Grounded on the teacher's internal/engine/pathfinding.go (A* with
// container/heap, PathRequest/PathResult shape) and the
// RueaEconomyStudio astar.go reference's precomputed-heuristic,
// built-once-per-search connection helpers.
package roadmanager

import (
	"hearthold/internal/bwtypes"
	"hearthold/internal/hexgrid"
	"hearthold/internal/planningworld"
)

// RoadWorld is the subset of planningworld.World the road manager needs.
type RoadWorld interface {
	HasFlag(p hexgrid.Point) bool
	HasRoad(p hexgrid.Point, d hexgrid.Direction) bool
	EffectiveQuality(p hexgrid.Point) bwtypes.BuildingQuality
	ConstructRoad(p hexgrid.Point, route []hexgrid.Direction) error
}

// Manager owns per-segment traffic bookkeeping ("users") so a destroyed
// segment's affected buildings can be identified and reconnected.
type Manager struct {
	grid  hexgrid.Grid
	world RoadWorld

	// users maps a directed (point, direction) edge, keyed in the
	// direction the route walked it, to the set of building ids
	// currently routed across it.
	users map[edgeKey]map[planningworld.BuildingID]bool
}

type edgeKey struct {
	p hexgrid.Point
	d hexgrid.Direction
}

// New constructs a road manager over world.
func New(grid hexgrid.Grid, world RoadWorld) *Manager {
	return &Manager{grid: grid, world: world, users: make(map[edgeKey]map[planningworld.BuildingID]bool)}
}

// traffic is the per-edge penalty accounting: upper traffic limit is 30
// wares per unit time (ProductionConsts.h UPPER_TRAFFIC_LIMIT), and
// farmland edges are penalised to keep roads off farm tiles.
const upperTrafficLimit = 30

// Connect finds a route from the building's flag point to destFlag and
// submits it as one or more road-construction commands, recording the
// building as a user of every edge along the way. onFarmland reports whether an edge
// traverses reserved farmland (penalised, not forbidden).
func (m *Manager) Connect(buildingID planningworld.BuildingID, fromFlag, destFlag hexgrid.Point, traffic int, onFarmland func(p hexgrid.Point, d hexgrid.Direction) bool) (hexgrid.Route, bool) {
	stepOk := func(p hexgrid.Point, d hexgrid.Direction) bool {
		return m.roadPossibleOrPresent(p, d)
	}
	cost := func(p hexgrid.Point, d hexgrid.Direction) float64 {
		c := 5.0
		if m.world.HasRoad(p, d) {
			c = 1.0
		}
		if m.trafficOn(p, d)+traffic > upperTrafficLimit {
			c += 10
		}
		if onFarmland != nil && onFarmland(p, d) {
			c += 10
		}
		return c
	}
	atEnd := func(p hexgrid.Point) bool { return p == destFlag }

	route, ok := m.grid.AStar(fromFlag, stepOk, atEnd, m.grid.HexDistanceHeuristic(destFlag), cost)
	if !ok {
		return nil, false
	}

	for _, seg := range m.splitNewSegments(fromFlag, route) {
		if err := m.world.ConstructRoad(seg.start, seg.dirs); err != nil {
			return nil, false
		}
	}
	m.addUsers(fromFlag, route, buildingID)
	return route, true
}

func (m *Manager) roadPossibleOrPresent(p hexgrid.Point, d hexgrid.Direction) bool {
	if m.world.HasRoad(p, d) {
		return true
	}
	n := m.grid.Neighbor(p, d)
	return m.world.EffectiveQuality(n) > bwtypes.BQNone
}

// trafficOn returns the number of buildings routed across the directed
// edge (p, d). The traffic passed to Connect is not stored, so Connect's
// upperTrafficLimit check adds this building count, not a sum of wares,
// to the new building's traffic.
func (m *Manager) trafficOn(p hexgrid.Point, d hexgrid.Direction) int {
	key := edgeKey{p: p, d: d}
	return len(m.users[key])
}

type segment struct {
	start hexgrid.Point
	dirs  []hexgrid.Direction
}

// splitNewSegments walks route from start, grouping consecutive
// not-already-present edges into maximal sub-segments, since the engine
// only accepts road commands on edges that do not already have a road
// (spec §4.6).
func (m *Manager) splitNewSegments(start hexgrid.Point, route hexgrid.Route) []segment {
	var segments []segment
	cur := start
	var pending segment
	havePending := false

	for _, d := range route {
		if m.world.HasRoad(cur, d) {
			if havePending {
				segments = append(segments, pending)
				havePending = false
			}
			cur = m.grid.Neighbor(cur, d)
			continue
		}
		if !havePending {
			pending = segment{start: cur}
			havePending = true
		}
		pending.dirs = append(pending.dirs, d)
		cur = m.grid.Neighbor(cur, d)
	}
	if havePending {
		segments = append(segments, pending)
	}
	return segments
}

func (m *Manager) addUsers(start hexgrid.Point, route hexgrid.Route, id planningworld.BuildingID) {
	cur := start
	for _, d := range route {
		key := edgeKey{p: cur, d: d}
		if m.users[key] == nil {
			m.users[key] = make(map[planningworld.BuildingID]bool)
		}
		m.users[key][id] = true
		cur = m.grid.Neighbor(cur, d)
	}
}

// UsersOf returns every building id currently routed across the edge
// (p, d), for repair-on-destruction handling.
func (m *Manager) UsersOf(p hexgrid.Point, d hexgrid.Direction) []planningworld.BuildingID {
	key := edgeKey{p: p, d: d}
	out := make([]planningworld.BuildingID, 0, len(m.users[key]))
	for id := range m.users[key] {
		out = append(out, id)
	}
	return out
}

// RemoveUser drops id from every edge's user set, called before a repair
// attempt re-routes it.
func (m *Manager) RemoveUser(id planningworld.BuildingID) {
	for key, set := range m.users {
		delete(set, id)
		if len(set) == 0 {
			delete(m.users, key)
		}
	}
}

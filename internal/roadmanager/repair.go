package roadmanager

import (
	"hearthold/internal/bwtypes"
	"hearthold/internal/hexgrid"
	"hearthold/internal/planningworld"
)

// BuildingLookup resolves a building id to its current flag point and
// state, for repair/capture-response decisions.
type BuildingLookup interface {
	Building(id planningworld.BuildingID) (*planningworld.Building, bool)
	FlagPoint(p hexgrid.Point) hexgrid.Point
	Deconstruct(b *planningworld.Building)
}

// Reconnect is called once per affected building after a road segment is
// destroyed: remove it from every edge's users, then attempt to
// Connect it again to destFlag. If reconnection fails and the building
// is still only UnderConstruction, it is deconstructed rather than left
// stranded (spec §4.6 Repair).
func (m *Manager) Reconnect(lookup BuildingLookup, destroyedP hexgrid.Point, destroyedD hexgrid.Direction, destFlag hexgrid.Point, trafficOf func(planningworld.BuildingID) int) {
	affected := m.UsersOf(destroyedP, destroyedD)
	for _, id := range affected {
		m.RemoveUser(id)

		b, ok := lookup.Building(id)
		if !ok || !b.HasPoint() {
			continue
		}
		fromFlag := lookup.FlagPoint(b.Point)
		traffic := 0
		if trafficOf != nil {
			traffic = trafficOf(id)
		}
		if _, ok := m.Connect(id, fromFlag, destFlag, traffic, nil); !ok {
			if b.State == bwtypes.BuildingUnderConstruction {
				lookup.Deconstruct(b)
			}
		}
	}
}

// OnCaptured re-establishes a connection for a building captured from an
// enemy whose flag is not yet part of a road network (spec §4.6 Capture
// response).
func (m *Manager) OnCaptured(id planningworld.BuildingID, fromFlag, destFlag hexgrid.Point, traffic int, alreadyConnected bool) {
	if alreadyConnected {
		return
	}
	m.Connect(id, fromFlag, destFlag, traffic, nil)
}

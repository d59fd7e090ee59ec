// Package managers holds the small recurrent subsystems that don't
// warrant their own top-level package: the metalworks tool-order queue,
// the coin/academy manager, the attack manager, and the two supplemented
// managers (catapult, storehouse) — grounded on the teacher's
// internal/engine/ai_managers.go EconomicManager/MilitaryManager split,
// one manager struct per concern with its own small state and a Tick
// method the scheduler calls in a fixed order.
package managers

import (
	"go.uber.org/zap"

	"hearthold/internal/hexgrid"
)

// MetalworksCommands is the subset of gameiface.CommandSink the
// metalworks manager issues.
type MetalworksCommands interface {
	ChangeToolOrders(orders map[string]int)
	SetProductionEnabled(p hexgrid.Point, enabled bool)
}

// MetalworksManager is a finite-state tool-order FIFO (spec §4.11): it
// submits one unit of the queue head whenever the metalworks exists and
// is idle, and advances on a tool-produced notification.
type MetalworksManager struct {
	log       *zap.Logger
	queue     []string
	inFlight  string
	hasOrder  bool
}

// NewMetalworksManager constructs an empty tool-order queue.
func NewMetalworksManager(log *zap.Logger) *MetalworksManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &MetalworksManager{log: log}
}

// Enqueue appends a desired tool type to the FIFO.
func (m *MetalworksManager) Enqueue(tool string) {
	m.queue = append(m.queue, tool)
}

// Tick submits the queue head if the metalworks exists, is idle, and no
// order is currently in flight; it also keeps production enabled exactly
// while the queue is non-empty.
func (m *MetalworksManager) Tick(metalworksAt hexgrid.Point, metalworksExists, metalworksIdle bool, sink MetalworksCommands) {
	if !metalworksExists {
		return
	}
	sink.SetProductionEnabled(metalworksAt, len(m.queue) > 0)

	if !metalworksIdle || m.hasOrder || len(m.queue) == 0 {
		return
	}
	m.inFlight = m.queue[0]
	m.queue = m.queue[1:]
	m.hasOrder = true
	sink.ChangeToolOrders(map[string]int{m.inFlight: 1})
	m.log.Debug("metalworks order submitted", zap.String("tool", m.inFlight))
}

// OnToolProduced pops the in-flight marker and, if tool doesn't match,
// still clears it — a mismatch only happens after an OnMetalworksDestroyed
// reset raced with a late notification.
func (m *MetalworksManager) OnToolProduced(_ string) {
	m.hasOrder = false
	m.inFlight = ""
}

// OnMetalworksDestroyed credits any in-flight order back to the front of
// the queue, since the engine will never deliver its tool-produced
// notification now (spec §4.11).
func (m *MetalworksManager) OnMetalworksDestroyed() {
	if m.hasOrder {
		m.queue = append([]string{m.inFlight}, m.queue...)
		m.hasOrder = false
		m.inFlight = ""
	}
}

// JobOrToolOrQueueSpace answers whether a producer needing the given job
// can be satisfied: either some warehouse already holds the job/tool, or
// there is still room to add it to the queue. Planners gate a building
// request on this so they never request a building no worker will ever
// staff (spec §4.11).
func (m *MetalworksManager) JobOrToolOrQueueSpace(job string, warehouseHasJobOrTool func(string) bool) bool {
	if warehouseHasJobOrTool != nil && warehouseHasJobOrTool(job) {
		return true
	}
	for _, q := range m.queue {
		if q == job {
			return true
		}
	}
	return len(m.queue) < maxQueuedTools
}

const maxQueuedTools = 8

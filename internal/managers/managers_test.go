package managers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hearthold/internal/bwtypes"
	"hearthold/internal/hexgrid"
	"hearthold/internal/planningworld"
)

type fakeSink struct {
	toolOrders     map[string]int
	productionOn   map[hexgrid.Point]bool
	coinsAllowed   map[hexgrid.Point]bool
	soldiersHome   []hexgrid.Point
	newSoldiers    []hexgrid.Point
	attacks        []struct {
		p           hexgrid.Point
		n           int
		strongFirst bool
	}
}

func newFakeSink() *fakeSink {
	return &fakeSink{
		productionOn: make(map[hexgrid.Point]bool),
		coinsAllowed: make(map[hexgrid.Point]bool),
	}
}

func (s *fakeSink) ChangeToolOrders(orders map[string]int)                 { s.toolOrders = orders }
func (s *fakeSink) SetProductionEnabled(p hexgrid.Point, enabled bool)     { s.productionOn[p] = enabled }
func (s *fakeSink) SetCoinsAllowed(p hexgrid.Point, allowed bool)          { s.coinsAllowed[p] = allowed }
func (s *fakeSink) SendSoldiersHome(p hexgrid.Point)                      { s.soldiersHome = append(s.soldiersHome, p) }
func (s *fakeSink) OrderNewSoldiers(p hexgrid.Point)                      { s.newSoldiers = append(s.newSoldiers, p) }
func (s *fakeSink) Attack(p hexgrid.Point, n int, strongFirst bool) {
	s.attacks = append(s.attacks, struct {
		p           hexgrid.Point
		n           int
		strongFirst bool
	}{p, n, strongFirst})
}

func TestMetalworksManagerSubmitsQueueHeadWhenIdle(t *testing.T) {
	m := NewMetalworksManager(nil)
	m.Enqueue("axe")
	m.Enqueue("saw")
	sink := newFakeSink()
	at := hexgrid.Point{X: 1, Y: 1}

	m.Tick(at, true, true, sink)
	require.Equal(t, map[string]int{"axe": 1}, sink.toolOrders)
	assert.True(t, sink.productionOn[at])

	sink.toolOrders = nil
	m.Tick(at, true, true, sink)
	assert.Nil(t, sink.toolOrders)

	m.OnToolProduced("axe")
	m.Tick(at, true, true, sink)
	assert.Equal(t, map[string]int{"saw": 1}, sink.toolOrders)
}

func TestMetalworksManagerCreditsInFlightOnDestruction(t *testing.T) {
	m := NewMetalworksManager(nil)
	m.Enqueue("axe")
	sink := newFakeSink()
	at := hexgrid.Point{X: 2, Y: 2}
	m.Tick(at, true, true, sink)
	require.True(t, m.hasOrder)

	m.OnMetalworksDestroyed()
	assert.False(t, m.hasOrder)
	assert.Equal(t, []string{"axe"}, m.queue)
}

func TestJobOrToolOrQueueSpace(t *testing.T) {
	m := NewMetalworksManager(nil)
	assert.True(t, m.JobOrToolOrQueueSpace("hammer", nil))

	for i := 0; i < maxQueuedTools; i++ {
		m.Enqueue("filler")
	}
	assert.False(t, m.JobOrToolOrQueueSpace("hammer", func(string) bool { return false }))
	assert.True(t, m.JobOrToolOrQueueSpace("hammer", func(string) bool { return true }))
}

func TestCoinManagerGatesOnPromotableThreshold(t *testing.T) {
	c := NewCoinManager()
	academy := hexgrid.Point{X: 3, Y: 3}
	c.SetAcademy(academy)
	sink := newFakeSink()

	c.Tick(1, 0, sink)
	assert.False(t, sink.coinsAllowed[academy])

	c.Tick(promotableSoldiersForCoins, 2, sink)
	assert.True(t, sink.coinsAllowed[academy])
	assert.NotEmpty(t, sink.soldiersHome)
	assert.NotEmpty(t, sink.newSoldiers)
}

func TestAttackManagerPrefersHeadquarters(t *testing.T) {
	a := NewAttackManager()
	sink := newFakeSink()
	hq := hexgrid.Point{X: 9, Y: 9}
	other := hexgrid.Point{X: 1, Y: 1}

	a.Tick([]EnemyBuilding{
		{Point: other, Type: bwtypes.BldFortress},
		{Point: hq, IsHeadquarters: true},
	}, 5, false, sink)

	require.Len(t, sink.attacks, 1)
	assert.Equal(t, hq, sink.attacks[0].p)
}

type fakeCatapultReq struct{ called bool; anchor, point hexgrid.Point }

func (r *fakeCatapultReq) RequestFixed(b *planningworld.Building, anchor, point hexgrid.Point) {
	r.called, r.anchor, r.point = true, anchor, point
}

func TestCatapultManagerRequestsWithinWindow(t *testing.T) {
	grid := hexgrid.NewGrid(40, 40)
	c := NewCatapultManager()
	anchor := hexgrid.Point{X: 5, Y: 5}
	candidate := hexgrid.Point{X: 5, Y: 8}
	hostile := hexgrid.Point{X: 5, Y: 20}

	req := &fakeCatapultReq{}
	ok := c.Tick(anchor, []hexgrid.Point{candidate}, []hexgrid.Point{hostile}, grid, true, req, func() *planningworld.Building {
		return &planningworld.Building{Type: bwtypes.BldCatapult, Group: planningworld.InvalidGroupID}
	})
	assert.True(t, ok)
	assert.True(t, req.called)
	assert.Equal(t, candidate, req.point)
}

type fakeStorehouseReq struct{ called bool }

func (r *fakeStorehouseReq) Request(b *planningworld.Building, anchor hexgrid.Point) { r.called = true }

func TestStorehouseManagerRequestsWhenFarEnough(t *testing.T) {
	grid := hexgrid.NewGrid(40, 40)
	s := NewStorehouseManager()
	hq := hexgrid.Point{X: 0, Y: 0}
	far := hexgrid.Point{X: 15, Y: 0}

	req := &fakeStorehouseReq{}
	ok := s.Tick(grid, hq, far, 0, req, func() *planningworld.Building {
		return &planningworld.Building{Type: bwtypes.BldStorehouse, Group: planningworld.InvalidGroupID}
	})
	assert.True(t, ok)
	assert.True(t, req.called)
}

func TestStorehouseManagerThrottlesOnMilitarySites(t *testing.T) {
	grid := hexgrid.NewGrid(40, 40)
	s := NewStorehouseManager()
	hq := hexgrid.Point{X: 0, Y: 0}
	far := hexgrid.Point{X: 15, Y: 0}

	req := &fakeStorehouseReq{}
	ok := s.Tick(grid, hq, far, 3, req, func() *planningworld.Building { return nil })
	assert.False(t, ok)
	assert.False(t, req.called)
}

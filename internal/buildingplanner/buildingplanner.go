// Package buildingplanner dispatches queued building requests anchored
// to a road network: choosing positions via the scoring package and
// executing placement + road connection, with a per-anchor FIFO. Each
// placement scores every enumerator entry of sufficient quality; the
// number of candidates searched per tick is not capped.
//
// Grounded on the teacher's internal/engine/strategic_ai.go
// (StrategicDecision as a scored, queued unit of work) and
// production_system.go's queue-draining tick loop, generalised from
// live-simulation decisions to planning-time building placement.
package buildingplanner

import (
	"go.uber.org/zap"

	"hearthold/internal/bwtypes"
	"hearthold/internal/buildloc"
	"hearthold/internal/detrng"
	"hearthold/internal/hexgrid"
	"hearthold/internal/planningworld"
	"hearthold/internal/scoring"
)

// request is one queued building-placement request.
type request struct {
	building *planningworld.Building
	fixed    bool
	point    hexgrid.Point
}

// typePriority orders the stable sort of a batch (spec §4.8 step 2c):
// sawmills first, then quarries, then basic producers, then military,
// then mines last.
var typePriority = map[bwtypes.BuildingType]int{
	bwtypes.BldSawmill: 0,
	bwtypes.BldQuarry:  1,

	bwtypes.BldWoodcutter: 2, bwtypes.BldForester: 2, bwtypes.BldWell: 2, bwtypes.BldFarm: 2,
	bwtypes.BldFisher: 2, bwtypes.BldHunter: 2, bwtypes.BldCharburner: 2,
	bwtypes.BldMill: 2, bwtypes.BldBakery: 2, bwtypes.BldPigFarm: 2, bwtypes.BldSlaughterhouse: 2,
	bwtypes.BldBrewery: 2, bwtypes.BldDonkeyBreeder: 2, bwtypes.BldIronSmelter: 2, bwtypes.BldArmory: 2,
	bwtypes.BldMetalworks: 2, bwtypes.BldMint: 2,

	bwtypes.BldBarracks: 3, bwtypes.BldGuardhouse: 3, bwtypes.BldWatchtower: 3, bwtypes.BldFortress: 3,

	bwtypes.BldGraniteMine: 4, bwtypes.BldCoalMine: 4, bwtypes.BldIronMine: 4, bwtypes.BldGoldMine: 4,
}

func priorityOf(t bwtypes.BuildingType) int {
	if p, ok := typePriority[t]; ok {
		return p
	}
	return 2
}

// Connector issues the road connection for a freshly placed building
// (roadmanager.Manager satisfies this through an adapter in the
// scheduler).
type Connector interface {
	Connect(b *planningworld.Building, anchorFlag hexgrid.Point) bool
}

// World is the subset of planningworld.World the planner mutates.
type World interface {
	Construct(b *planningworld.Building, p hexgrid.Point) error
	Deconstruct(b *planningworld.Building)
	EffectiveQuality(p hexgrid.Point) bwtypes.BuildingQuality
}

// Planner maintains per-anchor FIFOs and the current batch.
type Planner struct {
	log     *zap.Logger
	world   World
	grid    hexgrid.Grid
	queues  map[hexgrid.Point][]request
	batch   []request
	batchAt hexgrid.Point

	// blacklist holds building types that failed placement until a
	// BQ-change notification clears them (spec §4.8 step: Place).
	blacklist map[bwtypes.BuildingType]bool

	// rng breaks ties between equally-scored candidates; nil falls back
	// to first-seen-wins, which is deterministic but positionally biased.
	rng *detrng.Source
}

// SetRNG installs the deterministic source used to break equally-scored
// placement ties for this tick (spec §10.5); the scheduler re-derives and
// sets a fresh one every decision tick.
func (p *Planner) SetRNG(rng *detrng.Source) {
	p.rng = rng
}

// New constructs a building planner.
func New(grid hexgrid.Grid, world World, log *zap.Logger) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{
		log: log, world: world, grid: grid,
		queues:    make(map[hexgrid.Point][]request),
		blacklist: make(map[bwtypes.BuildingType]bool),
	}
}

// Request appends building to the queue for anchor. Military buildings
// must be requested with a fixed point since the scorer cannot rate them
// (spec §4.8/§4.9).
func (p *Planner) Request(b *planningworld.Building, anchor hexgrid.Point) {
	p.queues[anchor] = append(p.queues[anchor], request{building: b, fixed: false})
}

// RequestFixed appends a fixed-position building request, used by the
// expansion planner for military buildings.
func (p *Planner) RequestFixed(b *planningworld.Building, anchor, point hexgrid.Point) {
	p.queues[anchor] = append(p.queues[anchor], request{building: b, fixed: true, point: point})
}

// OnBQChanged clears the blacklist, since a changed building quality may
// make a previously-illegal type placeable again.
func (p *Planner) OnBQChanged() {
	p.blacklist = make(map[bwtypes.BuildingType]bool)
}

// Tick runs one decision-tick pass: if the current batch is empty, pops
// the next non-empty anchor queue; sorts it; places everything in it;
// clears the batch (spec §4.8).
func (p *Planner) Tick(enumFor func(anchor hexgrid.Point) *buildloc.Enumerator, score func(t bwtypes.BuildingType, pt hexgrid.Point) []float64, connect Connector) {
	if len(p.batch) == 0 {
		if !p.popNextAnchor() {
			return
		}
	}

	p.sortBatch()

	enum := enumFor(p.batchAt)
	for _, r := range p.batch {
		p.place(r, enum, score, connect)
	}
	p.batch = nil
}

func (p *Planner) popNextAnchor() bool {
	for anchor, q := range p.queues {
		if len(q) == 0 {
			continue
		}
		p.batch = q
		p.batchAt = anchor
		delete(p.queues, anchor)
		return true
	}
	return false
}

func (p *Planner) sortBatch() {
	// Stable sort by: fixed-position first, then grouped (any group id)
	// before ungrouped, then type priority table. Whether a group is
	// already partly placed, and adjacency between group-mates, play no
	// part in the order. Implemented as an insertion sort for clarity
	// over the small batch sizes a single anchor's queue realistically
	// accumulates per tick.
	for i := 1; i < len(p.batch); i++ {
		j := i
		for j > 0 && p.less(p.batch[j], p.batch[j-1]) {
			p.batch[j], p.batch[j-1] = p.batch[j-1], p.batch[j]
			j--
		}
	}
}

func (p *Planner) less(a, b request) bool {
	if a.fixed != b.fixed {
		return a.fixed
	}
	aGrouped := a.building.Group != planningworld.InvalidGroupID
	bGrouped := b.building.Group != planningworld.InvalidGroupID
	if aGrouped != bGrouped {
		return aGrouped
	}
	return priorityOf(a.building.Type) < priorityOf(b.building.Type)
}

func (p *Planner) place(r request, enum *buildloc.Enumerator, score func(bwtypes.BuildingType, hexgrid.Point) []float64, connect Connector) {
	t := r.building.Type
	if p.blacklist[t] {
		return
	}

	var chosen hexgrid.Point
	found := false

	if r.fixed {
		if p.world.EffectiveQuality(r.point).Covers(t.Size()) {
			chosen, found = r.point, true
		}
	} else {
		best := -1.0
		for _, candidate := range enum.Get(t.Size()) {
			v := score(t, candidate)
			if len(v) == 0 {
				continue
			}
			hv := scoring.Hypervolume(v)
			tie := found && hv == best && p.rng != nil && p.rng.Bool(0.5)
			if hv > best || tie {
				best = hv
				chosen = candidate
				found = true
			}
		}
	}

	if !found {
		p.blacklist[t] = true
		p.log.Debug("no placement found, blacklisting type", zap.String("type", t.String()))
		return
	}

	if err := p.world.Construct(r.building, chosen); err != nil {
		p.log.Error("construct failed", zap.Error(err))
		return
	}
	radius := 3
	if t.Size() == bwtypes.BQCastle {
		radius = 4
	}
	enum.Update(chosen, radius)

	if connect != nil && !connect.Connect(r.building, p.batchAt) {
		p.world.Deconstruct(r.building)
	}
}

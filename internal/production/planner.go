package production

import (
	"go.uber.org/zap"

	"hearthold/internal/bwtypes"
	"hearthold/internal/hexgrid"
	"hearthold/internal/planningworld"
)

// Region is one road network worth of production, anchored at its
// storehouse/headquarters/harbour flag.
type Region struct {
	NetworkID int
	Anchor    hexgrid.Point
	IsMain    bool
}

// Requester is the subset of the building planner's API the production
// planner needs (spec §4.8's Request).
type Requester interface {
	Request(b *planningworld.Building, anchor hexgrid.Point)
}

// ToolAvailability answers whether a region can obtain the tool/worker a
// proposed building type needs (spec §4.10's metalworks pre-check,
// delegated to internal/managers.MetalworksManager in the full agent).
type ToolAvailability interface {
	JobOrToolOrQueueSpace(t bwtypes.BuildingType) bool
}

// Planner balances goods flow per region and requests new production
// buildings, following the fixed priority order of spec §4.10.
type Planner struct {
	world *planningworld.World
	log   *zap.Logger

	maxConcurrentBuilders func() int
	currentlyBuilding     func() int
	currentlyRequested    func() int
}

// New constructs a production planner over world.
func New(world *planningworld.World, maxConcurrentBuilders, currentlyBuilding, currentlyRequested func() int, log *zap.Logger) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{
		world: world, log: log,
		maxConcurrentBuilders: maxConcurrentBuilders,
		currentlyBuilding:     currentlyBuilding,
		currentlyRequested:    currentlyRequested,
	}
}

// balance tallies a region's per-good produced/consumed rate from its
// finished and under-construction production buildings.
type balance struct {
	produced, consumed map[bwtypes.GoodType]int
	countByType        map[bwtypes.BuildingType]int
}

func newBalance() *balance {
	return &balance{produced: map[bwtypes.GoodType]int{}, consumed: map[bwtypes.GoodType]int{}, countByType: map[bwtypes.BuildingType]int{}}
}

func (p *Planner) tally(region Region, inNetwork func(*planningworld.Building) bool) *balance {
	b := newBalance()
	for _, bld := range p.world.Buildings() {
		if !inNetwork(bld) {
			continue
		}
		if bld.State != bwtypes.BuildingFinished && bld.State != bwtypes.BuildingUnderConstruction {
			continue
		}
		b.countByType[bld.Type]++
		stats, known := Table[bld.Type]
		if !known || stats.Speed == 0 {
			continue
		}
		b.produced[stats.Produces] += stats.Speed
		for _, c := range stats.Consumes {
			b.consumed[c] += stats.Speed
		}
	}
	return b
}

func (p *Planner) overhead(b *balance, g bwtypes.GoodType) int {
	return b.produced[g] - b.consumed[g]
}

// budget returns how many more requests this tick is allowed to make.
func (p *Planner) budget() int {
	n := p.maxConcurrentBuilders() - p.currentlyBuilding() - p.currentlyRequested()
	if n < 0 {
		return 0
	}
	return n
}

// Plan runs one production-planning pass over region, issuing requests
// to requester in the fixed priority order of spec §4.10, honouring the
// concurrent-builder budget and the tool-availability gate.
func (p *Planner) Plan(region Region, inNetwork func(*planningworld.Building) bool, tools ToolAvailability, requester Requester) {
	remaining := p.budget()
	if remaining <= 0 {
		return
	}

	bal := p.tally(region, inNetwork)
	request := func(t bwtypes.BuildingType, group planningworld.GroupID) bool {
		if remaining <= 0 {
			return false
		}
		if tools != nil && !tools.JobOrToolOrQueueSpace(t) {
			return false
		}
		b := p.world.Create(t, group)
		requester.Request(b, region.Anchor)
		remaining--
		return true
	}

	// 1. Filling partially-placed groups: Plan does not request buildings
	// for the empty slots of existing groups, and its caller does not
	// either; Plan only seeds brand-new groups/singletons from the
	// balance below.

	// 2. Board production.
	sawmills := bal.countByType[bwtypes.BldSawmill]
	militaryCount := p.countMilitary(region, inNetwork)
	if sawmills < 2 || militaryCount > FibonacciThreshold(sawmills) {
		g := p.world.Create(bwtypes.BldSawmill, planningworld.InvalidGroupID)
		if remaining > 0 {
			requester.Request(g, region.Anchor)
			remaining--
		}
	}

	// 3. Stone production.
	stoneProducers := bal.countByType[bwtypes.BldQuarry] + bal.countByType[bwtypes.BldGraniteMine]
	if militaryCount > FibonacciThreshold(stoneProducers) {
		request(bwtypes.BldQuarry, planningworld.InvalidGroupID)
	}

	// 4. Beer.
	if p.overhead(bal, bwtypes.GoodBeer) < 0 {
		request(bwtypes.BldBrewery, planningworld.InvalidGroupID)
	}

	// 5. Tools (main region only).
	if region.IsMain && bal.produced[bwtypes.GoodIron] > 0 && bal.countByType[bwtypes.BldMetalworks] == 0 {
		request(bwtypes.BldMetalworks, planningworld.InvalidGroupID)
	}

	// 6. Coins.
	if p.overhead(bal, bwtypes.GoodGold) > 0 {
		request(bwtypes.BldMint, planningworld.InvalidGroupID)
	}

	// 7. Weapons (main region only).
	if region.IsMain && p.overhead(bal, bwtypes.GoodCoal) > 0 && p.overhead(bal, bwtypes.GoodIronOre) > 0 {
		request(bwtypes.BldIronSmelter, planningworld.InvalidGroupID)
		request(bwtypes.BldArmory, planningworld.InvalidGroupID)
	}

	// 8. Food.
	if p.overhead(bal, bwtypes.GoodGrain) > 0 {
		if bal.countByType[bwtypes.BldBakery] <= bal.countByType[bwtypes.BldSlaughterhouse] {
			request(bwtypes.BldMill, planningworld.InvalidGroupID)
			request(bwtypes.BldBakery, planningworld.InvalidGroupID)
		} else {
			request(bwtypes.BldPigFarm, planningworld.InvalidGroupID)
			request(bwtypes.BldSlaughterhouse, planningworld.InvalidGroupID)
		}
	}

	// 9. Donkey breeder.
	if region.IsMain && bal.countByType[bwtypes.BldDonkeyBreeder] == 0 {
		request(bwtypes.BldDonkeyBreeder, planningworld.InvalidGroupID)
	}

	// 10. Hunters / fishermen handled by caller using resourcemap
	// abundance checks (needs spatial data this package doesn't own).

	// 11. Farms / wells.
	if p.overhead(bal, bwtypes.GoodGrain) <= 0 {
		request(bwtypes.BldFarm, planningworld.InvalidGroupID)
	}
	if p.overhead(bal, bwtypes.GoodWater) <= 0 {
		request(bwtypes.BldWell, planningworld.InvalidGroupID)
	}

	// 12. Mines: cycle through whichever of coal/iron/gold has the worst
	// overproduction deficit.
	worst := bwtypes.GoodCoal
	worstVal := p.overhead(bal, bwtypes.GoodCoal)
	for _, g := range []bwtypes.GoodType{bwtypes.GoodIronOre, bwtypes.GoodGold} {
		if v := p.overhead(bal, g); v < worstVal {
			worst, worstVal = g, v
		}
	}
	if worstVal < 0 {
		switch worst {
		case bwtypes.GoodCoal:
			request(bwtypes.BldCoalMine, planningworld.InvalidGroupID)
		case bwtypes.GoodIronOre:
			request(bwtypes.BldIronMine, planningworld.InvalidGroupID)
		case bwtypes.GoodGold:
			request(bwtypes.BldGoldMine, planningworld.InvalidGroupID)
		}
	}
}

func (p *Planner) countMilitary(region Region, inNetwork func(*planningworld.Building) bool) int {
	n := 0
	for _, bld := range p.world.Buildings() {
		if inNetwork(bld) && bld.Type.IsMilitary() {
			n++
		}
	}
	return n
}

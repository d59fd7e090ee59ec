// Package scheduler owns the agent's top-level tick routine: notification
// fan-out, the fixed recurrent-subsystem order, and the defeat/surrender
// check (spec §4.13). It is the one package that wires every other
// internal package together behind gameiface's engine boundary.
//
// Grounded on the teacher's internal/engine/game.go (the authoritative
// tick loop shape) and strategic_ai.go (StrategyPhase dispatch order),
// with the debug-dump idea carried over from
// original_source/.../Debug.h as Agent.Snapshot().
package scheduler

import (
	"go.uber.org/zap"

	"hearthold/internal/bwtypes"
	"hearthold/internal/buildingplanner"
	"hearthold/internal/buildloc"
	"hearthold/internal/config"
	"hearthold/internal/detrng"
	"hearthold/internal/expansion"
	"hearthold/internal/gameiface"
	"hearthold/internal/hexgrid"
	"hearthold/internal/managers"
	"hearthold/internal/planningworld"
	"hearthold/internal/production"
	"hearthold/internal/resourcemap"
	"hearthold/internal/roadmanager"
	"hearthold/internal/roadnetwork"
	"hearthold/internal/scoring"
)

// Agent is one player's autonomous opponent. A single Agent instance is
// owned by exactly one player id and ticked once per engine tick.
type Agent struct {
	playerID int
	settings config.Settings
	log      *zap.Logger

	engine gameiface.EngineView
	sink   gameiface.CommandSink

	grid      hexgrid.Grid
	world     *planningworld.World
	roadnet   *roadnetwork.Tracker
	resources *resourcemap.Map
	islands   *buildloc.IslandTracker

	enumerators map[hexgrid.Point]*buildloc.Enumerator

	buildings  *buildingplanner.Planner
	roads      *roadmanager.Manager
	expander   *expansion.Planner
	production *production.Planner
	metalworks *managers.MetalworksManager
	coin       *managers.CoinManager
	attack     *managers.AttackManager
	catapult   *managers.CatapultManager
	storehouse *managers.StorehouseManager

	tick            uint64
	defeated        bool
	waitingForSync  bool
	pending         []gameiface.Notification
}

// New wires every planner package together for one player. engine/sink
// are the host's implementation of the agent<->engine boundary (spec §6).
func New(playerID int, grid hexgrid.Grid, engine gameiface.EngineView, sink gameiface.CommandSink, settings config.Settings, log *zap.Logger) *Agent {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Agent{
		playerID: playerID, settings: settings, log: log,
		engine: engine, sink: sink, grid: grid,
		enumerators: make(map[hexgrid.Point]*buildloc.Enumerator),
		metalworks:  managers.NewMetalworksManager(log),
		coin:        managers.NewCoinManager(),
		attack:      managers.NewAttackManager(),
		catapult:    managers.NewCatapultManager(),
		storehouse:  managers.NewStorehouseManager(),
	}

	a.world = planningworld.New(grid, sink, a, nil, log)
	a.roadnet = roadnetwork.New(grid, a.world)
	a.resources = resourcemap.New(grid, engineTerrain{engine})
	a.islands = buildloc.NewIslandTracker(grid, engineTerrain{engine})
	a.roads = roadmanager.New(grid, a.world)
	a.buildings = buildingplanner.New(grid, a.world, log)
	a.expander = expansion.New(&expansionWorld{a})
	a.production = production.New(a.world, a.budgetFn, a.buildingSitesFn, a.requestedFn, log)

	return a
}

// BaseQuality satisfies planningworld.BQSource by asking the engine for
// the point's terrain-reported BQ (planningworld folds in planning
// overlays on top of this).
func (a *Agent) BaseQuality(p hexgrid.Point) bwtypes.BuildingQuality {
	return a.engine.Terrain(p).BQ
}

func (a *Agent) budgetFn() int      { return a.settings.MaxConcurrentBuilders }
func (a *Agent) buildingSitesFn() int {
	n := 0
	for _, b := range a.world.Buildings() {
		if b.State == bwtypes.BuildingUnderConstruction {
			n++
		}
	}
	return n
}
func (a *Agent) requestedFn() int {
	n := 0
	for _, b := range a.world.Buildings() {
		if b.State == bwtypes.BuildingPlanningRequest {
			n++
		}
	}
	return n
}

// Notify queues a single engine notification for delivery at the start
// of the next Tick (spec §5's "events delivered before recurrents run").
func (a *Agent) Notify(n gameiface.Notification) {
	a.pending = append(a.pending, n)
}

// Tick advances the agent by one engine tick, applying the ordering
// rules of spec §4.13/§5.
func (a *Agent) Tick() {
	if a.defeated {
		return
	}

	a.tick = a.engine.Tick()
	a.drainNotifications()

	if a.waitingForSync {
		a.waitingForSync = false
	}

	if int(a.tick)%a.settings.DecisionTickInterval == a.settings.PlayerOffset%a.settings.DecisionTickInterval {
		a.runRecurrents()
	}

	if len(a.engine.Headquarters(a.playerID)) == 0 && !a.hasAnyStorehouse() {
		a.sink.Surrender()
		a.defeated = true
	}
}

func (a *Agent) hasAnyStorehouse() bool {
	for _, b := range a.world.Buildings() {
		if (b.Type == bwtypes.BldStorehouse || b.Type == bwtypes.BldHeadquarters) && b.State == bwtypes.BuildingFinished {
			return true
		}
	}
	return false
}

func (a *Agent) drainNotifications() {
	for _, n := range a.pending {
		switch note := n.(type) {
		case gameiface.BuildingNote:
			a.onBuildingNote(note)
		case gameiface.RoadNote:
			a.onRoadNote(note)
		case gameiface.FlagNote:
			a.onFlagNote(note)
		case gameiface.ToolNote:
			if note.Subtype == gameiface.ToolProduced {
				a.metalworks.OnToolProduced(note.Tool)
			}
		case gameiface.NodeNote:
			if note.Subtype == gameiface.NodeBQChanged {
				a.buildings.OnBQChanged()
			}
		case gameiface.ResourceNote:
			a.resources.MarkUnderground(note.Point, bwtypes.ResourceIron)
		case gameiface.ExpeditionNote:
			// No-op: expedition/ship handling is out of this agent's scope
			// until a §11-style supplement names it explicitly.
		}
	}
	a.pending = nil
}

func (a *Agent) onBuildingNote(n gameiface.BuildingNote) {
	if n.Subtype == gameiface.BuildingDestroyed {
		for _, b := range a.world.Buildings() {
			if b.HasPoint() && b.Point == n.Point {
				if b.Type == bwtypes.BldMetalworks {
					a.metalworks.OnMetalworksDestroyed()
				}
				a.world.Remove(b.ID)
				return
			}
		}
	}
}

func (a *Agent) onRoadNote(n gameiface.RoadNote) {
	if n.Subtype == gameiface.RoadDestroyed && len(n.Dirs) > 0 {
		a.roadnet.OnFlagStateChanged(n.Start, bwtypes.FlagRequested)
	}
}

func (a *Agent) onFlagNote(n gameiface.FlagNote) {
	switch n.Subtype {
	case gameiface.FlagConstructed:
		a.roadnet.OnFlagStateChanged(n.Point, bwtypes.FlagRequested)
	case gameiface.FlagDestroyed:
		a.roadnet.OnFlagStateChanged(n.Point, bwtypes.FlagDoesNotExist)
	}
}

// RoadPossibleOrPresent satisfies buildloc.RoadReachSource: a point is
// reachable for building-site purposes if a road already touches it or
// its effective quality permits one to be proposed there.
func (a *Agent) RoadPossibleOrPresent(p hexgrid.Point) bool {
	return a.world.EffectiveQuality(p) > bwtypes.BQNone
}

// syncEnumerators ensures every current anchor has a build-location
// enumerator, creating and seeding one for anchors discovered since the
// last recurrent pass (spec §4.4).
func (a *Agent) syncEnumerators() {
	for _, anchor := range a.mainAnchors() {
		if _, ok := a.enumerators[anchor]; ok {
			continue
		}
		enum := buildloc.New(a.grid, a.world, a)
		enum.Calculate(anchor)
		a.enumerators[anchor] = enum
	}
}

// runRecurrents runs every recurrent subsystem in the fixed order of
// spec §4.13. If any emits a command, the agent waits for the next sync
// frame before running again (tracked via waitingForSync).
func (a *Agent) runRecurrents() {
	issued := false
	a.syncEnumerators()
	a.buildings.SetRNG(detrng.New(a.tick, "buildingplanner", a.playerID))

	for anchor := range a.enumerators {
		enum := a.enumerators[anchor]
		score := func(t bwtypes.BuildingType, pt hexgrid.Point) []float64 {
			return scoring.Score(&scoringWorld{a, anchor}, t, pt)
		}
		connector := &connectAdapter{a, anchor}
		before := a.requestedFn()
		a.buildings.Tick(func(hexgrid.Point) *buildloc.Enumerator { return enum }, score, connector)
		if a.requestedFn() != before {
			issued = true
		}
	}

	for _, anchor := range a.mainAnchors() {
		enum, ok := a.enumerators[anchor]
		if !ok {
			continue
		}
		candidates := enum.Get(bwtypes.BQHut)
		if a.expander.Expand(anchor, candidates, a.buildings) {
			issued = true
		}
	}

	tools := &toolAvailabilityAdapter{a.metalworks}
	for _, region := range a.regions() {
		a.production.Plan(region, a.inRegion(region), tools, a.buildings)
	}

	for anchor := range a.enumerators {
		at := anchor
		exists, idle := a.metalworksState(at)
		a.metalworks.Tick(at, exists, idle, a.sink)
	}

	a.attack.Tick(a.enemyTargets(), a.availableAttackers(), a.coin.HasAcademy(), a.sink)
	a.coin.Tick(a.promotableAtAcademy(), a.maxRankAtAcademy(), a.sink)

	hostiles := a.enemyMilitaryPoints()
	for _, anchor := range a.mainAnchors() {
		enum, ok := a.enumerators[anchor]
		if !ok {
			continue
		}
		border := enum.Get(bwtypes.BQHut)
		if a.catapult.Tick(anchor, border, hostiles, a.grid, a.hasExcessStone(), a.buildings, a.createCatapult) {
			issued = true
		}
		if a.storehouse.Tick(a.grid, anchor, a.farthestProductionFrom(anchor), a.militarySitesUnderConstruction(), a.buildings, a.createStorehouse) {
			issued = true
		}
	}

	if issued {
		a.waitingForSync = true
	}
}

// mainAnchors returns every storehouse/headquarters flag point known to
// the planning world, used as per-anchor build-location roots.
func (a *Agent) mainAnchors() []hexgrid.Point {
	var out []hexgrid.Point
	for _, b := range a.world.Buildings() {
		if !b.HasPoint() {
			continue
		}
		if b.Type == bwtypes.BldHeadquarters || b.Type == bwtypes.BldStorehouse {
			out = append(out, a.world.FlagPoint(b.Point))
		}
	}
	return out
}

func (a *Agent) regions() []production.Region {
	var out []production.Region
	seen := make(map[int]bool)
	for _, anchor := range a.mainAnchors() {
		id := a.roadnet.Get(anchor)
		if id == roadnetwork.InvalidID || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, production.Region{NetworkID: id, Anchor: anchor, IsMain: len(out) == 0})
	}
	return out
}

func (a *Agent) inRegion(region production.Region) func(*planningworld.Building) bool {
	return func(b *planningworld.Building) bool {
		if !b.HasPoint() {
			return false
		}
		return a.roadnet.Get(a.world.FlagPoint(b.Point)) == region.NetworkID
	}
}

func (a *Agent) metalworksState(anchor hexgrid.Point) (exists, idle bool) {
	for _, b := range a.world.Buildings() {
		if b.Type == bwtypes.BldMetalworks && b.State == bwtypes.BuildingFinished {
			return true, true
		}
	}
	return false, false
}

// maxScannedPlayers bounds the enemy-player scan; the engine reports no
// explicit player count, and real maps rarely seat more than this.
const maxScannedPlayers = 8

// attackScanRadius is how far past each anchor the engine is asked for
// in-range enemy points when building the attack manager's target list.
const attackScanRadius = 12

func (a *Agent) enemyPlayers() []int {
	var out []int
	for p := 0; p < maxScannedPlayers; p++ {
		if p != a.playerID && a.engine.IsEnemyOf(a.playerID, p) {
			out = append(out, p)
		}
	}
	return out
}

// enemyMilitaryPoints lists every enemy military building the engine
// currently reports, across every known enemy player.
func (a *Agent) enemyMilitaryPoints() []hexgrid.Point {
	var out []hexgrid.Point
	for _, p := range a.enemyPlayers() {
		out = append(out, a.engine.MilitaryBuildings(p)...)
	}
	return out
}

func containsPoint(pts []hexgrid.Point, p hexgrid.Point) bool {
	for _, c := range pts {
		if c == p {
			return true
		}
	}
	return false
}

// scannedEnemyTypes are the building types enemyTargets checks for at
// each in-range point to populate managers.EnemyBuilding.Type/HasCatapult,
// the types the attack manager's rank function distinguishes beyond
// headquarters/harbour.
var scannedEnemyTypes = []bwtypes.BuildingType{
	bwtypes.BldFortress, bwtypes.BldWatchtower, bwtypes.BldGuardhouse, bwtypes.BldBarracks,
	bwtypes.BldGraniteMine, bwtypes.BldCoalMine, bwtypes.BldIronMine, bwtypes.BldGoldMine,
}

// enemyTargets lists every enemy building within attack range of one of
// the agent's anchors, ranked later by managers.AttackManager (spec
// §4.12).
func (a *Agent) enemyTargets() []managers.EnemyBuilding {
	var out []managers.EnemyBuilding
	for _, anchor := range a.mainAnchors() {
		for _, pt := range a.engine.InAttackRange(anchor, attackScanRadius) {
			owner, ok := a.engine.TerritoryOwner(pt)
			if !ok || !a.engine.IsEnemyOf(a.playerID, owner) {
				continue
			}
			eb := managers.EnemyBuilding{
				Point:          pt,
				IsHeadquarters: containsPoint(a.engine.Headquarters(owner), pt),
				HasCatapult:    containsPoint(a.engine.BuildingsOfType(owner, bwtypes.BldCatapult), pt),
			}
			for _, t := range scannedEnemyTypes {
				if containsPoint(a.engine.BuildingsOfType(owner, t), pt) {
					eb.Type = t
					break
				}
			}
			out = append(out, eb)
		}
	}
	return out
}

// minGarrison is how many soldiers a military building always keeps back
// when the attack manager tallies how many are free to dispatch.
const minGarrison = 1

// availableAttackers sums every garrison's soldiers beyond minGarrison
// across the agent's finished military buildings.
func (a *Agent) availableAttackers() int {
	n := 0
	for _, b := range a.world.Buildings() {
		if !b.HasPoint() || !b.Type.IsMilitary() || b.State != bwtypes.BuildingFinished {
			continue
		}
		if c := a.engine.FiguresAt(b.Point) - minGarrison; c > 0 {
			n += c
		}
	}
	return n
}

// promotableAtAcademy and maxRankAtAcademy stay at zero until the agent
// designates one of its fortresses as the promotion academy via
// CoinManager.SetAcademy — nothing in the current recurrent order picks
// that fortress out, so CoinManager.Tick's own HasAcademy guard keeps
// this a safe no-op rather than an acted-upon zero.
func (a *Agent) promotableAtAcademy() int { return 0 }
func (a *Agent) maxRankAtAcademy() int    { return 0 }

// hasExcessStone reports whether the agent has at least two finished
// stone producers, the catapult manager's gate for spending stone on a
// non-essential siege building.
func (a *Agent) hasExcessStone() bool {
	producers := 0
	for _, b := range a.world.Buildings() {
		if b.State == bwtypes.BuildingFinished && (b.Type == bwtypes.BldQuarry || b.Type == bwtypes.BldGraniteMine) {
			producers++
		}
	}
	return producers >= 2
}

// createCatapult allocates a fresh unplaced catapult building for the
// catapult manager to request.
func (a *Agent) createCatapult() *planningworld.Building {
	return a.world.Create(bwtypes.BldCatapult, planningworld.InvalidGroupID)
}

// createStorehouse allocates a fresh unplaced storehouse building for the
// storehouse manager to request.
func (a *Agent) createStorehouse() *planningworld.Building {
	return a.world.Create(bwtypes.BldStorehouse, planningworld.InvalidGroupID)
}

// farthestProductionFrom finds the agent's own finished production
// building farthest from anchor, within anchor's road network.
func (a *Agent) farthestProductionFrom(anchor hexgrid.Point) hexgrid.Point {
	network := a.roadnet.Get(anchor)
	far := anchor
	best := -1
	for _, b := range a.world.Buildings() {
		if !b.HasPoint() || b.State != bwtypes.BuildingFinished || b.Type.IsMilitary() {
			continue
		}
		if a.roadnet.Get(a.world.FlagPoint(b.Point)) != network {
			continue
		}
		if d := a.grid.Distance(anchor, b.Point); d > best {
			best, far = d, b.Point
		}
	}
	return far
}

// militarySitesUnderConstruction counts the agent's own military
// buildings not yet finished, the storehouse manager's throttle input.
func (a *Agent) militarySitesUnderConstruction() int {
	n := 0
	for _, b := range a.world.Buildings() {
		if b.Type.IsMilitary() && b.State == bwtypes.BuildingUnderConstruction {
			n++
		}
	}
	return n
}

// Snapshot dumps the agent's internal planning state for tests and the
// process's periodic structured log line — the textual equivalent of the
// original's visual debug overlay (spec §11).
type Snapshot struct {
	Tick              uint64
	Defeated          bool
	BuildingCount     int
	EnumeratorAnchors int
}

// Snapshot returns the agent's current debug snapshot.
func (a *Agent) Snapshot() Snapshot {
	return Snapshot{
		Tick:              a.tick,
		Defeated:          a.defeated,
		BuildingCount:     len(a.world.Buildings()),
		EnumeratorAnchors: len(a.enumerators),
	}
}

package scheduler

import (
	"hearthold/internal/bwtypes"
	"hearthold/internal/gameiface"
	"hearthold/internal/hexgrid"
	"hearthold/internal/managers"
	"hearthold/internal/planningworld"
)

// engineTerrain adapts gameiface.EngineView to resourcemap.Terrain and
// buildloc.Walkable, the two small read-only surfaces those packages need
// from the host engine.
type engineTerrain struct {
	engine gameiface.EngineView
}

func (e engineTerrain) Visible(p hexgrid.Point) bool { return e.engine.Visible(p) }
func (e engineTerrain) ResourceAmount(p hexgrid.Point, r bwtypes.ResourceType) int {
	return e.engine.Terrain(p).Resources[r]
}
func (e engineTerrain) Mineable(p hexgrid.Point) bool { return e.engine.Terrain(p).Mineable }
func (e engineTerrain) Walkable(p hexgrid.Point) bool  { return e.engine.Terrain(p).Walkable }

// connectAdapter adapts roadmanager.Manager to buildingplanner.Connector:
// it resolves a freshly-placed building's destination flag via
// planningworld.World.GoodsDestination and issues the road connection.
type connectAdapter struct {
	agent  *Agent
	anchor hexgrid.Point
}

func (c *connectAdapter) Connect(b *planningworld.Building, anchorFlag hexgrid.Point) bool {
	if !b.HasPoint() {
		return false
	}
	fromFlag := c.agent.world.FlagPoint(b.Point)

	dest := c.agent.world.GoodsDestination(b, c.agent.roadnet.Get(anchorFlag), c.agent.nearestOfType)
	destFlag := anchorFlag
	if dest != nil && dest.HasPoint() {
		destFlag = c.agent.world.FlagPoint(dest.Point)
	}

	_, ok := c.agent.roads.Connect(b.ID, fromFlag, destFlag, 0, nil)
	return ok
}

// nearestOfType finds the closest finished building of any candidate type
// within the given road network, for GoodsDestination's spatial fallback.
func (a *Agent) nearestOfType(types []bwtypes.BuildingType, networkID int, from hexgrid.Point) *planningworld.Building {
	var best *planningworld.Building
	bestDist := -1
	for _, cand := range a.world.Buildings() {
		if cand.State != bwtypes.BuildingFinished || !cand.HasPoint() {
			continue
		}
		if !containsType(types, cand.Type) {
			continue
		}
		if a.roadnet.Get(a.world.FlagPoint(cand.Point)) != networkID {
			continue
		}
		d := a.grid.Distance(from, cand.Point)
		if best == nil || d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}

func containsType(types []bwtypes.BuildingType, t bwtypes.BuildingType) bool {
	for _, c := range types {
		if c == t {
			return true
		}
	}
	return false
}

// scoringWorld adapts the agent's owned state to scoring.World for a
// single anchor's build-location search.
type scoringWorld struct {
	agent  *Agent
	anchor hexgrid.Point
}

func (s *scoringWorld) Grid() hexgrid.Grid { return s.agent.grid }

func (s *scoringWorld) NearestGroupMemberDistance(p hexgrid.Point, types []bwtypes.BuildingType) (int, bool) {
	best := -1
	for _, b := range s.agent.world.Buildings() {
		if !b.HasPoint() || !containsType(types, b.Type) {
			continue
		}
		d := s.agent.grid.Distance(p, b.Point)
		if best == -1 || d < best {
			best = d
		}
	}
	return best, best != -1
}

func (s *scoringWorld) NearestSameTypeDistance(p hexgrid.Point, t bwtypes.BuildingType) (int, bool) {
	return s.NearestGroupMemberDistance(p, []bwtypes.BuildingType{t})
}

func (s *scoringWorld) NearestFarmOrCharburnerDistance(p hexgrid.Point) (int, bool) {
	return s.NearestGroupMemberDistance(p, []bwtypes.BuildingType{bwtypes.BldFarm, bwtypes.BldCharburner})
}

var allDirections = []hexgrid.Direction{
	hexgrid.West, hexgrid.NorthWest, hexgrid.NorthEast,
	hexgrid.East, hexgrid.SouthEast, hexgrid.SouthWest,
}

func (s *scoringWorld) OpenFlagNeighborCount(p hexgrid.Point) int {
	n := 0
	for _, d := range allDirections {
		np := s.agent.grid.Neighbor(p, d)
		if s.agent.world.HasFlag(np) {
			n++
		}
	}
	return n
}

func (s *scoringWorld) NonVisibleWithin(p hexgrid.Point, radius int) int {
	n := 0
	s.agent.grid.FloodFill(p, func(hexgrid.Point, hexgrid.Direction) bool { return true }, func(pt hexgrid.Point) {
		if s.agent.grid.Distance(p, pt) <= radius && !s.agent.engine.Visible(pt) {
			n++
		}
	})
	return n
}

func (s *scoringWorld) ResourceAbundance(p hexgrid.Point, t bwtypes.BuildingType) int {
	r, ok := resourceFor(t)
	if !ok {
		return 0
	}
	return s.agent.resources.GetReachable(p, r, true, true, false)
}

func (s *scoringWorld) DistanceToGoodsDestination(p hexgrid.Point, t bwtypes.BuildingType) (int, bool) {
	dest := s.agent.nearestOfType(destinationCandidatesFor(t), s.agent.roadnet.Get(s.anchor), p)
	if dest == nil {
		return 0, false
	}
	return s.agent.grid.Distance(p, dest.Point), true
}

func (s *scoringWorld) BuildLocationSumDelta(p hexgrid.Point, size bwtypes.BuildingQuality) int {
	enum, ok := s.agent.enumerators[s.anchor]
	if !ok {
		return 0
	}
	before := enum.GetSum()
	enum.Update(p, 2)
	return enum.GetSum() - before
}

// resourceFor names the primary resource a production building type
// consumes, for ResourceAbundance scoring.
func resourceFor(t bwtypes.BuildingType) (bwtypes.ResourceType, bool) {
	switch t {
	case bwtypes.BldWoodcutter, bwtypes.BldForester:
		return bwtypes.ResourceWood, true
	case bwtypes.BldGraniteMine:
		return bwtypes.ResourceGranite, true
	case bwtypes.BldQuarry:
		return bwtypes.ResourceStone, true
	case bwtypes.BldCoalMine:
		return bwtypes.ResourceCoal, true
	case bwtypes.BldIronMine:
		return bwtypes.ResourceIron, true
	case bwtypes.BldGoldMine:
		return bwtypes.ResourceGold, true
	case bwtypes.BldFisher:
		return bwtypes.ResourceFish, true
	case bwtypes.BldHunter:
		return bwtypes.ResourceHuntableAnimals, true
	default:
		return 0, false
	}
}

// destinationCandidatesFor is a scoring-only shortcut mirroring a few key
// entries of planningworld's destination table, enough to let the scorer
// favour points nearer a building's eventual output consumer without
// needing a placed Building to call GoodsDestination itself.
func destinationCandidatesFor(t bwtypes.BuildingType) []bwtypes.BuildingType {
	switch t {
	case bwtypes.BldWoodcutter, bwtypes.BldForester:
		return []bwtypes.BuildingType{bwtypes.BldSawmill}
	case bwtypes.BldIronMine:
		return []bwtypes.BuildingType{bwtypes.BldIronSmelter}
	case bwtypes.BldCoalMine:
		return []bwtypes.BuildingType{bwtypes.BldIronSmelter, bwtypes.BldMint}
	case bwtypes.BldGoldMine:
		return []bwtypes.BuildingType{bwtypes.BldMint}
	case bwtypes.BldMill:
		return []bwtypes.BuildingType{bwtypes.BldBakery}
	case bwtypes.BldPigFarm:
		return []bwtypes.BuildingType{bwtypes.BldSlaughterhouse}
	default:
		return []bwtypes.BuildingType{bwtypes.BldStorehouse, bwtypes.BldHeadquarters}
	}
}

// toolAvailabilityAdapter adapts managers.MetalworksManager's job-name FIFO
// to production.ToolAvailability's building-type query, via a small
// per-type required-job table (spec §4.11's "tool availability gate").
type toolAvailabilityAdapter struct {
	metalworks *managers.MetalworksManager
}

// jobFor names the worker job a production building type needs to
// staff, for the metalworks queue-space pre-check.
func jobFor(t bwtypes.BuildingType) (string, bool) {
	switch t {
	case bwtypes.BldIronSmelter:
		return "smelter", true
	case bwtypes.BldArmory:
		return "armorer", true
	case bwtypes.BldMint:
		return "minter", true
	case bwtypes.BldMetalworks:
		return "metalworker", true
	default:
		return "", false
	}
}

func (t *toolAvailabilityAdapter) JobOrToolOrQueueSpace(bt bwtypes.BuildingType) bool {
	job, ok := jobFor(bt)
	if !ok {
		return true
	}
	return t.metalworks.JobOrToolOrQueueSpace(job, nil)
}

// expansionWorld adapts the agent's owned state to expansion.World.
type expansionWorld struct {
	agent *Agent
}

func (e *expansionWorld) Grid() hexgrid.Grid { return e.agent.grid }
func (e *expansionWorld) EffectiveQuality(p hexgrid.Point) bwtypes.BuildingQuality {
	return e.agent.world.EffectiveQuality(p)
}
func (e *expansionWorld) KnownMilitary() []planningworld.KnownMilitary {
	var out []planningworld.KnownMilitary
	for _, b := range e.agent.world.Buildings() {
		if b.HasPoint() && b.Type.IsMilitary() && b.State == bwtypes.BuildingFinished {
			out = append(out, planningworld.KnownMilitary{Point: b.Point, Type: b.Type})
		}
	}
	return out
}
// hostileScanTypes are the building types HostileBuildingAt checks for,
// enough for the expansion planner's capture-destroys-a-building scoring
// term without scanning every type the engine knows about.
var hostileScanTypes = []bwtypes.BuildingType{
	bwtypes.BldFortress, bwtypes.BldWatchtower, bwtypes.BldGuardhouse, bwtypes.BldBarracks,
	bwtypes.BldGraniteMine, bwtypes.BldCoalMine, bwtypes.BldIronMine, bwtypes.BldGoldMine,
}

func (e *expansionWorld) HostileBuildingAt(p hexgrid.Point) (bwtypes.BuildingType, bool) {
	owner, ok := e.agent.engine.TerritoryOwner(p)
	if !ok || !e.agent.engine.IsEnemyOf(e.agent.playerID, owner) {
		return 0, false
	}
	for _, t := range hostileScanTypes {
		if containsPoint(e.agent.engine.BuildingsOfType(owner, t), p) {
			return t, true
		}
	}
	return 0, false
}

func (e *expansionWorld) EnemySoldiersInRange(p hexgrid.Point, radius int) int {
	n := 0
	for _, h := range e.agent.enemyMilitaryPoints() {
		if e.agent.grid.Distance(p, h) <= radius {
			n += e.agent.engine.FiguresAt(h)
		}
	}
	return n
}

func (e *expansionWorld) EnemyMilitaryNear(p hexgrid.Point, threshold int) bool {
	for _, h := range e.agent.enemyMilitaryPoints() {
		if e.agent.grid.Distance(p, h) <= threshold {
			return true
		}
	}
	return false
}

func (e *expansionWorld) EnemyCatapultsInRange(p hexgrid.Point, radius int) []hexgrid.Point {
	var out []hexgrid.Point
	for _, pl := range e.agent.enemyPlayers() {
		for _, c := range e.agent.engine.BuildingsOfType(pl, bwtypes.BldCatapult) {
			if e.agent.grid.Distance(p, c) <= radius {
				out = append(out, c)
			}
		}
	}
	return out
}

func (e *expansionWorld) SoldierCount(p hexgrid.Point) int { return e.agent.engine.FiguresAt(p) }
func (e *expansionWorld) BuilderAvailable(hexgrid.Point) bool                          { return true }
func (e *expansionWorld) HasBoardsAndStone(hexgrid.Point) bool                         { return true }
func (e *expansionWorld) OrePoints(p hexgrid.Point) int {
	return e.agent.resources.GetReachable(p, bwtypes.ResourceIron, true, false, false)
}
func (e *expansionWorld) StonePoints(p hexgrid.Point) int {
	return e.agent.resources.GetReachable(p, bwtypes.ResourceStone, true, false, false)
}
func (e *expansionWorld) PlantSpacePoints(p hexgrid.Point) int {
	return e.agent.resources.GetReachable(p, bwtypes.ResourcePlantSpace2, true, false, false) +
		e.agent.resources.GetReachable(p, bwtypes.ResourcePlantSpace6, true, false, false)
}
func (e *expansionWorld) BuildingCountOfType(t bwtypes.BuildingType) int {
	n := 0
	for _, b := range e.agent.world.Buildings() {
		if b.Type == t && b.State == bwtypes.BuildingFinished {
			n++
		}
	}
	return n
}
func (e *expansionWorld) MilitarySitesUnderConstruction() int {
	n := 0
	for _, b := range e.agent.world.Buildings() {
		if b.Type.IsMilitary() && b.State == bwtypes.BuildingUnderConstruction {
			n++
		}
	}
	return n
}
func (e *expansionWorld) Create(t bwtypes.BuildingType) *planningworld.Building {
	return e.agent.world.Create(t, planningworld.InvalidGroupID)
}

package main

import (
	"sync"

	"go.uber.org/zap"

	"hearthold/internal/bwtypes"
	"hearthold/internal/gameiface"
	"hearthold/internal/hexgrid"
)

// placedBuilding is one command-sink record of a building a fixture
// seat's agent has asked for.
type placedBuilding struct {
	Point    hexgrid.Point
	Type     bwtypes.BuildingType
	Finished bool
}

// fixtureEngine is a self-contained, deterministic stand-in for a live
// game engine process: terrain is generated from a hash of the point and
// the scenario seed rather than read from a map file, and buildings only
// exist because a seat's agent asked for them — there is no construction
// timer, combat resolution, or resource depletion. It exists purely so
// cmd/agent has something to tick against without a host process (spec
// §10.6); internal/scheduler and everything it wires together never sees
// this package.
type fixtureEngine struct {
	mu sync.Mutex

	grid     hexgrid.Grid
	width    int
	height   int
	seed     int64
	players  map[int]ScenarioPlayer
	tick     uint64
	log      *zap.Logger

	buildings map[int][]placedBuilding
}

func newFixtureEngine(scn Scenario, log *zap.Logger) *fixtureEngine {
	players := make(map[int]ScenarioPlayer, len(scn.Players))
	for _, p := range scn.Players {
		players[p.ID] = p
	}
	return &fixtureEngine{
		grid:      hexgrid.NewGrid(scn.MapWidth, scn.MapHeight),
		width:     scn.MapWidth,
		height:    scn.MapHeight,
		seed:      scn.Seed,
		players:   players,
		log:       log,
		buildings: make(map[int][]placedBuilding),
	}
}

// sinkFor returns a gameiface.CommandSink bound to one seat; each agent
// in the fixture run owns a distinct sink instance.
func (f *fixtureEngine) sinkFor(player int) *fixtureSink {
	return &fixtureSink{engine: f, player: player}
}

// advance moves the fixture's shared tick counter forward and finishes
// every building that has been outstanding for at least one tick, a
// crude stand-in for the engine's own construction timers.
func (f *fixtureEngine) advance() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tick++
	for player, list := range f.buildings {
		for i := range list {
			list[i].Finished = true
		}
		f.buildings[player] = list
	}
}

// terrainHash is a cheap, seeded, order-independent hash of a point,
// used to derive deterministic fixture terrain without storing a grid's
// worth of state.
func terrainHash(p hexgrid.Point, seed int64) uint64 {
	h := uint64(seed) + 0x9e3779b97f4a7c15
	h = (h ^ uint64(uint32(p.X))) * 0xff51afd7ed558ccd
	h = (h ^ uint64(uint32(p.Y))) * 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}

func (f *fixtureEngine) MapSize() (int, int) { return f.width, f.height }

func (f *fixtureEngine) Terrain(p hexgrid.Point) gameiface.TerrainInfo {
	h := terrainHash(p, f.seed)
	walkable := h%13 != 0
	mineable := h%9 == 0
	bq := bwtypes.BuildingQuality(h % 5) // BQNone..BQCastle; mines/harbours never generated
	resources := map[bwtypes.ResourceType]int{}
	if mineable {
		resources[bwtypes.ResourceType(h%uint64(bwtypes.ResourceCount))] = int(h%6) + 1
	}
	if h%17 == 0 {
		resources[bwtypes.ResourceWood] = int(h%4) + 2
	}
	return gameiface.TerrainInfo{Altitude: int(h % 20), Mineable: mineable, Walkable: walkable, BQ: bq, Resources: resources}
}

// Visible always reports true: the fixture models no fog of war of its
// own, leaving that entirely to internal/resourcemap's unit tests.
func (f *fixtureEngine) Visible(hexgrid.Point) bool { return true }

func (f *fixtureEngine) TerritoryOwner(p hexgrid.Point) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	best, bestDist := -1, -1
	for id, pl := range f.players {
		d := f.grid.Distance(p, hexgrid.Point{X: pl.Headquarters.X, Y: pl.Headquarters.Y})
		if bestDist == -1 || d < bestDist {
			best, bestDist = id, d
		}
	}
	const territoryRadius = 18
	if best == -1 || bestDist > territoryRadius {
		return 0, false
	}
	return best, true
}

func (f *fixtureEngine) Headquarters(player int) []hexgrid.Point {
	f.mu.Lock()
	defer f.mu.Unlock()
	pl, ok := f.players[player]
	if !ok {
		return nil
	}
	return []hexgrid.Point{{X: pl.Headquarters.X, Y: pl.Headquarters.Y}}
}

func (f *fixtureEngine) BuildingSites(player int) []hexgrid.Point {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []hexgrid.Point
	for _, b := range f.buildings[player] {
		if !b.Finished {
			out = append(out, b.Point)
		}
	}
	return out
}

func (f *fixtureEngine) MilitaryBuildings(player int) []hexgrid.Point {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []hexgrid.Point
	for _, b := range f.buildings[player] {
		if b.Finished && b.Type.IsMilitary() {
			out = append(out, b.Point)
		}
	}
	return out
}

func (f *fixtureEngine) BuildingsOfType(player int, t bwtypes.BuildingType) []hexgrid.Point {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []hexgrid.Point
	for _, b := range f.buildings[player] {
		if b.Finished && b.Type == t {
			out = append(out, b.Point)
		}
	}
	return out
}

// Inventory always reports empty goods/jobs: the fixture tracks building
// placement only, not the wider carrier/warehouse economy a real host
// engine simulates.
func (f *fixtureEngine) Inventory(int) gameiface.Inventory {
	return gameiface.Inventory{Goods: map[bwtypes.GoodType]int{}, Jobs: map[string]int{}}
}

func (f *fixtureEngine) FiguresAt(p hexgrid.Point) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, list := range f.buildings {
		for _, b := range list {
			if b.Point == p && b.Finished && b.Type.IsMilitary() {
				return int(terrainHash(p, f.seed)%5) + 2
			}
		}
	}
	return 0
}

// HasRoad always reports false: the fixture never models the road graph
// its own seats request via BuildRoad, since nothing downstream of this
// demonstration binary reads it back.
func (f *fixtureEngine) HasRoad(hexgrid.Point, hexgrid.Direction) bool { return false }

func (f *fixtureEngine) Pathfind(src, dst hexgrid.Point, maxCost int) (hexgrid.Direction, bool) {
	if f.grid.Distance(src, dst) > maxCost {
		return 0, false
	}
	best := hexgrid.West
	bestDist := -1
	for _, d := range []hexgrid.Direction{hexgrid.West, hexgrid.NorthWest, hexgrid.NorthEast, hexgrid.East, hexgrid.SouthEast, hexgrid.SouthWest} {
		nd := f.grid.Distance(f.grid.Neighbor(src, d), dst)
		if bestDist == -1 || nd < bestDist {
			best, bestDist = d, nd
		}
	}
	return best, true
}

func (f *fixtureEngine) PlayerNation(player int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.players[player]; ok {
		return "fixture"
	}
	return "unknown"
}

func (f *fixtureEngine) IsEnemyOf(a, b int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	pl, ok := f.players[a]
	if !ok {
		return false
	}
	for _, e := range pl.Enemies {
		if e == b {
			return true
		}
	}
	return false
}

func (f *fixtureEngine) InAttackRange(p hexgrid.Point, radius int) []hexgrid.Point {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []hexgrid.Point
	for _, list := range f.buildings {
		for _, b := range list {
			if b.Finished && f.grid.Distance(p, b.Point) <= radius {
				out = append(out, b.Point)
			}
		}
	}
	return out
}

func (f *fixtureEngine) Tick() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tick
}

// fixtureSink is one seat's write side of the fixture engine; every
// command is applied to the shared fixtureEngine and logged at debug
// level, the textual equivalent of the original's visual command trace.
type fixtureSink struct {
	engine *fixtureEngine
	player int
}

func (s *fixtureSink) PlaceBuilding(p hexgrid.Point, t bwtypes.BuildingType) {
	s.engine.mu.Lock()
	s.engine.buildings[s.player] = append(s.engine.buildings[s.player], placedBuilding{Point: p, Type: t})
	s.engine.mu.Unlock()
	s.engine.log.Debug("place building", zap.Int("player", s.player), zap.String("type", t.String()), zap.Int("x", p.X), zap.Int("y", p.Y))
}

func (s *fixtureSink) PlaceFlag(p hexgrid.Point) {
	s.engine.log.Debug("place flag", zap.Int("player", s.player), zap.Int("x", p.X), zap.Int("y", p.Y))
}

func (s *fixtureSink) DestroyBuilding(p hexgrid.Point) {
	s.engine.mu.Lock()
	list := s.engine.buildings[s.player]
	for i, b := range list {
		if b.Point == p {
			s.engine.buildings[s.player] = append(list[:i], list[i+1:]...)
			break
		}
	}
	s.engine.mu.Unlock()
	s.engine.log.Debug("destroy building", zap.Int("player", s.player), zap.Int("x", p.X), zap.Int("y", p.Y))
}

func (s *fixtureSink) DestroyFlag(p hexgrid.Point) {
	s.engine.log.Debug("destroy flag", zap.Int("player", s.player), zap.Int("x", p.X), zap.Int("y", p.Y))
}

func (s *fixtureSink) BuildRoad(p hexgrid.Point, dirs []hexgrid.Direction) {
	s.engine.log.Debug("build road", zap.Int("player", s.player), zap.Int("x", p.X), zap.Int("y", p.Y), zap.Int("segments", len(dirs)))
}

func (s *fixtureSink) DestroyRoad(p hexgrid.Point, first hexgrid.Direction) {
	s.engine.log.Debug("destroy road", zap.Int("player", s.player), zap.Int("x", p.X), zap.Int("y", p.Y))
}

func (s *fixtureSink) Attack(p hexgrid.Point, soldiers int, strongFirst bool) {
	s.engine.log.Info("attack", zap.Int("player", s.player), zap.Int("x", p.X), zap.Int("y", p.Y), zap.Int("soldiers", soldiers), zap.Bool("strong_first", strongFirst))
}

func (s *fixtureSink) SetProductionEnabled(p hexgrid.Point, enabled bool) {
	s.engine.log.Debug("set production enabled", zap.Int("player", s.player), zap.Bool("enabled", enabled))
}

func (s *fixtureSink) SetCoinsAllowed(p hexgrid.Point, allowed bool) {
	s.engine.log.Debug("set coins allowed", zap.Int("player", s.player), zap.Bool("allowed", allowed))
}

func (s *fixtureSink) SendSoldiersHome(p hexgrid.Point) {
	s.engine.log.Debug("send soldiers home", zap.Int("player", s.player))
}

func (s *fixtureSink) OrderNewSoldiers(p hexgrid.Point) {
	s.engine.log.Debug("order new soldiers", zap.Int("player", s.player))
}

func (s *fixtureSink) ChangeMilitarySettings(gameiface.MilitarySettings) {
	s.engine.log.Debug("change military settings", zap.Int("player", s.player))
}

func (s *fixtureSink) ChangeToolOrders(orders map[string]int) {
	s.engine.log.Debug("change tool orders", zap.Int("player", s.player), zap.Any("orders", orders))
}

func (s *fixtureSink) Surrender() {
	s.engine.log.Info("surrender", zap.Int("player", s.player))
}

func (s *fixtureSink) Chat(message string) {
	s.engine.log.Info("chat", zap.Int("player", s.player), zap.String("message", message))
}

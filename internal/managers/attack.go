package managers

import (
	"sort"

	"hearthold/internal/bwtypes"
	"hearthold/internal/hexgrid"
)

// EnemyBuilding is one observable enemy building within base attack
// distance, as reported by the engine.
type EnemyBuilding struct {
	Point          hexgrid.Point
	Type           bwtypes.BuildingType
	IsHeadquarters bool
	IsHarbour      bool
	HasCatapult    bool
}

// rank orders enemy buildings for targeting priority (spec §4.12): HQ
// first, then harbours, then by expected demolition value, catapults
// hugely bonused.
func rank(b EnemyBuilding) int {
	switch {
	case b.IsHeadquarters:
		return 0
	case b.IsHarbour:
		return 1
	case b.HasCatapult:
		return 2
	}
	switch b.Type {
	case bwtypes.BldFortress:
		return 3
	case bwtypes.BldGraniteMine, bwtypes.BldCoalMine, bwtypes.BldIronMine, bwtypes.BldGoldMine:
		return 4
	case bwtypes.BldWatchtower:
		return 4
	case bwtypes.BldGuardhouse:
		return 5
	case bwtypes.BldBarracks:
		return 6
	default:
		return 7
	}
}

// AttackCommands is the subset of gameiface.CommandSink the attack
// manager issues.
type AttackCommands interface {
	Attack(p hexgrid.Point, soldiers int, strongFirst bool)
}

// AttackManager ranks observable enemy buildings and dispatches every
// usable attacker against the highest-priority target each tick.
type AttackManager struct{}

// NewAttackManager constructs an attack manager; it holds no state of
// its own between ticks.
func NewAttackManager() *AttackManager { return &AttackManager{} }

// Tick picks the best-ranked target from targets and attacks it with
// availableAttackers soldiers, preferring the strongest first whenever
// the agent is currently producing coins (spec §4.12).
func (a *AttackManager) Tick(targets []EnemyBuilding, availableAttackers int, producingCoins bool, sink AttackCommands) {
	if len(targets) == 0 || availableAttackers <= 0 {
		return
	}
	sorted := append([]EnemyBuilding(nil), targets...)
	sort.SliceStable(sorted, func(i, j int) bool { return rank(sorted[i]) < rank(sorted[j]) })

	sink.Attack(sorted[0].Point, availableAttackers, producingCoins)
}

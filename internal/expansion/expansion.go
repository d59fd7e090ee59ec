// Package expansion decides where and what military building to raise
// next, predicting territory gain via planningworld.PredictCapture and
// handing the winning candidate to the building planner as a
// fixed-position request.
//
// Grounded on the teacher's internal/engine/strategic_ai.go
// (StrategyPhase/StrategicDecision), generalised from the teacher's
// live resource-rush heuristics to the territory-capture scoring spec
// describes.
package expansion

import (
	"hearthold/internal/bwtypes"
	"hearthold/internal/hexgrid"
	"hearthold/internal/planningworld"
)

// Requester places a fixed-position building request (satisfied by
// buildingplanner.Planner.RequestFixed).
type Requester interface {
	RequestFixed(b *planningworld.Building, anchor, point hexgrid.Point)
}

// World supplies everything the expansion planner needs to know about
// the current state of play.
type World interface {
	Grid() hexgrid.Grid
	EffectiveQuality(p hexgrid.Point) bwtypes.BuildingQuality
	KnownMilitary() []planningworld.KnownMilitary
	HostileBuildingAt(p hexgrid.Point) (bwtypes.BuildingType, bool)
	EnemySoldiersInRange(p hexgrid.Point, radius int) int
	EnemyMilitaryNear(p hexgrid.Point, threshold int) bool
	EnemyCatapultsInRange(p hexgrid.Point, radius int) []hexgrid.Point
	SoldierCount(anchor hexgrid.Point) int
	BuilderAvailable(anchor hexgrid.Point) bool
	HasBoardsAndStone(anchor hexgrid.Point) bool
	OrePoints(p hexgrid.Point) int
	StonePoints(p hexgrid.Point) int
	PlantSpacePoints(p hexgrid.Point) int
	BuildingCountOfType(t bwtypes.BuildingType) int
	MilitarySitesUnderConstruction() int
	Create(t bwtypes.BuildingType) *planningworld.Building
}

const (
	minSoldiersToExpand     = 5
	attackRangeRadius       = 10
	nearThreshold           = 16
	maxConcurrentMilitary   = 3
)

// Planner holds no mutable state of its own; every decision is
// recomputed per call from the World it is given.
type Planner struct {
	world World
}

// New constructs an expansion planner over world.
func New(world World) *Planner {
	return &Planner{world: world}
}

// ReadyToExpand applies the global throttle (spec §4.9): never while
// three or more military sites are under construction, and never before
// the basic production trio exists.
func (p *Planner) ReadyToExpand() bool {
	if p.world.MilitarySitesUnderConstruction() >= maxConcurrentMilitary {
		return false
	}
	return p.world.BuildingCountOfType(bwtypes.BldSawmill) > 0 &&
		p.world.BuildingCountOfType(bwtypes.BldWoodcutter) > 0 &&
		p.world.BuildingCountOfType(bwtypes.BldQuarry) > 0
}

type candidate struct {
	point hexgrid.Point
	typ   bwtypes.BuildingType
	score float64
}

// Expand evaluates every military-capable point reachable from anchor
// and, if any candidate qualifies, requests the best one via req.
func (p *Planner) Expand(anchor hexgrid.Point, points []hexgrid.Point, req Requester) bool {
	if !p.ReadyToExpand() {
		return false
	}
	if p.world.SoldierCount(anchor) < minSoldiersToExpand {
		return false
	}
	if !p.world.BuilderAvailable(anchor) || !p.world.HasBoardsAndStone(anchor) {
		return false
	}

	var best *candidate
	for _, pt := range points {
		if !p.world.EffectiveQuality(pt).Covers(bwtypes.BQHut) {
			continue
		}
		c := p.evaluate(pt)
		if c == nil {
			continue
		}
		if best == nil || c.score > best.score {
			best = c
		}
	}
	if best == nil {
		return false
	}

	b := p.world.Create(best.typ)
	req.RequestFixed(b, anchor, best.point)
	return true
}

func (p *Planner) evaluate(pt hexgrid.Point) *candidate {
	t := bwtypes.BldBarracks

	inRange := p.world.EnemySoldiersInRange(pt, attackRangeRadius)
	switch {
	case inRange > 0:
		t = upgrade(t)
		if inRange > 3 {
			t = upgrade(t)
		}
	case p.world.EnemyMilitaryNear(pt, nearThreshold):
		t = upgrade(t)
	}
	t = capAt(t, p.world.EffectiveQuality(pt))

	if len(p.world.EnemyCatapultsInRange(pt, attackRangeRadius)) > 0 {
		prediction := planningworld.PredictCapture(p.world.Grid(), p.world.KnownMilitary(), pt, t, p.world.HostileBuildingAt)
		for _, cat := range p.world.EnemyCatapultsInRange(pt, attackRangeRadius) {
			if !destroyed(prediction.DestroyedHostile, cat) {
				return nil
			}
		}
	}

	prediction := planningworld.PredictCapture(p.world.Grid(), p.world.KnownMilitary(), pt, t, p.world.HostileBuildingAt)

	var ore, stone, plant float64
	for _, cp := range prediction.CapturedPoints {
		ore += float64(p.world.OrePoints(cp))
		stone += float64(p.world.StonePoints(cp))
		plant += float64(p.world.PlantSpacePoints(cp))
	}
	score := 2*ore + stone + plant + 2*float64(len(prediction.DestroyedHostile))

	return &candidate{point: pt, typ: t, score: score}
}

func upgrade(t bwtypes.BuildingType) bwtypes.BuildingType {
	switch t {
	case bwtypes.BldBarracks:
		return bwtypes.BldGuardhouse
	case bwtypes.BldGuardhouse:
		return bwtypes.BldWatchtower
	case bwtypes.BldWatchtower:
		return bwtypes.BldFortress
	default:
		return t
	}
}

func capAt(t bwtypes.BuildingType, bq bwtypes.BuildingQuality) bwtypes.BuildingType {
	for t.Size() > bq {
		down := downgrade(t)
		if down == t {
			break
		}
		t = down
	}
	return t
}

func downgrade(t bwtypes.BuildingType) bwtypes.BuildingType {
	switch t {
	case bwtypes.BldFortress:
		return bwtypes.BldWatchtower
	case bwtypes.BldWatchtower:
		return bwtypes.BldGuardhouse
	case bwtypes.BldGuardhouse:
		return bwtypes.BldBarracks
	default:
		return t
	}
}

func destroyed(list []planningworld.KnownMilitary, p hexgrid.Point) bool {
	for _, m := range list {
		if m.Point == p {
			return true
		}
	}
	return false
}

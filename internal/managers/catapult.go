package managers

import (
	"hearthold/internal/hexgrid"
	"hearthold/internal/planningworld"
)

// catapultRange and attackRange bound the "in range of border but not
// already in attack range" window a catapult site must sit in
// (original_source recurrent/CatapultManager.h).
const (
	catapultRange = 14
	attackRange   = 10
)

// CatapultRequester places a fixed-position catapult request.
type CatapultRequester interface {
	RequestFixed(b *planningworld.Building, anchor, point hexgrid.Point)
}

// CatapultManager requests catapult construction near the border when
// stone is abundant and a hostile military building sits within catapult
// range but outside attack range — the one piece of genuine siege
// planning the distillation otherwise left implicit in the attack
// manager (spec §11).
type CatapultManager struct{}

// NewCatapultManager constructs a catapult manager; it holds no state of
// its own between ticks.
func NewCatapultManager() *CatapultManager { return &CatapultManager{} }

// Tick evaluates each candidate border point and, if any hostile
// military building lies within catapultRange but beyond attackRange of
// it, and excess stone is available, requests a catapult there.
func (c *CatapultManager) Tick(anchor hexgrid.Point, candidates []hexgrid.Point, hostiles []hexgrid.Point, grid hexgrid.Grid, excessStone bool, req CatapultRequester, create func() *planningworld.Building) bool {
	if !excessStone {
		return false
	}
	for _, p := range candidates {
		for _, h := range hostiles {
			d := grid.Distance(p, h)
			if d <= catapultRange && d > attackRange {
				req.RequestFixed(create(), anchor, p)
				return true
			}
		}
	}
	return false
}

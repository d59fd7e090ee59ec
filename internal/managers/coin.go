package managers

import "hearthold/internal/hexgrid"

// CoinCommands is the subset of gameiface.CommandSink the coin manager
// issues.
type CoinCommands interface {
	SetCoinsAllowed(p hexgrid.Point, allowed bool)
	SendSoldiersHome(p hexgrid.Point)
	OrderNewSoldiers(p hexgrid.Point)
}

// promotableSoldiersForCoins is the threshold at or above which the academy is
// allowed to consume coins (spec §4.12).
const promotableSoldiersForCoins = 3

// CoinManager owns the single "academy" fortress used to promote
// recruits into higher-ranked soldiers once the agent produces any coin.
type CoinManager struct {
	academyBuilt bool
	academyAt    hexgrid.Point
}

// NewCoinManager constructs an empty coin manager; no academy has been
// requested yet.
func NewCoinManager() *CoinManager { return &CoinManager{} }

// HasAcademy reports whether an academy site has already been chosen.
func (c *CoinManager) HasAcademy() bool { return c.academyBuilt }

// SetAcademy records the academy's location once the building planner
// has placed it.
func (c *CoinManager) SetAcademy(p hexgrid.Point) {
	c.academyBuilt = true
	c.academyAt = p
}

// Tick enables or disables coin consumption at the academy depending on
// whether it holds enough promotable soldiers, and continuously drains
// max-rank soldiers home while ordering replacements (spec §4.12).
func (c *CoinManager) Tick(promotableAtAcademy, maxRankAtAcademy int, sink CoinCommands) {
	if !c.academyBuilt {
		return
	}
	sink.SetCoinsAllowed(c.academyAt, promotableAtAcademy >= promotableSoldiersForCoins)
	if maxRankAtAcademy > 0 {
		sink.SendSoldiersHome(c.academyAt)
	}
	sink.OrderNewSoldiers(c.academyAt)
}

package model

import "time"

// DivisionStatus describes whether a division currently holds shares.
type DivisionStatus string

const (
	StatusEmpty   DivisionStatus = "EMPTY"
	StatusHolding DivisionStatus = "HOLDING"
)

// Position is the open-position part of a division. A nil Position means the
// division is EMPTY, so holdings > 0 exactly when the division is HOLDING.
type Position struct {
	Holdings  int       // share count, > 0
	AvgPrice  float64   // cost basis per share (execution price)
	BuyDate   time.Time // used for trading-day holding period
	TotalCost float64   // cash spent incl. commission, basis for profit
}

// DivisionPortfolio is one of the N independent sub-portfolios.
// The valuation fields below Cash are recomputed every simulated day.
type DivisionPortfolio struct {
	Number   int // 1..N
	Cash     float64
	Position *Position

	CurrentValue     float64
	UnrealizedPL     float64
	UnrealizedPLRate float64 // percent
	BuyLimitPrice    float64
	SellLimitPrice   float64
	TradingDaysHeld  int
}

// Status derives EMPTY/HOLDING from the presence of an open position.
func (d *DivisionPortfolio) Status() DivisionStatus {
	if d.Position == nil {
		return StatusEmpty
	}
	return StatusHolding
}

// Holdings returns the open share count, zero when EMPTY.
func (d *DivisionPortfolio) Holdings() int {
	if d.Position == nil {
		return 0
	}
	return d.Position.Holdings
}

// Clone returns a deep copy safe to keep in an immutable ledger snapshot.
func (d *DivisionPortfolio) Clone() DivisionPortfolio {
	c := *d
	if d.Position != nil {
		p := *d.Position
		c.Position = &p
	}
	return c
}

// CloneDivisions deep-copies a full division slice.
func CloneDivisions(divs []DivisionPortfolio) []DivisionPortfolio {
	out := make([]DivisionPortfolio, len(divs))
	for i := range divs {
		out[i] = divs[i].Clone()
	}
	return out
}

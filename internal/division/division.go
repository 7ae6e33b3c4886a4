// Package division owns the per-division portfolio lifecycle: seeding,
// daily valuation and the periodic full-portfolio rebalance.
package division

import (
	"time"

	"SplitSentinel/internal/calendar"
	"SplitSentinel/internal/model"
)

// Initialize seeds N EMPTY divisions, each with an equal share of the
// initial capital.
func Initialize(cfg model.SimulationConfig) []model.DivisionPortfolio {
	amount := cfg.InitialCapital / float64(cfg.Divisions)
	divs := make([]model.DivisionPortfolio, cfg.Divisions)
	for i := range divs {
		divs[i] = model.DivisionPortfolio{
			Number: i + 1,
			Cash:   amount,
		}
	}
	return divs
}

// UpdateValuations recomputes every division's derived fields for today.
//
// EMPTY divisions only get a display buy-limit price. HOLDING divisions get
// market value, unrealized P/L, the sell-limit price and the trading-day
// holding period.
func UpdateValuations(divs []model.DivisionPortfolio, todayClose, prevClose float64, date time.Time, params model.ModeParams) {
	buyLimit := prevClose * (1 + params.BuyTarget)

	for i := range divs {
		d := &divs[i]
		d.BuyLimitPrice = buyLimit

		if d.Position == nil {
			d.SellLimitPrice = 0
			d.CurrentValue = 0
			d.UnrealizedPL = 0
			d.UnrealizedPLRate = 0
			d.TradingDaysHeld = 0
			continue
		}

		pos := d.Position
		d.CurrentValue = float64(pos.Holdings) * todayClose
		d.UnrealizedPL = d.CurrentValue - pos.TotalCost
		d.UnrealizedPLRate = d.UnrealizedPL / pos.TotalCost * 100
		d.SellLimitPrice = pos.AvgPrice * (1 + params.SellTarget)
		d.TradingDaysHeld = calendar.TradingDaysBetween(pos.BuyDate, date)
	}
}

// Rebalance pools all divisions' cash and market value and redistributes it
// evenly. EMPTY divisions are reset to the new per-division amount; HOLDING
// divisions keep their position untouched and get whatever cash the new
// amount leaves after their holding value, floored at zero. Returns the
// pooled total.
func Rebalance(divs []model.DivisionPortfolio, price float64) float64 {
	var pool float64
	for i := range divs {
		pool += divs[i].Cash + float64(divs[i].Holdings())*price
	}

	amount := pool / float64(len(divs))
	for i := range divs {
		d := &divs[i]
		if d.Position == nil {
			d.Cash = amount
			continue
		}
		holdingValue := float64(d.Position.Holdings) * price
		d.Cash = max(0, amount-holdingValue)
	}
	return pool
}

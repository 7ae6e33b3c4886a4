package engine

import (
	"fmt"
	"math"
	"time"

	"SplitSentinel/internal/calendar"
	"SplitSentinel/internal/division"
	"SplitSentinel/internal/model"
)

// minBuyCash is the cash floor below which a division never submits a buy.
const minBuyCash = 100.0

// signal is the uniform internal form of a proposed trade, before it is
// frozen into one of the DivisionAction variants.
type signal struct {
	kind       model.ActionKind
	qty        int
	price      float64
	limit      float64
	amount     float64
	commission float64
	profit     float64
	profitRate float64 // percent
	daysHeld   int
	reason     string
}

func (s *signal) toAction(divNumber int) model.DivisionAction {
	switch s.kind {
	case model.ActionBuy:
		return model.BuyAction{
			Division:   divNumber,
			Quantity:   s.qty,
			Price:      s.price,
			LimitPrice: s.limit,
			Amount:     s.amount,
			Commission: s.commission,
			Reason:     s.reason,
		}
	case model.ActionSell:
		return model.SellAction{
			Division:        divNumber,
			Quantity:        s.qty,
			Price:           s.price,
			LimitPrice:      s.limit,
			Amount:          s.amount,
			Commission:      s.commission,
			Profit:          s.profit,
			ProfitRate:      s.profitRate,
			TradingDaysHeld: s.daysHeld,
			Reason:          s.reason,
		}
	case model.ActionStopLoss:
		return model.StopLossAction{
			Division:        divNumber,
			Quantity:        s.qty,
			Price:           s.price,
			LimitPrice:      s.limit,
			Amount:          s.amount,
			Commission:      s.commission,
			Profit:          s.profit,
			ProfitRate:      s.profitRate,
			TradingDaysHeld: s.daysHeld,
			Reason:          s.reason,
		}
	default:
		return model.HoldAction{
			Division: divNumber,
			Price:    s.price,
			Reason:   s.reason,
		}
	}
}

// checkBuySignal proposes a dip buy for an EMPTY division. Only the division
// at the round-robin pointer may buy, and only while it holds enough cash for
// at least one share plus commission.
func checkBuySignal(d *model.DivisionPortfolio, index, nextBuy int, todayClose, prevClose float64, params model.ModeParams) *signal {
	if d.Position != nil {
		return nil
	}
	if index != nextBuy {
		return nil
	}
	if d.Cash < minBuyCash {
		return nil
	}

	changeRate := (todayClose - prevClose) / prevClose
	if changeRate >= params.BuyTarget {
		return nil
	}

	// LOC order: the trigger already guarantees close <= limit, so the fill
	// is at today's close.
	qty := int(math.Floor(d.Cash / todayClose))
	if qty == 0 {
		return nil
	}

	amount := float64(qty) * todayClose
	commission := calendar.CommissionOn(amount)
	if d.Cash < amount+commission {
		return nil
	}

	return &signal{
		kind:       model.ActionBuy,
		qty:        qty,
		price:      todayClose,
		limit:      prevClose * (1 + params.BuyTarget),
		amount:     amount,
		commission: commission,
		reason: fmt.Sprintf("buy: change %.2f%% < target %.2f%%",
			changeRate*100, params.BuyTarget*100),
	}
}

// checkSellSignal proposes a sell for a HOLDING division: a stop-loss once
// the holding-day limit is reached, otherwise a target-profit sell filled at
// the limit price when the close reaches it.
func checkSellSignal(d *model.DivisionPortfolio, todayClose float64, params model.ModeParams) *signal {
	if d.Position == nil {
		return nil
	}
	pos := d.Position

	if d.TradingDaysHeld >= params.HoldingDays {
		amount := float64(pos.Holdings) * todayClose
		commission := calendar.CommissionOn(amount)
		profit := amount - pos.TotalCost - commission
		return &signal{
			kind:       model.ActionStopLoss,
			qty:        pos.Holdings,
			price:      todayClose,
			limit:      todayClose,
			amount:     amount,
			commission: commission,
			profit:     profit,
			profitRate: profit / pos.TotalCost * 100,
			daysHeld:   d.TradingDaysHeld,
			reason: fmt.Sprintf("stop loss: held %d trading days >= limit %d (market close $%.2f)",
				d.TradingDaysHeld, params.HoldingDays, todayClose),
		}
	}

	sellLimit := pos.AvgPrice * (1 + params.SellTarget)
	if todayClose >= sellLimit {
		// LOC fill at the limit itself; upside beyond the target is not kept
		amount := float64(pos.Holdings) * sellLimit
		commission := calendar.CommissionOn(amount)
		profit := amount - pos.TotalCost - commission
		return &signal{
			kind:       model.ActionSell,
			qty:        pos.Holdings,
			price:      sellLimit,
			limit:      sellLimit,
			amount:     amount,
			commission: commission,
			profit:     profit,
			profitRate: profit / pos.TotalCost * 100,
			daysHeld:   d.TradingDaysHeld,
			reason: fmt.Sprintf("LOC sell: limit $%.2f <= close $%.2f (+%.1f%%)",
				sellLimit, todayClose, params.SellTarget*100),
		}
	}

	return nil
}

// TodaySignals evaluates the buy and sell proposals for a live portfolio
// snapshot without executing anything. Divisions are revalued in place.
func TodaySignals(divs []model.DivisionPortfolio, nextBuy int, activeMode model.Mode, todayClose, prevClose float64, date time.Time) (buys, sells []model.DivisionAction) {
	params := model.ParamsFor(activeMode)
	division.UpdateValuations(divs, todayClose, prevClose, date, params)

	for i := range divs {
		d := &divs[i]
		if sig := checkSellSignal(d, todayClose, params); sig != nil {
			sells = append(sells, sig.toAction(d.Number))
		}
		if sig := checkBuySignal(d, i, nextBuy, todayClose, prevClose, params); sig != nil {
			buys = append(buys, sig.toAction(d.Number))
		}
	}
	return buys, sells
}

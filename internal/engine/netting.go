package engine

import (
	"fmt"
	"time"

	"SplitSentinel/internal/calendar"
	"SplitSentinel/internal/model"
)

// netSignals offsets a same-division buy and sell proposed on the same day.
//
// TODO: a division is either EMPTY or HOLDING and fills are all-or-nothing,
// so buySig and sellSig can never both be non-nil today; revisit the
// offsetting branches if partial fills ever land.
func netSignals(buySig, sellSig *signal) (net *signal, shouldBuy, shouldSell bool) {
	switch {
	case buySig == nil && sellSig == nil:
		return nil, false, false
	case buySig != nil && sellSig == nil:
		return buySig, true, false
	case buySig == nil:
		return sellSig, false, true
	}

	buyQty := buySig.qty
	sellQty := sellSig.qty

	switch {
	case buyQty > sellQty:
		netQty := buyQty - sellQty
		amount := float64(netQty) * buySig.price
		n := *buySig
		n.qty = netQty
		n.amount = amount
		n.commission = calendar.CommissionOn(amount)
		n.reason = fmt.Sprintf("netting: buy %d - sell %d = net buy %d", buyQty, sellQty, netQty)
		return &n, true, true

	case sellQty > buyQty:
		netQty := sellQty - buyQty
		amount := float64(netQty) * sellSig.price
		commission := calendar.CommissionOn(amount)
		// prorate from the gross profit, then charge only the net fill's
		// commission; prorating the net profit would count fees twice
		grossProfit := sellSig.profit + sellSig.commission
		cost := sellSig.amount - sellSig.commission - sellSig.profit
		netCost := cost * float64(netQty) / float64(sellQty)
		n := *sellSig
		n.qty = netQty
		n.amount = amount
		n.commission = commission
		n.profit = grossProfit*float64(netQty)/float64(sellQty) - commission
		n.profitRate = 0
		if netCost > 0 {
			n.profitRate = n.profit / netCost * 100
		}
		n.reason = fmt.Sprintf("netting: sell %d - buy %d = net sell %d", sellQty, buyQty, netQty)
		return &n, false, true

	default:
		return &signal{
			kind:  model.ActionHold,
			price: buySig.price,
			reason: fmt.Sprintf("netting: buy %d = sell %d (no trade, commission saved)",
				buyQty, sellQty),
		}, false, false
	}
}

func executeBuy(d *model.DivisionPortfolio, sig *signal, date time.Time) {
	d.Cash -= sig.amount + sig.commission
	d.Position = &model.Position{
		Holdings:  sig.qty,
		AvgPrice:  sig.price,
		BuyDate:   date,
		TotalCost: sig.amount + sig.commission,
	}
}

func executeSell(d *model.DivisionPortfolio, sig *signal) {
	d.Cash += sig.amount - sig.commission
	d.Position = nil
}

// Package export renders the daily ledger as CSV for spreadsheet analysis.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"SplitSentinel/internal/model"
)

var ledgerHeader = []string{
	"date", "close", "prev_close", "change_pct", "mode",
	"buy_qty", "sell_qty", "net_qty", "realized_pl",
	"total_cash", "holdings", "holdings_value", "total_assets",
	"return_pct", "drawdown_pct", "rebalance", "rebalance_amount", "actions",
}

// WriteLedger writes one CSV row per simulated day.
func WriteLedger(w io.Writer, records []model.DailyLedgerRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ledgerHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.Date.Format("2006-01-02"),
			f2(rec.Close),
			f2(rec.PrevClose),
			f2(rec.ChangeRate),
			string(rec.Mode),
			strconv.Itoa(rec.TotalBuyQuantity),
			strconv.Itoa(rec.TotalSellQuantity),
			strconv.Itoa(rec.NetQuantity),
			f2(rec.DailyRealizedPL),
			f2(rec.TotalCash),
			strconv.Itoa(rec.TotalHoldings),
			f2(rec.TotalValue),
			f2(rec.TotalAssets),
			f2(rec.ReturnRate),
			f2(rec.Drawdown),
			strconv.FormatBool(rec.RebalanceDay),
			f2(rec.RebalanceAmount),
			describeActions(rec.Actions),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", rec.Date.Format("2006-01-02"), err)
		}
	}

	cw.Flush()
	return cw.Error()
}

var actionsHeader = []string{
	"date", "division", "action", "quantity", "price", "limit_price",
	"amount", "commission", "profit", "profit_pct", "days_held", "reason",
}

// WriteActions writes one CSV row per division action across the run.
func WriteActions(w io.Writer, records []model.DailyLedgerRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(actionsHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, rec := range records {
		date := rec.Date.Format("2006-01-02")
		for _, act := range rec.Actions {
			var row []string
			switch a := act.(type) {
			case model.BuyAction:
				row = []string{date, strconv.Itoa(a.Division), string(a.Kind()),
					strconv.Itoa(a.Quantity), f2(a.Price), f2(a.LimitPrice),
					f2(a.Amount), f4(a.Commission), "", "", "", a.Reason}
			case model.SellAction:
				row = []string{date, strconv.Itoa(a.Division), string(a.Kind()),
					strconv.Itoa(a.Quantity), f2(a.Price), f2(a.LimitPrice),
					f2(a.Amount), f4(a.Commission), f2(a.Profit), f2(a.ProfitRate),
					strconv.Itoa(a.TradingDaysHeld), a.Reason}
			case model.StopLossAction:
				row = []string{date, strconv.Itoa(a.Division), string(a.Kind()),
					strconv.Itoa(a.Quantity), f2(a.Price), f2(a.LimitPrice),
					f2(a.Amount), f4(a.Commission), f2(a.Profit), f2(a.ProfitRate),
					strconv.Itoa(a.TradingDaysHeld), a.Reason}
			case model.HoldAction:
				row = []string{date, strconv.Itoa(a.Division), string(a.Kind()),
					"0", f2(a.Price), "", "", "", "", "", "", a.Reason}
			default:
				continue
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write action row %s: %w", date, err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func describeActions(actions []model.DivisionAction) string {
	if len(actions) == 0 {
		return ""
	}
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = fmt.Sprintf("div%d %s", a.DivisionNumber(), a.Describe())
	}
	return strings.Join(parts, "; ")
}

func f2(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
func f4(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }

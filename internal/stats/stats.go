// Package stats derives run-level summary statistics from the daily ledger.
package stats

import (
	"math"

	"SplitSentinel/internal/model"
)

// Summary aggregates one simulation run.
type Summary struct {
	TotalTrades     int
	BuyTrades       int
	SellTrades      int // target sells + stop losses
	StopLosses      int
	WinRate         float64 // percent of sells closed with profit > 0
	AvgWin          float64
	AvgLoss         float64
	TotalCommission float64
	FinalReturn     float64 // percent
	MaxDrawdown     float64 // percent, >= 0
	SharpeRatio     float64
}

// Summarize walks the ledger and computes the run summary.
func Summarize(records []model.DailyLedgerRecord) Summary {
	var s Summary
	if len(records) == 0 {
		return s
	}

	var (
		winSum    float64
		winCount  int
		lossSum   float64
		lossCount int
	)

	for _, rec := range records {
		for _, act := range rec.Actions {
			switch a := act.(type) {
			case model.BuyAction:
				s.BuyTrades++
				s.TotalCommission += a.Commission
			case model.SellAction:
				s.SellTrades++
				s.TotalCommission += a.Commission
				tallyProfit(a.Profit, &winSum, &winCount, &lossSum, &lossCount)
			case model.StopLossAction:
				s.SellTrades++
				s.StopLosses++
				s.TotalCommission += a.Commission
				tallyProfit(a.Profit, &winSum, &winCount, &lossSum, &lossCount)
			}
		}
		if dd := -rec.Drawdown; dd > s.MaxDrawdown {
			s.MaxDrawdown = dd
		}
	}

	s.TotalTrades = s.BuyTrades + s.SellTrades
	if s.SellTrades > 0 {
		s.WinRate = float64(winCount) / float64(s.SellTrades) * 100
	}
	if winCount > 0 {
		s.AvgWin = winSum / float64(winCount)
	}
	if lossCount > 0 {
		s.AvgLoss = lossSum / float64(lossCount)
	}
	s.FinalReturn = records[len(records)-1].ReturnRate
	s.SharpeRatio = sharpe(records)
	return s
}

func tallyProfit(profit float64, winSum *float64, winCount *int, lossSum *float64, lossCount *int) {
	if profit > 0 {
		*winSum += profit
		*winCount++
	} else if profit < 0 {
		*lossSum += profit
		*lossCount++
	}
}

// sharpe is the naive ratio of mean to standard deviation of the nonzero
// cumulative return readings.
func sharpe(records []model.DailyLedgerRecord) float64 {
	var returns []float64
	for _, rec := range records {
		if rec.ReturnRate != 0 {
			returns = append(returns, rec.ReturnRate)
		}
	}
	if len(returns) < 2 {
		return 0
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	std := math.Sqrt(variance / float64(len(returns)))
	if std == 0 {
		return 0
	}
	return mean / std
}

package stats

import (
	"math"
	"testing"
	"time"

	"SplitSentinel/internal/model"
)

func record(day int, actions ...model.DivisionAction) model.DailyLedgerRecord {
	base, _ := time.Parse("2006-01-02", "2024-01-01")
	return model.DailyLedgerRecord{
		Date:    base.AddDate(0, 0, day),
		Actions: actions,
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalTrades != 0 || s.WinRate != 0 || s.SharpeRatio != 0 {
		t.Errorf("empty ledger should produce a zero summary, got %+v", s)
	}
}

func TestSummarize_CountsAndWinRate(t *testing.T) {
	records := []model.DailyLedgerRecord{
		record(0, model.BuyAction{Division: 1, Quantity: 10, Commission: 0.5}),
		record(1, model.SellAction{Division: 1, Quantity: 10, Profit: 20, Commission: 0.5}),
		record(2, model.BuyAction{Division: 2, Quantity: 5, Commission: 0.25}),
		record(3, model.StopLossAction{Division: 2, Quantity: 5, Profit: -8, Commission: 0.25}),
		record(4, model.SellAction{Division: 3, Quantity: 4, Profit: 12, Commission: 0.1}),
	}
	s := Summarize(records)

	if s.BuyTrades != 2 || s.SellTrades != 3 || s.TotalTrades != 5 {
		t.Errorf("trade counts %d/%d/%d, want 2/3/5", s.BuyTrades, s.SellTrades, s.TotalTrades)
	}
	if s.StopLosses != 1 {
		t.Errorf("stop losses %d, want 1", s.StopLosses)
	}
	if math.Abs(s.WinRate-200.0/3.0) > 1e-9 {
		t.Errorf("win rate %.4f, want %.4f", s.WinRate, 200.0/3.0)
	}
	if s.AvgWin != 16 {
		t.Errorf("avg win %.2f, want 16", s.AvgWin)
	}
	if s.AvgLoss != -8 {
		t.Errorf("avg loss %.2f, want -8", s.AvgLoss)
	}
	if math.Abs(s.TotalCommission-1.6) > 1e-9 {
		t.Errorf("commission %.4f, want 1.6", s.TotalCommission)
	}
}

func TestSummarize_DrawdownAndReturn(t *testing.T) {
	records := []model.DailyLedgerRecord{
		{ReturnRate: 1.0, Drawdown: 0},
		{ReturnRate: -2.0, Drawdown: -3.5},
		{ReturnRate: 0.5, Drawdown: -1.2},
	}
	s := Summarize(records)
	if s.MaxDrawdown != 3.5 {
		t.Errorf("max drawdown %.2f, want 3.5 (positive)", s.MaxDrawdown)
	}
	if s.FinalReturn != 0.5 {
		t.Errorf("final return %.2f, want the last day's reading", s.FinalReturn)
	}
	if s.SharpeRatio == 0 {
		t.Error("expected a nonzero sharpe with varying returns")
	}
}

func TestSharpe_TooFewReadings(t *testing.T) {
	records := []model.DailyLedgerRecord{
		{ReturnRate: 0},
		{ReturnRate: 1.5},
	}
	if got := sharpe(records); got != 0 {
		t.Errorf("single nonzero reading should give 0, got %.4f", got)
	}
}

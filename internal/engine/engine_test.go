package engine

import (
	"math"
	"testing"
	"time"

	"SplitSentinel/internal/calendar"
	"SplitSentinel/internal/model"
)

// weekdaySeries builds one PricePoint per close on consecutive weekdays
// starting 2024-01-01 (a Monday).
func weekdaySeries(closes ...float64) []model.PricePoint {
	start, _ := time.Parse("2006-01-02", "2024-01-01")
	points := make([]model.PricePoint, 0, len(closes))
	d := start
	for _, c := range closes {
		for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			d = d.AddDate(0, 0, 1)
		}
		points = append(points, model.PricePoint{Date: d, Close: c})
		d = d.AddDate(0, 0, 1)
	}
	return points
}

func safeConfig(capital float64, divisions int) model.SimulationConfig {
	return model.SimulationConfig{
		InitialCapital:  capital,
		Divisions:       divisions,
		Mode:            model.ModeSafe,
		RebalancePeriod: 100,
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestRun_EmptySeries(t *testing.T) {
	records, err := Run(nil, safeConfig(10000, 2), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("expected empty non-nil ledger, got %v", records)
	}
}

func TestRun_RejectsInvalidConfig(t *testing.T) {
	cfg := safeConfig(0, 2)
	if _, err := Run(weekdaySeries(100), cfg, nil); err == nil {
		t.Error("expected error for non-positive capital")
	}
	cfg = safeConfig(10000, 0)
	if _, err := Run(weekdaySeries(100), cfg, nil); err == nil {
		t.Error("expected error for zero divisions")
	}
}

func TestRun_DipBuyThenTargetSell(t *testing.T) {
	cfg := safeConfig(10000, 2)
	records, err := Run(weekdaySeries(100, 96, 97), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	// day 0: first close has no prior, so no trade
	if len(records[0].Actions) != 0 {
		t.Errorf("day 0: expected no actions, got %d", len(records[0].Actions))
	}
	if !approx(records[0].TotalAssets, 10000) {
		t.Errorf("day 0: total assets %.4f, want 10000", records[0].TotalAssets)
	}

	// day 1: -4% < -3% triggers a buy in division 1
	if len(records[1].Actions) != 1 {
		t.Fatalf("day 1: expected 1 action, got %d", len(records[1].Actions))
	}
	buy, ok := records[1].Actions[0].(model.BuyAction)
	if !ok {
		t.Fatalf("day 1: expected BuyAction, got %T", records[1].Actions[0])
	}
	if buy.Division != 1 || buy.Quantity != 52 || buy.Price != 96 {
		t.Errorf("day 1: buy = div %d qty %d @ %.2f, want div 1 qty 52 @ 96",
			buy.Division, buy.Quantity, buy.Price)
	}
	commission1 := calendar.CommissionOn(52 * 96.0)
	if !approx(records[1].TotalAssets, 10000-commission1) {
		t.Errorf("day 1: total assets %.6f, want %.6f",
			records[1].TotalAssets, 10000-commission1)
	}
	if records[1].Divisions[0].Status() != model.StatusHolding {
		t.Error("day 1: division 1 should be HOLDING after the fill")
	}

	// day 2: close 97 reaches the 0.2% target, fill at the limit 96.192
	if len(records[2].Actions) != 1 {
		t.Fatalf("day 2: expected 1 action, got %d", len(records[2].Actions))
	}
	sell, ok := records[2].Actions[0].(model.SellAction)
	if !ok {
		t.Fatalf("day 2: expected SellAction, got %T", records[2].Actions[0])
	}
	wantLimit := 96 * 1.002
	if sell.Division != 1 || sell.Quantity != 52 || !approx(sell.Price, wantLimit) {
		t.Errorf("day 2: sell = div %d qty %d @ %.4f, want div 1 qty 52 @ %.4f",
			sell.Division, sell.Quantity, sell.Price, wantLimit)
	}
	amount := 52 * wantLimit
	commission2 := calendar.CommissionOn(amount)
	wantProfit := amount - (52*96.0 + commission1) - commission2
	if !approx(sell.Profit, wantProfit) {
		t.Errorf("day 2: profit %.6f, want %.6f", sell.Profit, wantProfit)
	}
	if !approx(records[2].DailyRealizedPL, wantProfit) {
		t.Errorf("day 2: realized P/L %.6f, want %.6f", records[2].DailyRealizedPL, wantProfit)
	}
	if records[2].Divisions[0].Status() != model.StatusEmpty {
		t.Error("day 2: division 1 should be EMPTY after the sell")
	}
}

func TestRun_RoundRobinPointer(t *testing.T) {
	cfg := safeConfig(10000, 2)
	records, err := Run(weekdaySeries(100, 96, 92), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	buy1, ok := records[1].Actions[0].(model.BuyAction)
	if !ok || buy1.Division != 1 {
		t.Fatalf("day 1: expected division 1 to buy, got %+v", records[1].Actions)
	}
	if len(records[2].Actions) != 1 {
		t.Fatalf("day 2: expected 1 action, got %d", len(records[2].Actions))
	}
	buy2, ok := records[2].Actions[0].(model.BuyAction)
	if !ok || buy2.Division != 2 {
		t.Fatalf("day 2: expected division 2 to buy, got %+v", records[2].Actions)
	}
	if buy2.Quantity != 54 {
		t.Errorf("day 2: quantity %d, want floor(5000/92) = 54", buy2.Quantity)
	}
}

func TestRun_OneBuyPerDay(t *testing.T) {
	// A deep dip with every division empty still produces a single fill.
	cfg := safeConfig(10000, 5)
	records, err := Run(weekdaySeries(100, 90), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records[1].Actions) != 1 {
		t.Fatalf("expected exactly 1 action, got %d", len(records[1].Actions))
	}
	if records[1].TotalBuyQuantity == 0 {
		t.Error("expected a buy fill")
	}
	holding := 0
	for _, d := range records[1].Divisions {
		if d.Position != nil {
			holding++
		}
	}
	if holding != 1 {
		t.Errorf("expected exactly 1 holding division, got %d", holding)
	}
}

func TestRun_SkipsBuyBelowCashFloor(t *testing.T) {
	cfg := safeConfig(150, 2) // 75 per division, under the 100 floor
	records, err := Run(weekdaySeries(100, 90, 80), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, rec := range records {
		if len(rec.Actions) != 0 {
			t.Errorf("day %d: expected no actions with cash under the floor", i)
		}
	}
}

func TestRun_RejectsBuyWhenCommissionUnaffordable(t *testing.T) {
	// Cash exactly divisible by the close: the whole-cash notional passes
	// the quantity check but leaves nothing for the commission, so the
	// order is dropped without a partial fill.
	cfg := safeConfig(10000, 1)
	records, err := Run(weekdaySeries(20.83, 20), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records[1].Actions) != 0 {
		t.Fatalf("expected no actions, got %+v", records[1].Actions)
	}
	if records[1].Divisions[0].Status() != model.StatusEmpty {
		t.Error("division must stay EMPTY after the rejected order")
	}
	if !approx(records[1].TotalAssets, 10000) {
		t.Errorf("total assets %.4f, want untouched 10000", records[1].TotalAssets)
	}
	if records[1].TotalBuyQuantity != 0 {
		t.Errorf("buy quantity %d, want 0", records[1].TotalBuyQuantity)
	}
}

func TestRun_SkipsBuyWhenNoWholeShareAffordable(t *testing.T) {
	cfg := safeConfig(150, 1)
	records, err := Run(weekdaySeries(200, 190), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records[1].Actions) != 0 {
		t.Errorf("expected no fill when cash buys zero whole shares, got %+v", records[1].Actions)
	}
}

func TestRun_StopLossAfterHoldingLimit(t *testing.T) {
	cfg := model.SimulationConfig{
		InitialCapital:  10000,
		Divisions:       1,
		Mode:            model.ModeAggressive, // 7 trading-day limit
		RebalancePeriod: 100,
	}
	closes := []float64{100, 94, 94, 94, 94, 94, 94, 94}
	records, err := Run(weekdaySeries(closes...), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := records[1].Actions[0].(model.BuyAction); !ok {
		t.Fatalf("day 1: expected BuyAction, got %+v", records[1].Actions)
	}
	for i := 2; i < 7; i++ {
		if len(records[i].Actions) != 0 {
			t.Errorf("day %d: expected no actions while holding, got %+v", i, records[i].Actions)
		}
	}

	// buy day counts as trading day 1, so day 7 is the 7th day held
	if len(records[7].Actions) != 1 {
		t.Fatalf("day 7: expected 1 action, got %d", len(records[7].Actions))
	}
	stop, ok := records[7].Actions[0].(model.StopLossAction)
	if !ok {
		t.Fatalf("day 7: expected StopLossAction, got %T", records[7].Actions[0])
	}
	if stop.Price != 94 {
		t.Errorf("stop loss fills at the close, got %.2f", stop.Price)
	}
	if stop.TradingDaysHeld != 7 {
		t.Errorf("trading days held %d, want 7", stop.TradingDaysHeld)
	}
	if stop.Profit >= 0 {
		t.Errorf("flat price minus two commissions should lose money, got %.4f", stop.Profit)
	}
	if records[7].Divisions[0].Status() != model.StatusEmpty {
		t.Error("day 7: division should be EMPTY after the stop loss")
	}
}

func TestRun_RebalanceSchedule(t *testing.T) {
	cfg := model.SimulationConfig{
		InitialCapital:  10000,
		Divisions:       2,
		Mode:            model.ModeSafe,
		RebalancePeriod: 2,
	}
	records, err := Run(weekdaySeries(100, 100, 100, 100, 100), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantRebalance := []bool{false, false, true, false, true}
	for i, rec := range records {
		if len(rec.Actions) != 0 {
			t.Errorf("day %d: a flat series must never trade, got %+v", i, rec.Actions)
		}
		if rec.RebalanceDay != wantRebalance[i] {
			t.Errorf("day %d: rebalance = %v, want %v", i, rec.RebalanceDay, wantRebalance[i])
		}
		if rec.RebalanceDay && !approx(rec.RebalanceAmount, 10000) {
			t.Errorf("day %d: rebalance pool %.2f, want 10000", i, rec.RebalanceAmount)
		}
	}
}

func TestRun_RebalanceEvensOutCash(t *testing.T) {
	cfg := model.SimulationConfig{
		InitialCapital:  10000,
		Divisions:       2,
		Mode:            model.ModeSafe,
		RebalancePeriod: 3,
	}
	// Division 1 buys on day 1 and sells on day 2 at a profit, skewing its
	// cash above division 2's. Day 3 pools and re-splits.
	records, err := Run(weekdaySeries(100, 96, 97, 97), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := records[3]
	if !rec.RebalanceDay {
		t.Fatal("day 3: expected a rebalance")
	}
	if !approx(rec.Divisions[0].Cash, rec.Divisions[1].Cash) {
		t.Errorf("day 3: expected even cash after rebalance, got %.4f / %.4f",
			rec.Divisions[0].Cash, rec.Divisions[1].Cash)
	}
	if !approx(rec.Divisions[0].Cash+rec.Divisions[1].Cash, rec.TotalAssets) {
		t.Errorf("day 3: cash sum %.4f != total assets %.4f",
			rec.Divisions[0].Cash+rec.Divisions[1].Cash, rec.TotalAssets)
	}
}

func TestRun_AutoModeFollowsMapAndCarriesForward(t *testing.T) {
	cfg := model.SimulationConfig{
		InitialCapital:  10000,
		Divisions:       2,
		Mode:            model.ModeAuto,
		RebalancePeriod: 100,
	}
	series := weekdaySeries(100, 100, 100, 100, 100)
	modes := map[string]model.Mode{
		series[2].DateKey(): model.ModeAggressive,
	}
	records, err := Run(series, cfg, modes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantModes := []model.Mode{
		model.ModeSafe, model.ModeSafe,
		model.ModeAggressive, model.ModeAggressive, model.ModeAggressive,
	}
	for i, rec := range records {
		if rec.Mode != wantModes[i] {
			t.Errorf("day %d: mode %s, want %s", i, rec.Mode, wantModes[i])
		}
	}
}

func TestRun_FixedModeIgnoresMap(t *testing.T) {
	cfg := safeConfig(10000, 2)
	series := weekdaySeries(100, 100, 100)
	modes := map[string]model.Mode{series[1].DateKey(): model.ModeAggressive}
	records, err := Run(series, cfg, modes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, rec := range records {
		if rec.Mode != model.ModeSafe {
			t.Errorf("day %d: mode %s, want safe", i, rec.Mode)
		}
	}
}

func TestRun_LedgerInvariants(t *testing.T) {
	cfg := model.SimulationConfig{
		InitialCapital:  10000,
		Divisions:       3,
		Mode:            model.ModeSafe,
		RebalancePeriod: 5,
	}
	closes := []float64{100, 96, 92, 95, 96.5, 93, 89, 94, 96, 97, 90, 91, 95, 98, 94}
	records, err := Run(weekdaySeries(closes...), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, rec := range records {
		if !approx(rec.TotalAssets, rec.TotalCash+rec.TotalValue) {
			t.Errorf("day %d: total assets %.6f != cash %.6f + value %.6f",
				i, rec.TotalAssets, rec.TotalCash, rec.TotalValue)
		}
		var holdings int
		var value float64
		for _, d := range rec.Divisions {
			if (d.Position == nil) != (d.Holdings() == 0) {
				t.Errorf("day %d div %d: position presence and holdings disagree", i, d.Number)
			}
			if d.Cash < 0 {
				t.Errorf("day %d div %d: negative cash %.6f", i, d.Number, d.Cash)
			}
			holdings += d.Holdings()
			value += float64(d.Holdings()) * rec.Close
		}
		if holdings != rec.TotalHoldings {
			t.Errorf("day %d: holdings sum %d != %d", i, holdings, rec.TotalHoldings)
		}
		if !approx(value, rec.TotalValue) {
			t.Errorf("day %d: value from holdings %.6f != %.6f", i, value, rec.TotalValue)
		}
		if rec.Drawdown > 1e-9 {
			t.Errorf("day %d: drawdown %.6f must not be positive", i, rec.Drawdown)
		}
	}
}

func TestRun_Deterministic(t *testing.T) {
	cfg := safeConfig(10000, 3)
	closes := []float64{100, 96, 92, 95, 96.5, 93, 89, 94, 96, 97}
	a, err := Run(weekdaySeries(closes...), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Run(weekdaySeries(closes...), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range a {
		if a[i].TotalAssets != b[i].TotalAssets || len(a[i].Actions) != len(b[i].Actions) {
			t.Fatalf("day %d: runs diverge (%.6f vs %.6f)", i, a[i].TotalAssets, b[i].TotalAssets)
		}
	}
}

func TestProcessDay_DoesNotMutateInput(t *testing.T) {
	cfg := safeConfig(10000, 2)
	state := InitialState(cfg)
	before := state.Divisions[0].Cash

	series := weekdaySeries(100, 96)
	ProcessDay(state, cfg, nil, series[1], 100, 1)

	if state.Divisions[0].Cash != before {
		t.Error("ProcessDay must not mutate the input state")
	}
	if state.NextBuy != 0 {
		t.Error("ProcessDay must not advance the caller's pointer")
	}
}

func TestTodaySignals_ProposalOnly(t *testing.T) {
	cfg := safeConfig(10000, 2)
	state := InitialState(cfg)
	date := weekdaySeries(100)[0].Date

	buys, sells := TodaySignals(state.Divisions, state.NextBuy, model.ModeSafe, 96, 100, date)
	if len(buys) != 1 || len(sells) != 0 {
		t.Fatalf("expected 1 buy and 0 sells, got %d / %d", len(buys), len(sells))
	}
	if state.Divisions[0].Position != nil {
		t.Error("proposal evaluation must not open positions")
	}
}

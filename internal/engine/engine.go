// Package engine implements the daily capital-division simulation: a
// deterministic fold over an ordered close-price series that produces one
// ledger record per day.
package engine

import (
	"fmt"

	"SplitSentinel/internal/division"
	"SplitSentinel/internal/model"
)

// State is everything the simulation carries from one day to the next: the N
// division portfolios, the round-robin buy pointer, the mode currently in
// effect and the running asset peak. It is an explicit value threaded through
// ProcessDay so scenario sweeps can run side by side.
type State struct {
	Divisions  []model.DivisionPortfolio
	NextBuy    int // 0-based index of the only division allowed to buy today
	ActiveMode model.Mode
	PeakAssets float64
}

// InitialState seeds the day-zero state for a validated config.
func InitialState(cfg model.SimulationConfig) State {
	activeMode := model.ModeSafe
	if cfg.Mode == model.ModeAggressive {
		activeMode = model.ModeAggressive
	}
	return State{
		Divisions:  division.Initialize(cfg),
		NextBuy:    0,
		ActiveMode: activeMode,
		PeakAssets: cfg.InitialCapital,
	}
}

// Run replays the whole series and returns one ledger record per input day.
// modes is the optional date-to-mode map for ModeAuto; dates without an entry
// retain the mode last in effect. An empty series yields an empty ledger.
func Run(series []model.PricePoint, cfg model.SimulationConfig, modes map[string]model.Mode) ([]model.DailyLedgerRecord, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("simulation config: %w", err)
	}
	if len(series) == 0 {
		return []model.DailyLedgerRecord{}, nil
	}

	state := InitialState(cfg)
	records := make([]model.DailyLedgerRecord, 0, len(series))

	for i, day := range series {
		prevClose := day.Close
		if i > 0 {
			prevClose = series[i-1].Close
		}
		var record model.DailyLedgerRecord
		state, record = ProcessDay(state, cfg, modes, day, prevClose, i)
		records = append(records, record)
	}
	return records, nil
}

// ProcessDay advances the simulation by one day: valuation, rebalance check,
// per-division signal evaluation, netting, execution and ledger aggregation.
// The input state is not mutated.
func ProcessDay(state State, cfg model.SimulationConfig, modes map[string]model.Mode, day model.PricePoint, prevClose float64, dayIndex int) (State, model.DailyLedgerRecord) {
	next := State{
		Divisions:  model.CloneDivisions(state.Divisions),
		NextBuy:    state.NextBuy,
		ActiveMode: state.ActiveMode,
		PeakAssets: state.PeakAssets,
	}

	next.ActiveMode = syncMode(cfg, modes, next.ActiveMode, day.DateKey())
	params := model.ParamsFor(next.ActiveMode)

	division.UpdateValuations(next.Divisions, day.Close, prevClose, day.Date, params)

	rebalanceDay := dayIndex > 0 && dayIndex%cfg.RebalancePeriod == 0
	var rebalanceAmount float64
	if rebalanceDay {
		rebalanceAmount = division.Rebalance(next.Divisions, day.Close)
		division.UpdateValuations(next.Divisions, day.Close, prevClose, day.Date, params)
	}

	var (
		actions      []model.DivisionAction
		totalBuyQty  int
		totalSellQty int
		realizedPL   float64
		boughtToday  bool
	)

	for i := range next.Divisions {
		d := &next.Divisions[i]

		sellSig := checkSellSignal(d, day.Close, params)

		var buySig *signal
		if d.Position == nil && !boughtToday {
			buySig = checkBuySignal(d, i, next.NextBuy, day.Close, prevClose, params)
		}

		net, shouldBuy, shouldSell := netSignals(buySig, sellSig)
		if net == nil {
			continue
		}
		actions = append(actions, net.toAction(d.Number))

		switch {
		case net.kind == model.ActionHold:
			// cancelled out, no trade
		case shouldBuy && shouldSell:
			// net buy: close the old position first, then open the new one
			executeSell(d, sellSig)
			executeBuy(d, net, day.Date)
			totalBuyQty += net.qty
			totalSellQty += sellSig.qty
			realizedPL += sellSig.profit
			boughtToday = true
			next.NextBuy = (next.NextBuy + 1) % cfg.Divisions
		case shouldSell:
			totalSellQty += net.qty
			realizedPL += net.profit
			executeSell(d, net)
		case shouldBuy:
			totalBuyQty += net.qty
			boughtToday = true
			next.NextBuy = (next.NextBuy + 1) % cfg.Divisions
			executeBuy(d, net, day.Date)
		}
	}

	// post-trade revaluation so the snapshot and totals reflect today's fills
	division.UpdateValuations(next.Divisions, day.Close, prevClose, day.Date, params)

	var totalCash, totalValue float64
	var totalHoldings int
	for i := range next.Divisions {
		totalCash += next.Divisions[i].Cash
		totalHoldings += next.Divisions[i].Holdings()
		totalValue += next.Divisions[i].CurrentValue
	}
	totalAssets := totalCash + totalValue

	if totalAssets > next.PeakAssets {
		next.PeakAssets = totalAssets
	}
	drawdown := -(next.PeakAssets - totalAssets) / next.PeakAssets * 100

	changeRate := 0.0
	if prevClose != 0 {
		changeRate = (day.Close - prevClose) / prevClose * 100
	}

	record := model.DailyLedgerRecord{
		Date:              day.Date,
		Close:             day.Close,
		PrevClose:         prevClose,
		ChangeRate:        changeRate,
		Mode:              next.ActiveMode,
		Actions:           actions,
		Divisions:         model.CloneDivisions(next.Divisions),
		TotalBuyQuantity:  totalBuyQty,
		TotalSellQuantity: totalSellQty,
		NetQuantity:       abs(totalBuyQty - totalSellQty),
		DailyRealizedPL:   realizedPL,
		TotalCash:         totalCash,
		TotalHoldings:     totalHoldings,
		TotalValue:        totalValue,
		TotalAssets:       totalAssets,
		ReturnRate:        (totalAssets - cfg.InitialCapital) / cfg.InitialCapital * 100,
		Drawdown:          drawdown,
		RebalanceDay:      rebalanceDay,
		RebalanceAmount:   rebalanceAmount,
	}
	return next, record
}

func syncMode(cfg model.SimulationConfig, modes map[string]model.Mode, current model.Mode, dateKey string) model.Mode {
	if cfg.Mode != model.ModeAuto {
		return cfg.Mode
	}
	if m, ok := modes[dateKey]; ok {
		return m
	}
	return current
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Package mode turns weekly oscillator readings into the safe/aggressive
// trading mode that governs buy and sell thresholds.
package mode

import (
	"fmt"

	"SplitSentinel/internal/calculator"
	"SplitSentinel/internal/model"
)

// Resolve decides the trading mode from the two most recent weekly RSI
// readings. Rules are checked in priority order; the first match wins.
func Resolve(lastRSI, prevRSI float64) (model.Mode, string) {
	if !model.HasRSI(lastRSI) || !model.HasRSI(prevRSI) {
		return model.ModeSafe, "insufficient RSI data - safe mode"
	}

	rising := lastRSI > prevRSI
	falling := lastRSI < prevRSI
	change := lastRSI - prevRSI

	if falling {
		return model.ModeSafe,
			fmt.Sprintf("RSI falling (%.1f → %.1f, %.1f)", prevRSI, lastRSI, change)
	}
	if prevRSI >= 50 && lastRSI < 50 {
		return model.ModeSafe,
			fmt.Sprintf("RSI crossed below 50 (%.1f → %.1f)", prevRSI, lastRSI)
	}
	if lastRSI > 65 {
		return model.ModeSafe,
			fmt.Sprintf("RSI overbought (%.1f)", lastRSI)
	}
	if rising {
		return model.ModeAggressive,
			fmt.Sprintf("RSI rising (%.1f → %.1f, +%.1f)", prevRSI, lastRSI, change)
	}
	if prevRSI < 50 && lastRSI >= 50 {
		return model.ModeAggressive,
			fmt.Sprintf("RSI crossed above 50 (%.1f → %.1f)", prevRSI, lastRSI)
	}
	if lastRSI < 35 && rising {
		return model.ModeAggressive,
			fmt.Sprintf("RSI oversold rebound (%.1f → %.1f)", prevRSI, lastRSI)
	}

	return model.ModeSafe, fmt.Sprintf("default safe mode (RSI: %.1f)", lastRSI)
}

// WeeklyDecision computes the latest weekly mode decision for a daily series.
func WeeklyDecision(points []model.PricePoint, period int) (model.WeeklyModeDecision, error) {
	weekly, err := calculator.WeeklyRSISeries(points, period)
	if err != nil {
		return model.WeeklyModeDecision{}, err
	}
	if len(weekly) < 2 {
		return model.WeeklyModeDecision{
			Mode:    model.ModeSafe,
			Reason:  "insufficient weekly data - safe mode",
			LastRSI: model.NoRSI,
			PrevRSI: model.NoRSI,
		}, nil
	}

	last := weekly[len(weekly)-1]
	prev := weekly[len(weekly)-2]
	m, reason := Resolve(last.RSI, prev.RSI)

	return model.WeeklyModeDecision{
		Mode:         m,
		Reason:       reason,
		LastRSI:      last.RSI,
		PrevRSI:      prev.RSI,
		LastDate:     last.Date,
		PrevDate:     prev.Date,
		HaveReadings: true,
	}, nil
}

// BuildModeMap resolves the mode once per available week and keys each
// decision by its weekly sample date. The simulation engine carries the most
// recent entry forward across the days in between, so dates without an entry
// simply retain the mode last in effect.
func BuildModeMap(points []model.PricePoint, period int) (map[string]model.Mode, error) {
	weekly, err := calculator.WeeklyRSISeries(points, period)
	if err != nil {
		return nil, err
	}

	modes := make(map[string]model.Mode, len(weekly))
	for _, w := range weekly {
		if !model.HasRSI(w.PrevRSI) {
			continue
		}
		m, _ := Resolve(w.RSI, w.PrevRSI)
		modes[w.Date.Format("2006-01-02")] = m
	}
	return modes, nil
}

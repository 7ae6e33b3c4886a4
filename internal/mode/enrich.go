package mode

import (
	"SplitSentinel/internal/calculator"
	"SplitSentinel/internal/model"
)

// SignalStrengthFor buckets an RSI value into a qualitative strength label.
func SignalStrengthFor(rsi float64) model.SignalStrength {
	if !model.HasRSI(rsi) {
		return model.SignalStrength{Strength: 50, Label: "neutral"}
	}
	switch {
	case rsi >= 70:
		return model.SignalStrength{Strength: 90, Label: "strongly overbought"}
	case rsi >= 65:
		return model.SignalStrength{Strength: 75, Label: "overbought"}
	case rsi >= 55:
		return model.SignalStrength{Strength: 60, Label: "mildly overbought"}
	case rsi >= 45:
		return model.SignalStrength{Strength: 50, Label: "neutral"}
	case rsi >= 35:
		return model.SignalStrength{Strength: 40, Label: "mildly oversold"}
	case rsi >= 30:
		return model.SignalStrength{Strength: 25, Label: "oversold"}
	default:
		return model.SignalStrength{Strength: 10, Label: "strongly oversold"}
	}
}

// EnrichDaily computes the daily RSI series and attaches the mode that the
// weekly resolver puts in effect on each date, carried forward between weekly
// sample dates.
func EnrichDaily(points []model.PricePoint, period int) ([]model.RSISample, error) {
	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p.Close
	}
	daily, err := calculator.RSISeries(closes, period)
	if err != nil {
		return nil, err
	}

	weekly, err := calculator.WeeklyRSISeries(points, period)
	if err != nil {
		return nil, err
	}
	weeklyByDate := make(map[string]model.WeeklyRSIPoint, len(weekly))
	for _, w := range weekly {
		weeklyByDate[w.Date.Format("2006-01-02")] = w
	}

	currentMode := model.ModeSafe
	currentReason := "initial - safe mode"

	samples := make([]model.RSISample, len(points))
	for i, p := range points {
		if w, ok := weeklyByDate[p.DateKey()]; ok && model.HasRSI(w.PrevRSI) {
			currentMode, currentReason = Resolve(w.RSI, w.PrevRSI)
		}

		prev := model.NoRSI
		if i > 0 {
			prev = daily[i-1]
		}
		samples[i] = model.RSISample{
			Date:       p.Date,
			Price:      p.Close,
			RSI:        daily[i],
			PrevRSI:    prev,
			Mode:       currentMode,
			ModeReason: currentReason,
			Strength:   SignalStrengthFor(daily[i]),
		}
	}
	return samples, nil
}

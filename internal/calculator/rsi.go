package calculator

import (
	"errors"
	"math"

	"SplitSentinel/internal/model"
)

// DefaultRSIPeriod is the look-back window, measured in days for the daily
// series and in weeks for the resampled one.
const DefaultRSIPeriod = 14

// RSISeries computes the oscillator value for every index of an ordered close
// series using the simple average of trailing gains and losses.
//
// Indexes below period have no value (model.NoRSI). If the whole series is
// shorter than period+1 points, every point gets the neutral value 50 instead.
// Values are rounded to 2 decimals and always fall inside [0, 100].
func RSISeries(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}

	out := make([]float64, len(closes))

	if len(closes) < period+1 {
		for i := range out {
			out[i] = 50.0
		}
		return out, nil
	}

	for i := range closes {
		if i < period {
			out[i] = model.NoRSI
			continue
		}

		var gains, losses float64
		for j := i - period + 1; j <= i; j++ {
			change := closes[j] - closes[j-1]
			if change > 0 {
				gains += change
			} else {
				losses -= change // make positive
			}
		}

		avgGain := gains / float64(period)
		avgLoss := losses / float64(period)

		if avgLoss == 0 {
			out[i] = 100.0
			continue
		}
		rs := avgGain / avgLoss
		out[i] = round2(100.0 - 100.0/(1.0+rs))
	}

	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

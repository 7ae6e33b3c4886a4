package calculator

import (
	"time"

	"SplitSentinel/internal/model"
)

// WeeklyCloses resamples a daily series to one point per ISO calendar week:
// the Friday close if the week has one, otherwise the week's last available
// close. Input must be ordered ascending by date.
func WeeklyCloses(points []model.PricePoint) []model.PricePoint {
	if len(points) == 0 {
		return nil
	}

	type weekGroup struct {
		friday *model.PricePoint
		last   model.PricePoint
	}

	var (
		weekly  []model.PricePoint
		current weekGroup
		curYear int
		curWeek int
		started bool
	)

	flush := func() {
		if current.friday != nil {
			weekly = append(weekly, *current.friday)
		} else {
			weekly = append(weekly, current.last)
		}
	}

	for i := range points {
		p := points[i]
		y, w := p.Date.ISOWeek()
		if !started || y != curYear || w != curWeek {
			if started {
				flush()
			}
			current = weekGroup{}
			curYear, curWeek = y, w
			started = true
		}
		current.last = p
		if p.Date.Weekday() == time.Friday {
			fp := p
			current.friday = &fp
		}
	}
	flush()

	return weekly
}

// WeeklyRSISeries runs the identical oscillator math over the weekly
// resampled closes, with the period now measured in weeks.
//
// With fewer than period+1 weeks the degraded-data policy applies: every
// week gets the neutral value 50 (PrevRSI undefined only for the first week).
func WeeklyRSISeries(points []model.PricePoint, period int) ([]model.WeeklyRSIPoint, error) {
	weekly := WeeklyCloses(points)
	if len(weekly) == 0 {
		return nil, nil
	}

	closes := make([]float64, len(weekly))
	for i, p := range weekly {
		closes[i] = p.Close
	}

	values, err := RSISeries(closes, period)
	if err != nil {
		return nil, err
	}

	out := make([]model.WeeklyRSIPoint, len(weekly))
	for i, p := range weekly {
		prev := model.NoRSI
		if i > 0 {
			prev = values[i-1]
		}
		out[i] = model.WeeklyRSIPoint{
			Date:    p.Date,
			Price:   p.Close,
			RSI:     values[i],
			PrevRSI: prev,
		}
	}
	return out, nil
}

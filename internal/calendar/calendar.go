// Package calendar provides weekday-only day counting and the flat
// proportional commission model. There is no holiday calendar; weekends are
// the only non-trading days.
package calendar

import "time"

// TradingDaysBetween counts weekdays from start to end inclusive.
// Callers must pass start <= end.
func TradingDaysBetween(start, end time.Time) int {
	start = truncateDay(start)
	end = truncateDay(end)

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

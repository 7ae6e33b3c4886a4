// Package collector supplies ordered daily close-price series from external
// sources. The simulation engine assumes strictly ascending, deduplicated
// dates; ValidateSeries enforces that contract before the engine runs.
package collector

import (
	"fmt"

	"SplitSentinel/internal/model"
)

// Fetcher retrieves daily closing prices for a symbol.
type Fetcher interface {
	FetchDailyCloses(symbol string, days int) ([]model.PricePoint, error)
	Name() string
}

// ValidateSeries rejects empty, unordered or duplicated date sequences.
func ValidateSeries(points []model.PricePoint) error {
	if len(points) == 0 {
		return fmt.Errorf("empty price series")
	}
	for i := 1; i < len(points); i++ {
		if !points[i].Date.After(points[i-1].Date) {
			return fmt.Errorf("price series not strictly ascending at %s (index %d)",
				points[i].Date.Format("2006-01-02"), i)
		}
	}
	for i, p := range points {
		if p.Close <= 0 {
			return fmt.Errorf("non-positive close %.4f at %s (index %d)",
				p.Close, p.Date.Format("2006-01-02"), i)
		}
	}
	return nil
}

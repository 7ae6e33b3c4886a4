package collector

import (
	"time"

	"SplitSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Points []model.PricePoint
	Price  float64
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyCloses(_ string, days int) ([]model.PricePoint, error) {
	if m.Points != nil {
		if days > 0 && len(m.Points) > days {
			return m.Points[len(m.Points)-days:], nil
		}
		return m.Points, nil
	}
	return generateMockCloses(m.Price, days), nil
}

func generateMockCloses(basePrice float64, count int) []model.PricePoint {
	points := make([]model.PricePoint, count)
	day := time.Now().UTC().AddDate(0, 0, -count)
	for i := 0; i < count; i++ {
		day = day.AddDate(0, 0, 1)
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 1)
		}
		points[i] = model.PricePoint{
			Date:  time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			Close: basePrice * (1 + float64(i-count/2)*0.001),
		}
	}
	return points
}

package calendar

import (
	"math"
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestTradingDaysBetween(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"same weekday", "2024-01-03", "2024-01-03", 1},
		{"monday to friday", "2024-01-01", "2024-01-05", 5},
		{"friday to monday skips weekend", "2024-01-05", "2024-01-08", 2},
		{"full two weeks", "2024-01-01", "2024-01-14", 10},
		{"saturday to sunday", "2024-01-06", "2024-01-07", 0},
		{"saturday to monday", "2024-01-06", "2024-01-08", 1},
		{"thirty calendar days", "2024-01-02", "2024-01-31", 22},
	}
	for _, tt := range tests {
		got := TradingDaysBetween(day(tt.start), day(tt.end))
		if got != tt.want {
			t.Errorf("%s: TradingDaysBetween(%s, %s) = %d, want %d",
				tt.name, tt.start, tt.end, got, tt.want)
		}
	}
}

func TestTradingDaysBetween_IgnoresClock(t *testing.T) {
	start := time.Date(2024, 1, 3, 23, 59, 0, 0, time.UTC)
	end := time.Date(2024, 1, 4, 0, 1, 0, 0, time.UTC)
	if got := TradingDaysBetween(start, end); got != 2 {
		t.Errorf("expected 2 trading days across midnight, got %d", got)
	}
}

func TestCommissionOn(t *testing.T) {
	amount := 10000.0
	want := amount * (CommissionRate + SECFeeRate)
	if got := CommissionOn(amount); math.Abs(got-want) > 1e-9 {
		t.Errorf("CommissionOn(%.0f) = %f, want %f", amount, got, want)
	}
	if CommissionOn(0) != 0 {
		t.Error("CommissionOn(0) should be zero")
	}
}

package model

import (
	"math"
	"time"
)

// NoRSI marks an undefined oscillator value (insufficient history at that
// index). Stored as NaN so arithmetic never silently uses it.
var NoRSI = math.NaN()

// HasRSI reports whether v is a defined oscillator value.
func HasRSI(v float64) bool { return !math.IsNaN(v) }

// SignalStrength buckets an RSI value for display.
type SignalStrength struct {
	Strength int // 0-100
	Label    string
}

// RSISample is one daily close enriched with the oscillator and the mode
// derived for that day.
type RSISample struct {
	Date       time.Time
	Price      float64
	RSI        float64 // NoRSI when undefined
	PrevRSI    float64
	Mode       Mode
	ModeReason string
	Strength   SignalStrength
}

// WeeklyRSIPoint is one weekly-resampled close with its oscillator value.
type WeeklyRSIPoint struct {
	Date    time.Time
	Price   float64
	RSI     float64 // NoRSI when undefined
	PrevRSI float64
}

// WeeklyModeDecision is the resolver output for the latest two weekly
// oscillator readings.
type WeeklyModeDecision struct {
	Mode         Mode
	Reason       string
	LastRSI      float64
	PrevRSI      float64
	LastDate     time.Time
	PrevDate     time.Time
	HaveReadings bool
}

package model

import "fmt"

// Mode names a set of buy/sell thresholds. ModeAuto defers the choice to the
// weekly RSI resolver.
type Mode string

const (
	ModeSafe       Mode = "safe"
	ModeAggressive Mode = "aggressive"
	ModeAuto       Mode = "auto"
)

// ParseMode validates a mode string from config or CLI flags.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSafe, ModeAggressive, ModeAuto:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (want safe, aggressive or auto)", s)
}

// ModeParams holds the per-mode trading thresholds.
type ModeParams struct {
	BuyTarget   float64 // adverse day-over-day move that triggers a buy (negative)
	SellTarget  float64 // profit rate over avg price that triggers a sell
	HoldingDays int     // max trading days before a forced stop-loss sell
}

var modeParams = map[Mode]ModeParams{
	ModeSafe:       {BuyTarget: -0.03, SellTarget: 0.002, HoldingDays: 30},
	ModeAggressive: {BuyTarget: -0.05, SellTarget: 0.025, HoldingDays: 7},
}

// ParamsFor returns the thresholds for a concrete trading mode.
// ModeAuto has no thresholds of its own; callers must resolve it first.
func ParamsFor(m Mode) ModeParams {
	return modeParams[m]
}

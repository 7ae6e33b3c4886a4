package model

import "time"

// DailyLedgerRecord is the immutable per-day output of the simulation engine.
// Divisions is a deep-copied post-trade snapshot.
type DailyLedgerRecord struct {
	Date       time.Time
	Close      float64
	PrevClose  float64
	ChangeRate float64 // percent vs previous close
	Mode       Mode    // mode in effect that day (safe or aggressive)

	Actions   []DivisionAction
	Divisions []DivisionPortfolio

	TotalBuyQuantity  int
	TotalSellQuantity int
	NetQuantity       int // |buys - sells|
	DailyRealizedPL   float64

	TotalCash     float64
	TotalHoldings int
	TotalValue    float64
	TotalAssets   float64
	ReturnRate    float64 // percent vs initial capital
	Drawdown      float64 // percent below the running asset peak, <= 0

	RebalanceDay    bool
	RebalanceAmount float64 // pooled assets on a rebalance day
}

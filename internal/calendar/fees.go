package calendar

// Flat per-trade fee fractions, applied to notional on every executed buy
// and sell, never compounded.
const (
	CommissionRate = 0.00044   // 0.044% brokerage commission
	SECFeeRate     = 0.0000278 // 0.00278% SEC fee
)

// TotalFeeRate is the one-way fee fraction (~0.047%).
func TotalFeeRate() float64 {
	return CommissionRate + SECFeeRate
}

// CommissionOn returns the fee for a trade of the given notional amount.
func CommissionOn(amount float64) float64 {
	return amount * TotalFeeRate()
}

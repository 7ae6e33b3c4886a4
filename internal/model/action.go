package model

// ActionKind tags a DivisionAction variant.
type ActionKind string

const (
	ActionBuy      ActionKind = "BUY"
	ActionSell     ActionKind = "SELL"
	ActionStopLoss ActionKind = "STOP_LOSS"
	ActionHold     ActionKind = "HOLD"
)

// DivisionAction is one executed or proposed event for one division on one
// day. Each variant carries exactly the fields its kind needs.
type DivisionAction interface {
	Kind() ActionKind
	DivisionNumber() int
	Describe() string
}

// BuyAction is a dip buy executed at today's close.
type BuyAction struct {
	Division   int
	Quantity   int
	Price      float64 // execution price (today's close)
	LimitPrice float64 // prevClose * (1 + buyTarget), shown for reference
	Amount     float64
	Commission float64
	Reason     string
}

func (a BuyAction) Kind() ActionKind { return ActionBuy }
func (a BuyAction) DivisionNumber() int { return a.Division }
func (a BuyAction) Describe() string { return a.Reason }

// SellAction is a target-profit sell executed at the limit price.
type SellAction struct {
	Division        int
	Quantity        int
	Price           float64 // execution price (the limit, not the close)
	LimitPrice      float64
	Amount          float64
	Commission      float64
	Profit          float64
	ProfitRate      float64 // percent
	TradingDaysHeld int
	Reason          string
}

func (a SellAction) Kind() ActionKind { return ActionSell }
func (a SellAction) DivisionNumber() int { return a.Division }
func (a SellAction) Describe() string { return a.Reason }

// StopLossAction is a forced sell at today's close after the holding-day
// limit, regardless of profit.
type StopLossAction struct {
	Division        int
	Quantity        int
	Price           float64 // today's close
	LimitPrice      float64
	Amount          float64
	Commission      float64
	Profit          float64
	ProfitRate      float64 // percent
	TradingDaysHeld int
	Reason          string
}

func (a StopLossAction) Kind() ActionKind { return ActionStopLoss }
func (a StopLossAction) DivisionNumber() int { return a.Division }
func (a StopLossAction) Describe() string { return a.Reason }

// HoldAction records a same-quantity buy/sell cancellation (netting to zero).
type HoldAction struct {
	Division int
	Price    float64
	Reason   string
}

func (a HoldAction) Kind() ActionKind { return ActionHold }
func (a HoldAction) DivisionNumber() int { return a.Division }
func (a HoldAction) Describe() string { return a.Reason }

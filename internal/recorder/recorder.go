package recorder

import (
	"time"

	"SplitSentinel/internal/model"
	"SplitSentinel/internal/stats"
)

// RunRecord describes one completed simulation run.
type RunRecord struct {
	Symbol  string
	Config  model.SimulationConfig
	Summary stats.Summary
	Start   time.Time
	End     time.Time
	Days    int
}

// SignalEvent records one live daily signal check from the watch daemon.
type SignalEvent struct {
	Date        time.Time
	Mode        model.Mode
	ModeReason  string
	Close       float64
	PrevClose   float64
	BuySignals  int
	SellSignals int
	Detail      string
}

// Recorder persists simulation output for later analysis.
type Recorder interface {
	RecordRun(run *RunRecord) (int64, error)
	RecordLedger(runID int64, records []model.DailyLedgerRecord) error
	RecordSignal(evt *SignalEvent) error
	Close() error
}

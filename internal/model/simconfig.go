package model

import "fmt"

// SimulationConfig is the immutable per-run configuration.
type SimulationConfig struct {
	InitialCapital  float64
	Divisions       int
	Mode            Mode
	RebalancePeriod int // trading days between full-portfolio rebalances
}

// Validate rejects configurations the engine must never run with.
func (c SimulationConfig) Validate() error {
	if c.InitialCapital <= 0 {
		return fmt.Errorf("initial capital must be positive, got %.2f", c.InitialCapital)
	}
	if c.Divisions < 1 {
		return fmt.Errorf("divisions must be >= 1, got %d", c.Divisions)
	}
	if c.RebalancePeriod < 1 {
		return fmt.Errorf("rebalance period must be >= 1, got %d", c.RebalancePeriod)
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"SplitSentinel/internal/calculator"
	"SplitSentinel/internal/engine"
	"SplitSentinel/internal/mode"
	"SplitSentinel/internal/model"
)

func newSignalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signal",
		Short: "Print today's division signals for the configured symbol",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			simCfg, err := cfg.SimulationConfig()
			if err != nil {
				return err
			}

			points, err := fetchSeries(cfg)
			if err != nil {
				return err
			}

			var modes map[string]model.Mode
			if simCfg.Mode == model.ModeAuto {
				if modes, err = mode.BuildModeMap(points, calculator.DefaultRSIPeriod); err != nil {
					return err
				}
			}
			records, err := engine.Run(points, simCfg, modes)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return fmt.Errorf("no trading days in series for %s", cfg.Data.Symbol)
			}

			decision, err := mode.WeeklyDecision(points, calculator.DefaultRSIPeriod)
			if err != nil {
				return err
			}
			printDailyRecord(cfg.Data.Symbol, records[len(records)-1], decision)
			return nil
		},
	}
}

func printDailyRecord(symbol string, rec model.DailyLedgerRecord, decision model.WeeklyModeDecision) {
	fmt.Printf("%s %s  close $%.2f (%+.2f%%)  mode %s\n",
		symbol, rec.Date.Format("2006-01-02"), rec.Close, rec.ChangeRate, rec.Mode)
	if decision.HaveReadings {
		fmt.Printf("weekly RSI %.1f -> %.1f: %s\n", decision.PrevRSI, decision.LastRSI, decision.Reason)
	} else {
		fmt.Printf("weekly RSI: %s\n", decision.Reason)
	}

	if len(rec.Actions) == 0 {
		fmt.Println("no actions today")
	} else {
		for _, act := range rec.Actions {
			fmt.Printf("  div %d  %-9s %s\n", act.DivisionNumber(), act.Kind(), act.Describe())
		}
	}

	fmt.Println("divisions:")
	for _, d := range rec.Divisions {
		if d.Position == nil {
			fmt.Printf("  #%d empty    cash $%.2f  buy limit $%.2f\n", d.Number, d.Cash, d.BuyLimitPrice)
			continue
		}
		fmt.Printf("  #%d holding  %d @ $%.2f (%+.1f%%)  held %d td  sell limit $%.2f\n",
			d.Number, d.Position.Holdings, d.Position.AvgPrice, d.UnrealizedPLRate,
			d.TradingDaysHeld, d.SellLimitPrice)
	}
	fmt.Printf("total assets $%.2f (%+.2f%%)  drawdown %.2f%%\n",
		rec.TotalAssets, rec.ReturnRate, rec.Drawdown)
	if rec.RebalanceDay {
		fmt.Printf("rebalanced: $%.2f per division\n", rec.RebalanceAmount)
	}
}

package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"SplitSentinel/internal/calculator"
	"SplitSentinel/internal/engine"
	"SplitSentinel/internal/export"
	"SplitSentinel/internal/mode"
	"SplitSentinel/internal/model"
	"SplitSentinel/internal/recorder"
	"SplitSentinel/internal/stats"
)

func newBacktestCmd() *cobra.Command {
	var (
		ledgerOut  string
		actionsOut string
		record     bool
	)

	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Replay the configured series through the division engine",
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
			summary := stats.Summarize(records)
			printSummary(cfg.Data.Symbol, simCfg, summary, records)

			if ledgerOut != "" {
				if err := writeCSV(ledgerOut, records, export.WriteLedger); err != nil {
					return err
				}
				log.Printf("[INFO] ledger exported: %s", ledgerOut)
			}
			if actionsOut != "" {
				if err := writeCSV(actionsOut, records, export.WriteActions); err != nil {
					return err
				}
				log.Printf("[INFO] actions exported: %s", actionsOut)
			}

			if record {
				rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
				if err != nil {
					return err
				}
				defer rec.Close()
				runID, err := rec.RecordRun(&recorder.RunRecord{
					Symbol:  cfg.Data.Symbol,
					Config:  simCfg,
					Summary: summary,
					Start:   records[0].Date,
					End:     records[len(records)-1].Date,
					Days:    len(records),
				})
				if err != nil {
					return fmt.Errorf("record run: %w", err)
				}
				if err := rec.RecordLedger(runID, records); err != nil {
					return fmt.Errorf("record ledger: %w", err)
				}
				log.Printf("[INFO] run %d recorded to %s", runID, cfg.Database.SQLitePath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerOut, "export", "", "write the daily ledger to a CSV file")
	cmd.Flags().StringVar(&actionsOut, "export-actions", "", "write per-division actions to a CSV file")
	cmd.Flags().BoolVar(&record, "record", false, "persist the run to SQLite")
	return cmd
}

func writeCSV(path string, records []model.DailyLedgerRecord, write func(w io.Writer, recs []model.DailyLedgerRecord) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return write(f, records)
}

func printSummary(symbol string, cfg model.SimulationConfig, sum stats.Summary, records []model.DailyLedgerRecord) {
	last := records[len(records)-1]
	fmt.Printf("Backtest %s: %s → %s (%d days)\n", symbol,
		records[0].Date.Format("2006-01-02"), last.Date.Format("2006-01-02"), len(records))
	fmt.Printf("Config: capital %.0f, %d divisions, mode %s, rebalance every %d days\n",
		cfg.InitialCapital, cfg.Divisions, cfg.Mode, cfg.RebalancePeriod)
	fmt.Printf("Final assets:   %12.2f (%+.2f%%)\n", last.TotalAssets, sum.FinalReturn)
	fmt.Printf("Max drawdown:   %12.2f%%\n", sum.MaxDrawdown)
	fmt.Printf("Trades:         %5d buys / %d sells (%d stop losses)\n",
		sum.BuyTrades, sum.SellTrades, sum.StopLosses)
	fmt.Printf("Win rate:       %12.1f%%  avg win %.2f / avg loss %.2f\n",
		sum.WinRate, sum.AvgWin, sum.AvgLoss)
	fmt.Printf("Commission:     %12.2f\n", sum.TotalCommission)
	fmt.Printf("Sharpe:         %12.2f\n", sum.SharpeRatio)
}

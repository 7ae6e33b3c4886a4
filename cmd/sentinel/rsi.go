package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"SplitSentinel/internal/calculator"
	"SplitSentinel/internal/mode"
	"SplitSentinel/internal/model"
)

func newRSICmd() *cobra.Command {
	var (
		period int
		weekly bool
		tail   int
	)

	cmd := &cobra.Command{
		Use:   "rsi",
		Short: "Print the daily or weekly RSI table with the active mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			points, err := fetchSeries(cfg)
			if err != nil {
				return err
			}

			if weekly {
				return printWeeklyRSI(points, period, tail)
			}
			return printDailyRSI(points, period, tail)
		},
	}

	cmd.Flags().IntVar(&period, "period", calculator.DefaultRSIPeriod, "RSI period")
	cmd.Flags().BoolVar(&weekly, "weekly", false, "show the weekly resample instead of daily values")
	cmd.Flags().IntVar(&tail, "tail", 20, "number of most recent rows to print")
	return cmd
}

func printDailyRSI(points []model.PricePoint, period, tail int) error {
	samples, err := mode.EnrichDaily(points, period)
	if err != nil {
		return err
	}
	fmt.Printf("%-12s %10s %7s  %-10s  %-20s %s\n",
		"date", "close", "rsi", "mode", "strength", "reason")
	for _, s := range tailSamples(samples, tail) {
		rsi := "-"
		if model.HasRSI(s.RSI) {
			rsi = fmt.Sprintf("%.2f", s.RSI)
		}
		fmt.Printf("%-12s %10.2f %7s  %-10s  %-20s %s\n",
			s.Date.Format("2006-01-02"), s.Price, rsi, s.Mode, s.Strength.Label, s.ModeReason)
	}
	return nil
}

func printWeeklyRSI(points []model.PricePoint, period, tail int) error {
	weekly, err := calculator.WeeklyRSISeries(points, period)
	if err != nil {
		return err
	}
	if tail > 0 && len(weekly) > tail {
		weekly = weekly[len(weekly)-tail:]
	}
	fmt.Printf("%-12s %10s %7s %7s  %s\n", "week", "close", "rsi", "prev", "mode")
	for _, w := range weekly {
		rsi, prev := "-", "-"
		if model.HasRSI(w.RSI) {
			rsi = fmt.Sprintf("%.2f", w.RSI)
		}
		if model.HasRSI(w.PrevRSI) {
			prev = fmt.Sprintf("%.2f", w.PrevRSI)
		}
		m := "-"
		if model.HasRSI(w.RSI) && model.HasRSI(w.PrevRSI) {
			resolved, _ := mode.Resolve(w.RSI, w.PrevRSI)
			m = string(resolved)
		}
		fmt.Printf("%-12s %10.2f %7s %7s  %s\n", w.Date.Format("2006-01-02"), w.Price, rsi, prev, m)
	}
	return nil
}

func tailSamples(samples []model.RSISample, n int) []model.RSISample {
	if n > 0 && len(samples) > n {
		return samples[len(samples)-n:]
	}
	return samples
}

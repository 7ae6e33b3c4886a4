package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"SplitSentinel/internal/collector"
	"SplitSentinel/internal/config"
	"SplitSentinel/internal/model"
)

var cfgPath string

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "sentinel",
		Short:         "Capital-division trading simulator and signal daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath(), "path to YAML config")

	root.AddCommand(newBacktestCmd())
	root.AddCommand(newSignalCmd())
	root.AddCommand(newRSICmd())
	root.AddCommand(newWatchCmd())

	if err := root.Execute(); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}

func defaultConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	if cfg.Data.Source == "csv" {
		return collector.NewCSVFetcher(cfg.Data.CSVPath)
	}
	return collector.NewYahooFetcher(cfg.Proxy)
}

func fetchSeries(cfg *config.Config) ([]model.PricePoint, error) {
	fetcher := newFetcher(cfg)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	points, err := fetcher.FetchDailyCloses(cfg.Data.Symbol, cfg.Data.LookbackDays)
	if err != nil {
		return nil, fmt.Errorf("fetch closes: %w", err)
	}
	if err := collector.ValidateSeries(points); err != nil {
		return nil, fmt.Errorf("series validation: %w", err)
	}
	return points, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"SplitSentinel/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Data struct {
		Source       string `yaml:"source"` // "yahoo" or "csv"
		Symbol       string `yaml:"symbol"`
		CSVPath      string `yaml:"csv_path"`
		LookbackDays int    `yaml:"lookback_days"`
	} `yaml:"data"`
	Simulation struct {
		InitialCapital  float64 `yaml:"initial_capital"`
		Divisions       int     `yaml:"divisions"`
		Mode            string  `yaml:"mode"` // safe | aggressive | auto
		RebalancePeriod int     `yaml:"rebalance_period"`
	} `yaml:"simulation"`
	Schedule struct {
		DailyCron  string `yaml:"daily_cron"`
		WeeklyCron string `yaml:"weekly_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_SYMBOL"); v != "" {
		cfg.Data.Symbol = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("INITIAL_CAPITAL"); v != "" {
		if capital, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Simulation.InitialCapital = capital
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Data.Source == "" {
		cfg.Data.Source = "yahoo"
	}
	if cfg.Data.Symbol == "" {
		cfg.Data.Symbol = "SOXL"
	}
	if cfg.Data.LookbackDays == 0 {
		cfg.Data.LookbackDays = 300
	}
	if cfg.Simulation.InitialCapital == 0 {
		cfg.Simulation.InitialCapital = 10000
	}
	if cfg.Simulation.Divisions == 0 {
		cfg.Simulation.Divisions = 5
	}
	if cfg.Simulation.Mode == "" {
		cfg.Simulation.Mode = string(model.ModeAuto)
	}
	if cfg.Simulation.RebalancePeriod == 0 {
		cfg.Simulation.RebalancePeriod = 10
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 30 16 * * 1-5" // after US market close
	}
	if cfg.Schedule.WeeklyCron == "" {
		cfg.Schedule.WeeklyCron = "0 0 18 * * 5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/split_sentinel.db"
	}

	return cfg, nil
}

// SimulationConfig converts the YAML section to the engine's config value.
func (c *Config) SimulationConfig() (model.SimulationConfig, error) {
	m, err := model.ParseMode(c.Simulation.Mode)
	if err != nil {
		return model.SimulationConfig{}, err
	}
	sim := model.SimulationConfig{
		InitialCapital:  c.Simulation.InitialCapital,
		Divisions:       c.Simulation.Divisions,
		Mode:            m,
		RebalancePeriod: c.Simulation.RebalancePeriod,
	}
	if err := sim.Validate(); err != nil {
		return model.SimulationConfig{}, err
	}
	return sim, nil
}

// Validate checks the fields every command needs. Simulation parameters fail
// fast here, before any engine step runs.
func (c *Config) Validate() error {
	if _, err := c.SimulationConfig(); err != nil {
		return err
	}
	switch c.Data.Source {
	case "yahoo":
		if c.Data.Symbol == "" {
			return fmt.Errorf("data.symbol is required for the yahoo source")
		}
	case "csv":
		if c.Data.CSVPath == "" {
			return fmt.Errorf("data.csv_path is required for the csv source")
		}
	default:
		return fmt.Errorf("unknown data.source %q (want yahoo or csv)", c.Data.Source)
	}
	return nil
}

// ValidateWatch additionally checks the fields the watch daemon needs.
func (c *Config) ValidateWatch() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required for watch")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required for watch")
	}
	return nil
}

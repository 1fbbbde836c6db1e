package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Tickers []model.TickerInfo `yaml:"tickers"`
	Data    struct {
		Provider  string `yaml:"provider"` // yahoo or csv
		CSVDir    string `yaml:"csv_dir"`
		FetchDays int    `yaml:"fetch_days"`
		Proxy     string `yaml:"proxy"`
	} `yaml:"data"`
	Paths struct {
		ModelsDir string `yaml:"models_dir"`
		LogsDir   string `yaml:"logs_dir"`
		StateDir  string `yaml:"state_dir"`
	} `yaml:"paths"`
	SMTP struct {
		Server   string `yaml:"server"`
		Port     int    `yaml:"port"`
		Sender   string `yaml:"sender"`
		Password string `yaml:"password"`
	} `yaml:"smtp"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	LogLevel string `yaml:"log_level"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
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
	if v := os.Getenv("SMTP_SERVER"); v != "" {
		cfg.SMTP.Server = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = port
		}
	}
	if v := os.Getenv("SENDER_EMAIL"); v != "" {
		cfg.SMTP.Sender = v
	}
	if v := os.Getenv("SENDER_PASSWORD"); v != "" {
		cfg.SMTP.Password = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Data.Proxy = v
	}
	if v := os.Getenv("FETCH_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.Data.FetchDays = days
		}
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("DASHBOARD_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	// Defaults
	if len(cfg.Tickers) == 0 {
		cfg.Tickers = DefaultTickers()
	}
	if cfg.Data.Provider == "" {
		cfg.Data.Provider = "yahoo"
	}
	if cfg.Data.CSVDir == "" {
		cfg.Data.CSVDir = "data"
	}
	if cfg.Data.FetchDays == 0 {
		// About 100 trading bars, comfortably past the 50-bar warm-up.
		cfg.Data.FetchDays = 150
	}
	if cfg.Paths.ModelsDir == "" {
		cfg.Paths.ModelsDir = "models"
	}
	if cfg.Paths.LogsDir == "" {
		cfg.Paths.LogsDir = "logs"
	}
	if cfg.Paths.StateDir == "" {
		cfg.Paths.StateDir = "data"
	}
	if cfg.SMTP.Server == "" {
		cfg.SMTP.Server = "smtp.gmail.com"
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 0 * * *"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9090"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if len(c.Tickers) == 0 {
		return fmt.Errorf("tickers must not be empty")
	}
	seen := make(map[string]bool, len(c.Tickers))
	for _, t := range c.Tickers {
		if t.Symbol == "" {
			return fmt.Errorf("ticker symbol must not be empty")
		}
		if seen[t.Symbol] {
			return fmt.Errorf("duplicate ticker symbol %q", t.Symbol)
		}
		seen[t.Symbol] = true
	}
	if c.Data.Provider != "yahoo" && c.Data.Provider != "csv" {
		return fmt.Errorf("data.provider must be yahoo or csv, got %q", c.Data.Provider)
	}
	if c.Data.FetchDays <= 0 {
		return fmt.Errorf("data.fetch_days must be positive")
	}
	return nil
}

// Lookup returns the registry entry for a symbol.
func (c *Config) Lookup(symbol string) (model.TickerInfo, bool) {
	for _, t := range c.Tickers {
		if t.Symbol == symbol {
			return t, true
		}
	}
	return model.TickerInfo{}, false
}

// Symbols returns all registry symbols in configured order.
func (c *Config) Symbols() []string {
	out := make([]string, len(c.Tickers))
	for i, t := range c.Tickers {
		out[i] = t.Symbol
	}
	return out
}

// SubscribersFile returns the path of the subscriber store document.
func (c *Config) SubscribersFile() string {
	return filepath.Join(c.Paths.StateDir, "subscribers.json")
}

// DefaultTickers is the built-in registry used when the config file
// does not declare one.
func DefaultTickers() []model.TickerInfo {
	return []model.TickerInfo{
		{Symbol: "AAPL", Name: "Apple Inc.", Sector: "Technology"},
		{Symbol: "TSLA", Name: "Tesla Inc.", Sector: "Consumer Cyclical"},
		{Symbol: "GOOGL", Name: "Alphabet Inc. (Class A)", Sector: "Technology"},
		{Symbol: "MSFT", Name: "Microsoft Corp.", Sector: "Technology"},
		{Symbol: "AMZN", Name: "Amazon.com Inc.", Sector: "Consumer Cyclical"},
		{Symbol: "NVDA", Name: "NVIDIA Corp.", Sector: "Technology"},
		{Symbol: "META", Name: "Meta Platforms Inc.", Sector: "Technology"},
		{Symbol: "JPM", Name: "JPMorgan Chase & Co.", Sector: "Financials"},
		{Symbol: "V", Name: "Visa Inc.", Sector: "Financials"},
		{Symbol: "JNJ", Name: "Johnson & Johnson", Sector: "Healthcare"},
	}
}

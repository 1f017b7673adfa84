package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvFile is loaded before environment overrides are applied, if it exists.
// Variables already set in the process environment win.
var EnvFile = ".env"

// SymbolConfig names one tracked ticker.
type SymbolConfig struct {
	Symbol  string `yaml:"symbol"`
	Name    string `yaml:"name"`
	Inverse bool   `yaml:"inverse"` // rising is bad news, e.g. VIX
}

// Config holds all application configuration.
type Config struct {
	AlphaVantage struct {
		BaseURL         string `yaml:"base_url"`
		APIKey          string `yaml:"api_key"`
		DailyOutputSize string `yaml:"daily_output_size"`
	} `yaml:"alpha_vantage"`
	Cache struct {
		Backend         string        `yaml:"backend"`
		SQLitePath      string        `yaml:"sqlite_path"`
		RedisAddr       string        `yaml:"redis_addr"`
		RedisDB         int           `yaml:"redis_db"`
		QuoteTTL        time.Duration `yaml:"quote_ttl"`
		HistoryTTL      time.Duration `yaml:"history_ttl"`
		FundamentalsTTL time.Duration `yaml:"fundamentals_ttl"`
	} `yaml:"cache"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		RunOnStart  bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Dashboard struct {
		Benchmark     string         `yaml:"benchmark"`
		Indices       []SymbolConfig `yaml:"indices"`
		International []SymbolConfig `yaml:"international"`
		Sectors       []SymbolConfig `yaml:"sectors"`
		SectorTrends  []SymbolConfig `yaml:"sector_trends"`
	} `yaml:"dashboard"`
	DataSource string `yaml:"data_source"` // alphavantage or mock
	Proxy      string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides, then defaults.
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

	if EnvFile != "" {
		if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", EnvFile, err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		cfg.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("ALPHAVANTAGE_BASE_URL"); v != "" {
		cfg.AlphaVantage.BaseURL = v
	}
	if v := os.Getenv("DATA_SOURCE"); v != "" {
		cfg.DataSource = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Cache.SQLitePath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Cache.RedisDB = db
		}
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("RUN_ON_START"); v != "" {
		cfg.Schedule.RunOnStart = v == "true"
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.DataSource == "" {
		cfg.DataSource = "alphavantage"
	}
	if cfg.AlphaVantage.DailyOutputSize == "" {
		cfg.AlphaVantage.DailyOutputSize = "compact"
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if cfg.Cache.SQLitePath == "" {
		cfg.Cache.SQLitePath = "data/dashboard_cache.db"
	}
	if cfg.Cache.RedisAddr == "" {
		cfg.Cache.RedisAddr = "localhost:6379"
	}
	if cfg.Cache.QuoteTTL == 0 {
		cfg.Cache.QuoteTTL = 5 * time.Minute
	}
	if cfg.Cache.HistoryTTL == 0 {
		cfg.Cache.HistoryTTL = 5 * time.Minute
	}
	if cfg.Cache.FundamentalsTTL == 0 {
		cfg.Cache.FundamentalsTTL = time.Hour
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */5 * * * *"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Dashboard.Benchmark == "" {
		cfg.Dashboard.Benchmark = "SPY"
	}
	if len(cfg.Dashboard.Indices) == 0 {
		cfg.Dashboard.Indices = []SymbolConfig{
			{Symbol: "SPY", Name: "S&P 500 ETF"},
			{Symbol: "DIA", Name: "Dow Jones Industrial Avg ETF"},
			{Symbol: "QQQ", Name: "Nasdaq-100 ETF"},
			{Symbol: "IWM", Name: "Russell 2000 ETF"},
		}
	}
	if len(cfg.Dashboard.International) == 0 {
		cfg.Dashboard.International = []SymbolConfig{
			{Symbol: "VGK", Name: "European Markets ETF"},
			{Symbol: "EWJ", Name: "Japan Markets ETF"},
			{Symbol: "VIX", Name: "Volatility Index", Inverse: true},
			{Symbol: "GLD", Name: "Gold ETF"},
		}
	}
	if len(cfg.Dashboard.Sectors) == 0 {
		cfg.Dashboard.Sectors = []SymbolConfig{
			{Symbol: "XLK", Name: "Technology"},
			{Symbol: "XLF", Name: "Financials"},
			{Symbol: "XLV", Name: "Healthcare"},
			{Symbol: "XLE", Name: "Energy"},
			{Symbol: "XLY", Name: "Consumer Discretionary"},
			{Symbol: "XLP", Name: "Consumer Staples"},
			{Symbol: "XLI", Name: "Industrials"},
			{Symbol: "XLB", Name: "Materials"},
			{Symbol: "XLU", Name: "Utilities"},
			{Symbol: "XLRE", Name: "Real Estate"},
		}
	}
	if len(cfg.Dashboard.SectorTrends) == 0 {
		cfg.Dashboard.SectorTrends = cfg.Dashboard.Sectors
		if len(cfg.Dashboard.SectorTrends) > 6 {
			cfg.Dashboard.SectorTrends = cfg.Dashboard.SectorTrends[:6]
		}
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	switch c.DataSource {
	case "alphavantage":
		if c.AlphaVantage.APIKey == "" {
			return fmt.Errorf("alpha_vantage.api_key is required")
		}
	case "mock":
	default:
		return fmt.Errorf("data_source must be alphavantage or mock, got %q", c.DataSource)
	}
	switch c.AlphaVantage.DailyOutputSize {
	case "compact", "full":
	default:
		return fmt.Errorf("alpha_vantage.daily_output_size must be compact or full, got %q", c.AlphaVantage.DailyOutputSize)
	}
	switch c.Cache.Backend {
	case "memory":
	case "sqlite":
		if c.Cache.SQLitePath == "" {
			return fmt.Errorf("cache.sqlite_path is required for the sqlite backend")
		}
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("cache.backend must be memory, sqlite or redis, got %q", c.Cache.Backend)
	}
	if c.Cache.QuoteTTL < 0 || c.Cache.HistoryTTL < 0 || c.Cache.FundamentalsTTL < 0 {
		return fmt.Errorf("cache TTLs must not be negative")
	}
	for _, group := range [][]SymbolConfig{
		c.Dashboard.Indices, c.Dashboard.International, c.Dashboard.Sectors, c.Dashboard.SectorTrends,
	} {
		for _, s := range group {
			if s.Symbol == "" {
				return fmt.Errorf("dashboard symbol entries need a symbol (name %q)", s.Name)
			}
		}
	}
	return nil
}

package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the assetfeed commands.
// Every field has a working default: the upstream sources are public and
// keyless, so a command runs with an empty environment.
type Config struct {
	// Fund family (TEFAS/BEFAS portal)
	TefasBaseURL string `mapstructure:"tefas_base_url"`
	TefasOrigin  string `mapstructure:"tefas_origin"`
	TefasReferer string `mapstructure:"tefas_referer"`

	// Market family (daily chart API)
	ChartBaseURL string `mapstructure:"chart_base_url"`

	// Crypto spot prices
	CoingeckoBaseURL string `mapstructure:"coingecko_base_url"`
	// CryptoIDs maps ticker symbols to CoinGecko ids. Entries here are
	// merged over the built-in table.
	CryptoIDs map[string]string `mapstructure:"crypto_ids"`

	// Batch pipeline tuning
	HTTPTimeoutSeconds int `mapstructure:"http_timeout_seconds"`
	ChunkDays          int `mapstructure:"chunk_days"`
	MaxWorkers         int `mapstructure:"max_workers"`

	// Name database files and their bootstrap sources
	MarketListCSV string `mapstructure:"market_list_csv"`
	ETFListCSV    string `mapstructure:"etf_list_csv"`
	TefasListCSV  string `mapstructure:"tefas_list_csv"`
	StockListURL  string `mapstructure:"stock_list_url"`
	ETFListURL    string `mapstructure:"etf_list_url"`

	// Output file for the pension fund dump
	PensionFundsFile string `mapstructure:"pension_funds_file"`
}

// HTTPTimeout returns the configured upstream timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// Load reads configuration from environment variables and an optional config
// file. Environment variables take precedence over config file values.
//
// Recognized environment variables:
//   - TEFAS_BASE_URL, TEFAS_ORIGIN, TEFAS_REFERER
//   - CHART_BASE_URL
//   - COINGECKO_BASE_URL
//   - HTTP_TIMEOUT_SECONDS, CHUNK_DAYS, MAX_WORKERS
//   - MARKET_LIST_CSV, ETF_LIST_CSV, TEFAS_LIST_CSV, STOCK_LIST_URL, ETF_LIST_URL
//   - PENSION_FUNDS_FILE
func Load() (*Config, error) {
	v := viper.New()

	v.AutomaticEnv()

	// Upstream defaults
	v.SetDefault("tefas_base_url", "https://www.tefas.gov.tr")
	v.SetDefault("tefas_origin", "https://www.tefas.gov.tr")
	v.SetDefault("tefas_referer", "https://www.tefas.gov.tr/TarihselVeriler.aspx")
	v.SetDefault("chart_base_url", "https://query1.finance.yahoo.com/v8/finance/chart")
	v.SetDefault("coingecko_base_url", "https://api.coingecko.com/api/v3")

	// Pipeline defaults
	v.SetDefault("http_timeout_seconds", 10)
	v.SetDefault("chunk_days", 90)
	v.SetDefault("max_workers", 10)

	// File and bootstrap defaults. The CSV names match what the calling
	// application already expects on disk.
	v.SetDefault("market_list_csv", "tum_piyasa_listesi.csv")
	v.SetDefault("etf_list_csv", "etf_listesi.csv")
	v.SetDefault("tefas_list_csv", "tefas_tr_listesi.csv")
	v.SetDefault("stock_list_url", "https://raw.githubusercontent.com/rreichel3/US-Stock-Symbols/main/stock/stock_list.csv")
	v.SetDefault("etf_list_url", "https://raw.githubusercontent.com/rreichel3/US-Stock-Symbols/main/etf/etf_list.csv")
	v.SetDefault("pension_funds_file", "befas_funds.json")

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.assetfeed")

	// Read config file (ignore if not found)
	_ = v.ReadInConfig()

	v.BindEnv("tefas_base_url", "TEFAS_BASE_URL")
	v.BindEnv("tefas_origin", "TEFAS_ORIGIN")
	v.BindEnv("tefas_referer", "TEFAS_REFERER")
	v.BindEnv("chart_base_url", "CHART_BASE_URL")
	v.BindEnv("coingecko_base_url", "COINGECKO_BASE_URL")
	v.BindEnv("http_timeout_seconds", "HTTP_TIMEOUT_SECONDS")
	v.BindEnv("chunk_days", "CHUNK_DAYS")
	v.BindEnv("max_workers", "MAX_WORKERS")
	v.BindEnv("market_list_csv", "MARKET_LIST_CSV")
	v.BindEnv("etf_list_csv", "ETF_LIST_CSV")
	v.BindEnv("tefas_list_csv", "TEFAS_LIST_CSV")
	v.BindEnv("stock_list_url", "STOCK_LIST_URL")
	v.BindEnv("etf_list_url", "ETF_LIST_URL")
	v.BindEnv("pension_funds_file", "PENSION_FUNDS_FILE")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}

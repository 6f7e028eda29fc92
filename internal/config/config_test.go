package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.TefasBaseURL != "https://www.tefas.gov.tr" {
		t.Errorf("TefasBaseURL = %q, want production default", cfg.TefasBaseURL)
	}
	if cfg.TefasReferer != "https://www.tefas.gov.tr/TarihselVeriler.aspx" {
		t.Errorf("TefasReferer = %q, want history page default", cfg.TefasReferer)
	}
	if cfg.ChartBaseURL == "" {
		t.Error("ChartBaseURL is empty")
	}
	if cfg.CoingeckoBaseURL == "" {
		t.Error("CoingeckoBaseURL is empty")
	}
	if cfg.ChunkDays != 90 {
		t.Errorf("ChunkDays = %d, want 90", cfg.ChunkDays)
	}
	if cfg.MaxWorkers != 10 {
		t.Errorf("MaxWorkers = %d, want 10", cfg.MaxWorkers)
	}
	if cfg.HTTPTimeoutSeconds != 10 {
		t.Errorf("HTTPTimeoutSeconds = %d, want 10", cfg.HTTPTimeoutSeconds)
	}
	if cfg.MarketListCSV != "tum_piyasa_listesi.csv" {
		t.Errorf("MarketListCSV = %q, want tum_piyasa_listesi.csv", cfg.MarketListCSV)
	}
	if cfg.ETFListCSV != "etf_listesi.csv" {
		t.Errorf("ETFListCSV = %q, want etf_listesi.csv", cfg.ETFListCSV)
	}
	if cfg.TefasListCSV != "tefas_tr_listesi.csv" {
		t.Errorf("TefasListCSV = %q, want tefas_tr_listesi.csv", cfg.TefasListCSV)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TEFAS_BASE_URL", "http://localhost:8080")
	t.Setenv("CHART_BASE_URL", "http://localhost:8081/chart")
	t.Setenv("MAX_WORKERS", "3")
	t.Setenv("CHUNK_DAYS", "30")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.TefasBaseURL != "http://localhost:8080" {
		t.Errorf("TefasBaseURL = %q, want env override", cfg.TefasBaseURL)
	}
	if cfg.ChartBaseURL != "http://localhost:8081/chart" {
		t.Errorf("ChartBaseURL = %q, want env override", cfg.ChartBaseURL)
	}
	if cfg.MaxWorkers != 3 {
		t.Errorf("MaxWorkers = %d, want 3", cfg.MaxWorkers)
	}
	if cfg.ChunkDays != 30 {
		t.Errorf("ChunkDays = %d, want 30", cfg.ChunkDays)
	}
	if got := cfg.HTTPTimeout(); got != 2*time.Second {
		t.Errorf("HTTPTimeout() = %v, want 2s", got)
	}
}

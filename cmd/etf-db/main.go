// Command etf-db rebuilds the ETF symbol-name CSV. Unlike the other
// commands it exits non-zero on failure, since the calling application
// treats an incomplete ETF bootstrap as fatal.
package main

import (
	"context"
	"log/slog"
	"os"

	"assetfeed/internal/cli"
	"assetfeed/internal/config"
	"assetfeed/internal/marketlist"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		cli.WriteError("configuration error")
		os.Exit(1)
	}

	fetcher := marketlist.NewFetcher(cfg.HTTPTimeout())

	etfs, err := fetcher.FetchList(context.Background(), cfg.ETFListURL, "ETF")
	if err != nil {
		slog.Error("failed to download ETF list", "url", cfg.ETFListURL, "error", err)
		cli.WriteError("Could not download ETF list")
		os.Exit(1)
	}

	if err := marketlist.WriteCSV(cfg.ETFListCSV, etfs); err != nil {
		slog.Error("failed to write ETF list", "path", cfg.ETFListCSV, "error", err)
		cli.WriteError("Could not write %s", cfg.ETFListCSV)
		os.Exit(1)
	}

	cli.WriteJSON(map[string]any{
		"count": len(etfs),
		"file":  cfg.ETFListCSV,
	})
}

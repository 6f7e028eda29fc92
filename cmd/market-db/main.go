// Command market-db rebuilds the combined stock + ETF symbol-name CSV the
// name lookup commands read. Each listing download is best effort: a failed
// list is logged and skipped, and the CSV is written from whatever loaded.
package main

import (
	"context"
	"log/slog"

	"assetfeed/internal/cli"
	"assetfeed/internal/config"
	"assetfeed/internal/marketlist"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		cli.WriteError("configuration error")
		return
	}

	fetcher := marketlist.NewFetcher(cfg.HTTPTimeout())
	ctx := context.Background()

	stocks, err := fetcher.FetchList(ctx, cfg.StockListURL, "Hisse")
	if err != nil {
		slog.Error("failed to download stock list", "url", cfg.StockListURL, "error", err)
	} else {
		slog.Info("downloaded stock list", "count", len(stocks))
	}

	etfs, err := fetcher.FetchList(ctx, cfg.ETFListURL, "ETF")
	if err != nil {
		slog.Error("failed to download ETF list", "url", cfg.ETFListURL, "error", err)
	} else {
		slog.Info("downloaded ETF list", "count", len(etfs))
	}

	merged := marketlist.Merge(stocks, etfs)
	if len(merged) == 0 {
		cli.WriteError("No listing data could be downloaded")
		return
	}

	if err := marketlist.WriteCSV(cfg.MarketListCSV, merged); err != nil {
		slog.Error("failed to write market list", "path", cfg.MarketListCSV, "error", err)
		cli.WriteError("Could not write %s", cfg.MarketListCSV)
		return
	}

	cli.WriteJSON(map[string]any{
		"count": len(merged),
		"file":  cfg.MarketListCSV,
	})
}

// Command asset-name resolves a symbol to its display name as {"name": s},
// using the local market list CSV and falling back to a live market source
// lookup for symbols the list does not cover.
package main

import (
	"context"
	"log/slog"
	"os"

	"assetfeed/internal/cli"
	"assetfeed/internal/config"
	"assetfeed/internal/market"
	"assetfeed/internal/namedb"
)

func main() {
	if len(os.Args) < 2 {
		cli.WriteError("No symbol provided")
		return
	}
	symbol := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		cli.WriteError("configuration error")
		return
	}

	db, err := namedb.Load(cfg.MarketListCSV)
	if err != nil {
		slog.Warn("market list unavailable, using live lookup only", "path", cfg.MarketListCSV, "error", err)
		db = namedb.Empty()
	} else {
		slog.Info("loaded market list", "path", cfg.MarketListCSV, "entries", db.Len())
	}

	client := market.NewClient(cfg.ChartBaseURL, cfg.HTTPTimeout())

	name, err := db.Lookup(context.Background(), symbol, client.Name)
	if err != nil {
		slog.Error("failed to resolve asset name", "symbol", symbol, "error", err)
		cli.WriteError("Could not resolve name for %s", symbol)
		return
	}

	cli.WriteJSON(map[string]string{"name": name})
}

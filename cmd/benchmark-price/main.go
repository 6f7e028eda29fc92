// Command benchmark-price prints the first daily close of a symbol on or
// after a given date as {"price": n}, used to value benchmarks from a
// portfolio's start date.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"assetfeed/internal/cli"
	"assetfeed/internal/config"
	"assetfeed/internal/market"
)

func main() {
	if len(os.Args) < 3 {
		cli.WriteError("Usage: benchmark-price <SYMBOL> <YYYY-MM-DD>")
		return
	}
	symbol := os.Args[1]

	date, err := time.Parse("2006-01-02", os.Args[2])
	if err != nil {
		slog.Error("invalid date argument", "date", os.Args[2], "error", err)
		cli.WriteError("Invalid date %q, expected YYYY-MM-DD", os.Args[2])
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		cli.WriteError("configuration error")
		return
	}

	client := market.NewClient(cfg.ChartBaseURL, cfg.HTTPTimeout())

	price, err := client.ClosingPriceSince(context.Background(), symbol, date)
	if err != nil {
		slog.Error("failed to fetch benchmark price", "symbol", symbol, "date", os.Args[2], "error", err)
		cli.WriteError("Price not found")
		return
	}

	cli.WriteJSON(map[string]float64{"price": price})
}

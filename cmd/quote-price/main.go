// Command quote-price prints the last price of a US stock or ETF as
// {"price": n}. The symbol is passed to the market source as given.
package main

import (
	"context"
	"log/slog"
	"math"
	"os"

	"assetfeed/internal/cli"
	"assetfeed/internal/config"
	"assetfeed/internal/market"
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

	client := market.NewClient(cfg.ChartBaseURL, cfg.HTTPTimeout())

	price, err := client.LastPrice(context.Background(), symbol)
	if err != nil {
		slog.Error("failed to fetch quote", "symbol", symbol, "error", err)
		cli.WriteError("Could not fetch price for %s", symbol)
		return
	}

	cli.WriteJSON(map[string]float64{"price": math.Round(price*100) / 100})
}

// Command crypto-price prints the USD spot price of a crypto ticker as
// {"price": n}.
package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"assetfeed/internal/cli"
	"assetfeed/internal/coingecko"
	"assetfeed/internal/config"
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

	client := coingecko.NewClient(cfg.CoingeckoBaseURL, cfg.HTTPTimeout(), cfg.CryptoIDs)

	price, err := client.Price(context.Background(), symbol)
	if err != nil {
		slog.Error("failed to fetch crypto price", "symbol", symbol, "error", err)
		cli.WriteError("Could not fetch price for %s", strings.ToUpper(symbol))
		return
	}

	cli.WriteJSON(map[string]float64{"price": price})
}

// Command stock-price prints the last price of a Borsa Istanbul stock as
// {"price": n}. The .IS market suffix is appended when absent.
package main

import (
	"context"
	"log/slog"
	"math"
	"os"
	"strings"

	"assetfeed/internal/cli"
	"assetfeed/internal/config"
	"assetfeed/internal/history"
	"assetfeed/internal/market"
)

func main() {
	if len(os.Args) < 2 {
		cli.WriteError("No symbol provided")
		return
	}
	symbol := history.NormalizeSymbol(os.Args[1], history.TypeStock)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		cli.WriteError("configuration error")
		return
	}

	client := market.NewClient(cfg.ChartBaseURL, cfg.HTTPTimeout())

	price, err := client.LastPrice(context.Background(), symbol)
	if err != nil {
		slog.Error("failed to fetch stock price", "symbol", symbol, "error", err)
		cli.WriteError("Could not fetch price for %s", strings.ToUpper(os.Args[1]))
		return
	}

	cli.WriteJSON(map[string]float64{"price": math.Round(price*100) / 100})
}

// Command currency-rate prints the current USD/TRY exchange rate as
// {"rate": n}.
package main

import (
	"context"
	"log/slog"
	"math"

	"assetfeed/internal/cli"
	"assetfeed/internal/config"
	"assetfeed/internal/market"
)

// usdTrySymbol is the market source's ticker for the dollar/lira pair.
const usdTrySymbol = "TRY=X"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		cli.WriteError("configuration error")
		return
	}

	client := market.NewClient(cfg.ChartBaseURL, cfg.HTTPTimeout())

	rate, err := client.LastPrice(context.Background(), usdTrySymbol)
	if err != nil {
		slog.Error("failed to fetch currency rate", "symbol", usdTrySymbol, "error", err)
		cli.WriteError("Could not fetch currency rate")
		return
	}

	cli.WriteJSON(map[string]float64{"rate": math.Round(rate*10000) / 10000})
}

// Command pension-price prints the latest price of a BEFAS pension fund as
// {"price": n}.
package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"assetfeed/internal/cli"
	"assetfeed/internal/config"
	"assetfeed/internal/tefas"
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

	client := tefas.NewClient(tefas.Config{
		BaseURL: cfg.TefasBaseURL,
		Origin:  cfg.TefasOrigin,
		Referer: cfg.TefasReferer,
		Timeout: cfg.HTTPTimeout(),
	})

	price, err := client.LatestPrice(context.Background(), symbol, tefas.KindPension)
	if err != nil {
		slog.Error("failed to fetch pension fund price", "symbol", symbol, "error", err)
		cli.WriteError("Could not fetch price for %s", strings.ToUpper(symbol))
		return
	}

	cli.WriteJSON(map[string]float64{"price": price})
}

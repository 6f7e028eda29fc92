// Command fund-name prints a TEFAS fund's title together with its latest
// price as {"name": s, "price": n}.
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

	row, err := client.LatestDetails(context.Background(), symbol, tefas.KindMutual)
	if err != nil {
		slog.Error("failed to fetch fund details", "symbol", symbol, "error", err)
		cli.WriteError("Could not fetch fund name for %s", strings.ToUpper(symbol))
		return
	}

	cli.WriteJSON(map[string]any{
		"name":  row.Title,
		"price": row.Price,
	})
}

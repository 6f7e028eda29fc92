// Command fund-day-price prints a fund's price on a specific date as
// {"price": n}, trying the mutual fund universe first and pension funds
// second, since the fund kind is not derivable from the code.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"assetfeed/internal/cli"
	"assetfeed/internal/config"
	"assetfeed/internal/tefas"
)

func main() {
	if len(os.Args) < 3 {
		cli.WriteError("Usage: fund-day-price <code> <YYYY-MM-DD>")
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

	client := tefas.NewClient(tefas.Config{
		BaseURL: cfg.TefasBaseURL,
		Origin:  cfg.TefasOrigin,
		Referer: cfg.TefasReferer,
		Timeout: cfg.HTTPTimeout(),
	})

	price, err := client.PriceOn(context.Background(), symbol, date)
	if err != nil {
		slog.Error("failed to fetch fund price", "symbol", symbol, "date", os.Args[2], "error", err)
		cli.WriteError("Price not found")
		return
	}

	cli.WriteJSON(map[string]float64{"price": price})
}

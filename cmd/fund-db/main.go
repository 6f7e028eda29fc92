// Command fund-db rebuilds the TEFAS fund symbol-name CSV the fund name
// lookups read, from the portal's full mutual fund universe.
package main

import (
	"context"
	"log/slog"

	"assetfeed/internal/cli"
	"assetfeed/internal/config"
	"assetfeed/internal/marketlist"
	"assetfeed/internal/tefas"
)

// lookbackDays is wide enough to catch funds that publish irregularly.
const lookbackDays = 30

func main() {
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

	funds, err := client.AllFunds(context.Background(), tefas.KindMutual, lookbackDays)
	if err != nil {
		slog.Error("failed to fetch fund list", "error", err)
		cli.WriteError("Could not fetch fund list")
		return
	}
	slog.Info("downloaded fund list", "count", len(funds))

	entries := make([]marketlist.Entry, 0, len(funds))
	for _, f := range funds {
		entries = append(entries, marketlist.Entry{
			Symbol: f.Code,
			Name:   f.Name,
			Kind:   "TEFAS",
		})
	}

	if err := marketlist.WriteCSV(cfg.TefasListCSV, entries); err != nil {
		slog.Error("failed to write fund list", "path", cfg.TefasListCSV, "error", err)
		cli.WriteError("Could not write %s", cfg.TefasListCSV)
		return
	}

	cli.WriteJSON(map[string]any{
		"count": len(entries),
		"file":  cfg.TefasListCSV,
	})
}

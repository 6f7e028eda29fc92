// Command pension-funds dumps the full BEFAS pension fund universe to a
// JSON file for the calling application and prints {"count": n}.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"assetfeed/internal/cli"
	"assetfeed/internal/config"
	"assetfeed/internal/tefas"
)

// lookbackDays is wide enough that every active fund has published at least
// one price inside the window.
const lookbackDays = 5

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

	funds, err := client.AllFunds(context.Background(), tefas.KindPension, lookbackDays)
	if err != nil {
		slog.Error("failed to fetch pension fund list", "error", err)
		cli.WriteError("Could not fetch pension fund list")
		return
	}

	if err := writeFunds(cfg.PensionFundsFile, funds); err != nil {
		slog.Error("failed to write pension fund list", "path", cfg.PensionFundsFile, "error", err)
		cli.WriteError("Could not write %s", cfg.PensionFundsFile)
		return
	}

	cli.WriteJSON(map[string]int{"count": len(funds)})
}

func writeFunds(path string, funds []tefas.Fund) error {
	data, err := json.MarshalIndent(funds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fund list: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Command asset-history fetches historical price series for a batch of
// portfolio assets. Input is a JSON array of requests, given as the first
// argument or piped on stdin; output is a JSON object keyed by symbol. A
// legacy three-argument mode (symbol, type, startDate) emits a plain array.
// The command always exits 0 and always writes valid JSON to stdout.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	"assetfeed/internal/cli"
	"assetfeed/internal/config"
	"assetfeed/internal/history"
	"assetfeed/internal/market"
	"assetfeed/internal/tefas"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		cli.WriteJSON(history.BatchResult{})
		return
	}

	funds := tefas.NewClient(tefas.Config{
		BaseURL: cfg.TefasBaseURL,
		Origin:  cfg.TefasOrigin,
		Referer: cfg.TefasReferer,
		Timeout: cfg.HTTPTimeout(),
	})
	mkt := market.NewClient(cfg.ChartBaseURL, cfg.HTTPTimeout())

	svc := history.NewService(funds, mkt,
		history.WithChunkDays(cfg.ChunkDays),
		history.WithMaxWorkers(cfg.MaxWorkers))

	ctx := context.Background()
	args := os.Args[1:]

	// Legacy single mode: three positional arguments instead of JSON.
	if len(args) >= 3 && !strings.HasPrefix(strings.TrimSpace(args[0]), "[") {
		runSingle(ctx, svc, history.Request{
			Symbol:    args[0],
			Type:      history.AssetType(args[1]),
			StartDate: args[2],
		})
		return
	}

	payload, ok := cli.ReadPayload(args)
	if !ok || strings.TrimSpace(payload) == "" {
		cli.WriteJSON([]history.Point{})
		return
	}

	var reqs []history.Request
	if err := json.Unmarshal([]byte(payload), &reqs); err != nil {
		slog.Error("malformed batch input", "error", err)
		cli.WriteJSON(history.BatchResult{})
		return
	}

	results := svc.FetchBatch(ctx, reqs)
	logOutcomes(results)
	cli.WriteJSON(history.BySymbol(results))
}

func runSingle(ctx context.Context, svc *history.Service, req history.Request) {
	res := svc.Fetch(ctx, req)
	logOutcomes([]history.Result{res})

	points := res.Points
	if points == nil {
		points = []history.Point{}
	}
	cli.WriteJSON(points)
}

func logOutcomes(results []history.Result) {
	for _, r := range results {
		for _, w := range r.Warnings {
			slog.Warn("partial fetch", "symbol", r.Symbol, "detail", w)
		}
		if r.Err != nil {
			slog.Error("fetch failed", "symbol", r.Symbol, "error", r.Err)
		}
	}
}

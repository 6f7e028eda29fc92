// Package tefas implements a client for the TEFAS fund data portal, which
// serves historical prices for Turkish mutual funds (fontip YAT) and pension
// funds (fontip EMK). The portal rejects requests without browser-like
// Origin/Referer headers, so both are part of the client configuration.
package tefas

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"resty.dev/v3"

	"assetfeed/internal/fetcher"
)

// FundKind selects the upstream fund universe.
type FundKind string

const (
	// KindMutual queries regular mutual funds (TEFAS).
	KindMutual FundKind = "YAT"
	// KindPension queries pension funds (BEFAS).
	KindPension FundKind = "EMK"
)

const (
	historyPath = "/api/DB/BindHistoryInfo"

	// Upstream form dates use day-first format.
	formDateLayout = "02.01.2006"

	// Lookback windows for latest-price queries. Mutual fund prices lag
	// over weekends; pension fund publication times vary more.
	mutualLookback  = 3
	pensionLookback = 5
)

// Config holds the connection settings for one client instance. Headers are
// per-client, never process-global, so concurrent clients cannot leak
// configuration into each other.
type Config struct {
	BaseURL string
	Origin  string
	Referer string
	Timeout time.Duration
}

// Row is one fund price observation.
type Row struct {
	Code  string
	Title string
	Date  time.Time
	Price float64
}

// Fund identifies one fund in the portal's universe.
type Fund struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Client fetches fund data from the portal.
type Client struct {
	client *resty.Client
}

// NewClient creates a Client from the given configuration.
func NewClient(cfg Config) *Client {
	c := fetcher.NewHTTPClient(cfg.BaseURL, cfg.Timeout).
		SetHeader("Origin", cfg.Origin).
		SetHeader("Referer", cfg.Referer)

	return &Client{client: c}
}

// historyResponse mirrors the BindHistoryInfo payload. TARIH arrives as a
// millisecond epoch, quoted or not depending on the row, so it is decoded
// per row.
type historyResponse struct {
	Data []struct {
		Date  json.RawMessage `json:"TARIH"`
		Code  string          `json:"FONKODU"`
		Title string          `json:"FONUNVAN"`
		Price float64         `json:"FIYAT"`
	} `json:"data"`
}

// History fetches price rows for one fund (or, with an empty symbol, for
// every fund) over [start, end]. Rows with unparseable dates are skipped.
func (c *Client) History(ctx context.Context, symbol string, kind FundKind, start, end time.Time) ([]Row, error) {
	var result historyResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"fontip":      string(kind),
			"sfontur":     "",
			"fonkod":      strings.ToUpper(symbol),
			"fongrup":     "",
			"bastarih":    start.Format(formDateLayout),
			"bittarih":    end.Format(formDateLayout),
			"fonturkod":   "",
			"fonunvantip": "",
		}).
		SetResult(&result).
		Post(historyPath)

	if err != nil {
		return nil, fetcher.NewNetworkError(err)
	}
	if !resp.IsSuccess() {
		return nil, fetcher.ClassifyHTTPError(resp.StatusCode())
	}

	rows := make([]Row, 0, len(result.Data))
	for _, d := range result.Data {
		date, err := parseEpochMillis(d.Date)
		if err != nil {
			continue
		}
		rows = append(rows, Row{
			Code:  d.Code,
			Title: d.Title,
			Date:  date,
			Price: d.Price,
		})
	}
	return rows, nil
}

// LatestPrice returns the most recent published price for a fund, rounded
// to six decimals, looking back a few days to cover weekends and holidays.
func (c *Client) LatestPrice(ctx context.Context, symbol string, kind FundKind) (float64, error) {
	row, err := c.latestRow(ctx, symbol, kind)
	if err != nil {
		return 0, err
	}
	return round(row.Price, 6), nil
}

// LatestDetails returns the most recent row for a fund, carrying its title
// alongside the price.
func (c *Client) LatestDetails(ctx context.Context, symbol string, kind FundKind) (Row, error) {
	return c.latestRow(ctx, symbol, kind)
}

func (c *Client) latestRow(ctx context.Context, symbol string, kind FundKind) (Row, error) {
	lookback := mutualLookback
	if kind == KindPension {
		lookback = pensionLookback
	}

	end := time.Now()
	start := end.AddDate(0, 0, -lookback)

	rows, err := c.History(ctx, symbol, kind, start, end)
	if err != nil {
		return Row{}, err
	}
	if len(rows) == 0 {
		return Row{}, fetcher.NewValidationError(fmt.Sprintf("no data for fund %s", strings.ToUpper(symbol)))
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows[len(rows)-1], nil
}

// PriceOn returns a fund's price on a specific date, trying the mutual fund
// universe first and falling back to pension funds. The fund kind is not
// derivable from the code alone.
func (c *Client) PriceOn(ctx context.Context, symbol string, date time.Time) (float64, error) {
	rows, err := c.History(ctx, symbol, KindMutual, date, date)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		rows, err = c.History(ctx, symbol, KindPension, date, date)
		if err != nil {
			return 0, err
		}
	}
	if len(rows) == 0 {
		return 0, fetcher.NewValidationError(fmt.Sprintf("no price for %s on %s", strings.ToUpper(symbol), date.Format("2006-01-02")))
	}
	return rows[0].Price, nil
}

// AllFunds lists every fund of the given kind seen in the portal over the
// last windowDays, deduplicated by code (latest row wins) and sorted by code.
func (c *Client) AllFunds(ctx context.Context, kind FundKind, windowDays int) ([]Fund, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -windowDays)

	rows, err := c.History(ctx, "", kind, start, end)
	if err != nil {
		return nil, err
	}

	latest := make(map[string]Row, len(rows))
	for _, row := range rows {
		if prev, ok := latest[row.Code]; !ok || row.Date.After(prev.Date) {
			latest[row.Code] = row
		}
	}

	funds := make([]Fund, 0, len(latest))
	for _, row := range latest {
		funds = append(funds, Fund{Code: row.Code, Name: row.Title})
	}
	sort.Slice(funds, func(i, j int) bool { return funds[i].Code < funds[j].Code })
	return funds, nil
}

func parseEpochMillis(raw json.RawMessage) (time.Time, error) {
	s := strings.Trim(string(raw), `"`)
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return time.UnixMilli(ms).UTC(), nil
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

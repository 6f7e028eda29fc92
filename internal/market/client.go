// Package market implements a client for the Yahoo v8 chart API, the market
// family source: daily closing prices for exchange-listed instruments,
// crypto pairs, and currency pairs.
package market

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"resty.dev/v3"

	"assetfeed/internal/fetcher"
)

const (
	// Browser user agent; the chart endpoint throttles default Go clients.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

	// lastPriceLookbackDays covers weekends and market holidays when the
	// meta price is missing and the last close is used instead.
	lastPriceLookbackDays = 5
)

// Bar is one daily price observation.
type Bar struct {
	Date  time.Time
	Close float64
}

// Client fetches daily chart data.
type Client struct {
	client *resty.Client
	now    func() time.Time
}

// NewClient creates a Client against the given chart API base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	c := fetcher.NewHTTPClient(baseURL, timeout).
		SetHeader("User-Agent", userAgent)

	return &Client{client: c, now: time.Now}
}

// chartResponse represents the v8 chart API payload.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Currency           string  `json:"currency"`
		Symbol             string  `json:"symbol"`
		LongName           string  `json:"longName"`
		ShortName          string  `json:"shortName"`
		RegularMarketPrice float64 `json:"regularMarketPrice"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

func (c *Client) chart(ctx context.Context, symbol string, start, end time.Time) (*chartResult, error) {
	var result chartResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"period1":  strconv.FormatInt(start.Unix(), 10),
			"period2":  strconv.FormatInt(end.Unix(), 10),
			"interval": "1d",
		}).
		SetResult(&result).
		Get("/" + url.PathEscape(symbol))

	if err != nil {
		return nil, fetcher.NewNetworkError(err)
	}
	if !resp.IsSuccess() {
		return nil, fetcher.ClassifyHTTPError(resp.StatusCode())
	}
	if result.Chart.Error != nil {
		return nil, fetcher.NewValidationError(fmt.Sprintf("chart API error for %s: %s", symbol, result.Chart.Error.Description))
	}
	if len(result.Chart.Result) == 0 {
		return nil, fetcher.NewValidationError(fmt.Sprintf("no chart data for %s", symbol))
	}
	return &result.Chart.Result[0], nil
}

// History fetches daily closing prices for symbol over [start, end].
// Sessions without a close (nulls in the payload) are skipped.
func (c *Client) History(ctx context.Context, symbol string, start, end time.Time) ([]Bar, error) {
	res, err := c.chart(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}
	if len(res.Indicators.Quote) == 0 {
		return nil, nil
	}

	closes := res.Indicators.Quote[0].Close
	bars := make([]Bar, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		bars = append(bars, Bar{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *closes[i],
		})
	}
	return bars, nil
}

// LastPrice returns the most recent price for symbol: the chart meta price
// when the API provides one, otherwise the last daily close in a trailing
// window.
func (c *Client) LastPrice(ctx context.Context, symbol string) (float64, error) {
	end := c.now()
	start := end.AddDate(0, 0, -lastPriceLookbackDays)

	res, err := c.chart(ctx, symbol, start, end)
	if err != nil {
		return 0, err
	}
	if res.Meta.RegularMarketPrice > 0 {
		return res.Meta.RegularMarketPrice, nil
	}

	var last *float64
	if len(res.Indicators.Quote) > 0 {
		for _, cl := range res.Indicators.Quote[0].Close {
			if cl != nil {
				last = cl
			}
		}
	}
	if last == nil {
		return 0, fetcher.NewValidationError(fmt.Sprintf("no price for %s", symbol))
	}
	return *last, nil
}

// ClosingPriceSince returns the first daily close on or after date, looking
// ahead a few days so weekends and holidays still resolve to a price.
func (c *Client) ClosingPriceSince(ctx context.Context, symbol string, date time.Time) (float64, error) {
	bars, err := c.History(ctx, symbol, date, date.AddDate(0, 0, 5))
	if err != nil {
		return 0, err
	}
	if len(bars) == 0 {
		return 0, fetcher.NewValidationError(fmt.Sprintf("no close for %s on or after %s", symbol, date.Format("2006-01-02")))
	}
	return bars[0].Close, nil
}

// Name returns the instrument's long name from the chart metadata, falling
// back to the short name.
func (c *Client) Name(ctx context.Context, symbol string) (string, error) {
	end := c.now()
	res, err := c.chart(ctx, symbol, end.AddDate(0, 0, -lastPriceLookbackDays), end)
	if err != nil {
		return "", err
	}
	if res.Meta.LongName != "" {
		return res.Meta.LongName, nil
	}
	if res.Meta.ShortName != "" {
		return res.Meta.ShortName, nil
	}
	return "", fetcher.NewValidationError(fmt.Sprintf("no name for %s", symbol))
}

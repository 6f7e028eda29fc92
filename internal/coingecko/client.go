// Package coingecko implements a client for the CoinGecko simple-price API.
// Ticker symbols are resolved to CoinGecko ids through a table owned by the
// client instance; there is no package-level registry.
package coingecko

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"resty.dev/v3"

	"assetfeed/internal/fetcher"
)

// DefaultIDs returns the built-in symbol to CoinGecko id table, covering the
// coins the portfolio application recognizes.
func DefaultIDs() map[string]string {
	return map[string]string{
		"BTC":   "bitcoin",
		"ETH":   "ethereum",
		"BNB":   "binancecoin",
		"XRP":   "ripple",
		"ADA":   "cardano",
		"DOGE":  "dogecoin",
		"SOL":   "solana",
		"MATIC": "matic-network",
		"LTC":   "litecoin",
		"XLM":   "stellar",
		"LINK":  "chainlink",
		"DOT":   "polkadot",
		"AVAX":  "avalanche-2",
		"UNI":   "uniswap",
		"ATOM":  "cosmos",
		"XMR":   "monero",
		"XEM":   "nem",
		"ZEC":   "zcash",
		"DASH":  "dash",
		"ETC":   "ethereum-classic",
		"BCH":   "bitcoin-cash",
		"BSV":   "bitcoin-sv",
		"TRX":   "tron",
		"VET":   "vechain",
		"THETA": "theta-token",
		"ICP":   "internet-computer",
		"FIL":   "filecoin",
		"NEAR":  "near",
		"ALGO":  "algorand",
		"MINA":  "mina-protocol",
	}
}

// Client fetches crypto spot prices.
type Client struct {
	client *resty.Client
	ids    map[string]string
}

// NewClient creates a Client. Entries in overrides are merged over the
// built-in id table, so tests and configuration can remap or extend it.
func NewClient(baseURL string, timeout time.Duration, overrides map[string]string) *Client {
	ids := DefaultIDs()
	for sym, id := range overrides {
		ids[strings.ToUpper(sym)] = id
	}

	return &Client{
		client: fetcher.NewHTTPClient(baseURL, timeout),
		ids:    ids,
	}
}

// Price returns the USD spot price for a crypto ticker, rounded to two
// decimals. Symbols missing from the id table fail without a network call.
func (c *Client) Price(ctx context.Context, symbol string) (float64, error) {
	id, ok := c.ids[strings.ToUpper(symbol)]
	if !ok {
		return 0, fetcher.NewValidationError(fmt.Sprintf("unknown crypto symbol %s", strings.ToUpper(symbol)))
	}

	var result map[string]map[string]float64

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":           id,
			"vs_currencies": "usd",
		}).
		SetResult(&result).
		Get("/simple/price")

	if err != nil {
		return 0, fetcher.NewNetworkError(err)
	}
	if !resp.IsSuccess() {
		return 0, fetcher.ClassifyHTTPError(resp.StatusCode())
	}

	price, ok := result[id]["usd"]
	if !ok {
		return 0, fetcher.NewValidationError(fmt.Sprintf("price not found in response for %s", id))
	}
	return math.Round(price*100) / 100, nil
}

// Package marketlist bootstraps the local symbol-name CSV databases from
// public listing files (US stocks and ETFs).
package marketlist

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"resty.dev/v3"

	"assetfeed/internal/fetcher"
)

// Entry is one listed instrument.
type Entry struct {
	Symbol string
	Name   string
	Kind   string
}

// Fetcher downloads listing CSVs.
type Fetcher struct {
	client *resty.Client
}

// NewFetcher creates a Fetcher with the given request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{client: fetcher.NewHTTPClient("", timeout)}
}

// FetchList downloads a CSV of listed instruments from url and tags every
// row with kind. The symbol and name columns are located by header name so
// upstream column reordering does not break the import.
func (f *Fetcher) FetchList(ctx context.Context, url, kind string) ([]Entry, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/csv").
		Get(url)

	if err != nil {
		return nil, fetcher.NewNetworkError(err)
	}
	if !resp.IsSuccess() {
		return nil, fetcher.ClassifyHTTPError(resp.StatusCode())
	}

	entries, err := parseCSV(strings.NewReader(resp.String()), kind)
	if err != nil {
		return nil, fmt.Errorf("parse listing from %s: %w", url, err)
	}
	return entries, nil
}

func parseCSV(r io.Reader, kind string) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	symbolCol, nameCol := -1, -1
	for i, col := range header {
		c := strings.ToLower(strings.TrimSpace(col))
		switch {
		case symbolCol < 0 && strings.Contains(c, "symbol"):
			symbolCol = i
		case nameCol < 0 && strings.Contains(c, "name"):
			nameCol = i
		}
	}
	if symbolCol < 0 || nameCol < 0 {
		return nil, fmt.Errorf("symbol/name columns not found in header %v", header)
	}

	var entries []Entry
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if symbolCol >= len(rec) || nameCol >= len(rec) {
			continue
		}

		symbol := strings.TrimSpace(rec[symbolCol])
		if symbol == "" {
			continue
		}
		entries = append(entries, Entry{
			Symbol: symbol,
			Name:   strings.TrimSpace(rec[nameCol]),
			Kind:   kind,
		})
	}
	return entries, nil
}

// Merge concatenates lists and drops duplicate symbols, keeping the first
// occurrence.
func Merge(lists ...[]Entry) []Entry {
	seen := make(map[string]bool)
	var merged []Entry
	for _, list := range lists {
		for _, e := range list {
			key := strings.ToUpper(e.Symbol)
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, e)
		}
	}
	return merged
}

// WriteCSV writes entries to path in the Symbol,Name,Tur layout the calling
// application's lookup scripts read.
func WriteCSV(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Symbol", "Name", "Tur"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range entries {
		if err := w.Write([]string{e.Symbol, e.Name, e.Kind}); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

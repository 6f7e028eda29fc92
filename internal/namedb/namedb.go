// Package namedb provides symbol to display-name lookups backed by a local
// CSV file, with an optional live fallback for symbols the file does not
// cover.
package namedb

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// FallbackFunc resolves a symbol the database does not know, typically by
// asking the market data source for the instrument's long name.
type FallbackFunc func(ctx context.Context, symbol string) (string, error)

// DB is an in-memory symbol to name table.
type DB struct {
	names map[string]string
}

// Empty returns a database with no entries; every lookup goes to the
// fallback. Used when the bootstrap CSV is missing.
func Empty() *DB {
	return &DB{names: map[string]string{}}
}

// Load reads a Symbol,Name CSV file into a database.
func Load(path string) (*DB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open name database: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses Symbol,Name CSV data. A header row is tolerated, columns past
// the second are ignored, and the first occurrence of a symbol wins.
func Read(r io.Reader) (*DB, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	names := make(map[string]string)
	first := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read name database: %w", err)
		}

		if first {
			first = false
			if len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "symbol") {
				continue
			}
		}
		if len(rec) < 2 {
			continue
		}

		symbol := strings.ToUpper(strings.TrimSpace(rec[0]))
		if symbol == "" {
			continue
		}
		if _, exists := names[symbol]; exists {
			continue
		}
		names[symbol] = strings.TrimSpace(rec[1])
	}

	return &DB{names: names}, nil
}

// Len reports the number of entries.
func (db *DB) Len() int {
	return len(db.names)
}

// Lookup resolves a symbol to its name, consulting the fallback on a miss.
func (db *DB) Lookup(ctx context.Context, symbol string, fallback FallbackFunc) (string, error) {
	key := strings.ToUpper(strings.TrimSpace(symbol))

	if name, ok := db.names[key]; ok {
		return name, nil
	}
	if fallback != nil {
		return fallback(ctx, key)
	}
	return "", fmt.Errorf("symbol %s not found", key)
}

// Package history implements the batch historical price pipeline: requests
// are validated, routed to the fund or market source by asset type, chunked
// where the upstream limits query spans, and fetched concurrently under a
// bounded worker count. The pipeline always yields a complete result set;
// upstream failures degrade to empty series, never to a missing entry or a
// propagated error.
package history

import (
	"encoding/json"
	"strings"
	"time"
)

// DateLayout is the wire format for all dates crossing the process boundary.
const DateLayout = "2006-01-02"

// AssetType tags a request with its source family. The tags are the ones
// the calling application already uses; anything unrecognized is treated as
// a plain market symbol.
type AssetType string

const (
	// TypeFund is a Turkish mutual fund (TEFAS).
	TypeFund AssetType = "fon"
	// TypePension is a Turkish pension fund (BEFAS).
	TypePension AssetType = "befas"
	// TypeStock is a Borsa Istanbul stock.
	TypeStock AssetType = "hisse"
	// TypeCrypto is a crypto asset quoted against USD.
	TypeCrypto AssetType = "kripto"
	// TypeETF is an exchange-traded fund.
	TypeETF AssetType = "etf"
)

// Request is one item of a batch fetch. StartDate stays a string through
// validation so a malformed date is reported as an input error instead of
// being silently replaced by a default window.
type Request struct {
	Symbol    string    `json:"symbol" validate:"required"`
	Type      AssetType `json:"type" validate:"required"`
	StartDate string    `json:"startDate" validate:"required,datetime=2006-01-02"`
}

// Point is one (date, price) observation.
type Point struct {
	Date  time.Time
	Price float64
}

// MarshalJSON emits the wire shape {"date":"YYYY-MM-DD","price":n}.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date  string  `json:"date"`
		Price float64 `json:"price"`
	}{
		Date:  p.Date.Format(DateLayout),
		Price: p.Price,
	})
}

// Result is the typed outcome for one request. Err is set only on total
// failure; Warnings carry per-window failures of an otherwise usable series.
type Result struct {
	Symbol   string
	Points   []Point
	Warnings []string
	Err      error
}

// BatchResult maps each requested symbol to its price series.
type BatchResult map[string][]Point

// BySymbol folds ordered results into the keyed output object. Failed
// requests contribute an empty series, never a missing key. Under duplicate
// symbols the later input wins.
func BySymbol(results []Result) BatchResult {
	out := make(BatchResult, len(results))
	for _, r := range results {
		points := r.Points
		if points == nil {
			points = []Point{}
		}
		out[r.Symbol] = points
	}
	return out
}

// NormalizeSymbol uppercases a symbol and appends the market suffix its
// asset type requires: BIST stocks trade as SYMBOL.IS, crypto pairs are
// quoted as SYMBOL-USD. Fund codes are used as-is.
func NormalizeSymbol(symbol string, assetType AssetType) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	switch assetType {
	case TypeStock:
		if !strings.HasSuffix(s, ".IS") {
			s += ".IS"
		}
	case TypeCrypto:
		if !strings.HasSuffix(s, "-USD") {
			s += "-USD"
		}
	}
	return s
}

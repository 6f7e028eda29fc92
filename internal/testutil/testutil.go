// Package testutil builds canned upstream payloads for tests: fund portal
// history rows and chart API responses, shaped like the real services emit
// them.
package testutil

import (
	"encoding/json"
	"strconv"
	"time"
)

// TefasRow builds one BindHistoryInfo data row. The date is "YYYY-MM-DD";
// the portal serves it as a quoted millisecond epoch.
func TefasRow(code, title, date string, price float64) map[string]any {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic("testutil: bad date " + date)
	}
	return map[string]any{
		"TARIH":    strconv.FormatInt(t.UnixMilli(), 10),
		"FONKODU":  code,
		"FONUNVAN": title,
		"FIYAT":    price,
	}
}

// TefasPayload wraps rows into a BindHistoryInfo response body.
func TefasPayload(rows ...map[string]any) string {
	body, err := json.Marshal(map[string]any{
		"draw":            0,
		"recordsTotal":    len(rows),
		"recordsFiltered": len(rows),
		"data":            rows,
	})
	if err != nil {
		panic(err)
	}
	return string(body)
}

// Float returns a pointer for optional close values in chart fixtures.
func Float(v float64) *float64 { return &v }

// ChartFixture describes a v8 chart API response. A nil entry in Closes
// becomes a JSON null, the way the API reports sessions without a close.
type ChartFixture struct {
	Symbol             string
	Currency           string
	LongName           string
	ShortName          string
	RegularMarketPrice float64
	Dates              []string
	Closes             []*float64
}

// JSON renders the fixture as a chart API response body.
func (f ChartFixture) JSON() string {
	timestamps := make([]int64, len(f.Dates))
	for i, d := range f.Dates {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			panic("testutil: bad date " + d)
		}
		timestamps[i] = t.Unix()
	}

	body, err := json.Marshal(map[string]any{
		"chart": map[string]any{
			"result": []map[string]any{{
				"meta": map[string]any{
					"symbol":             f.Symbol,
					"currency":           f.Currency,
					"longName":           f.LongName,
					"shortName":          f.ShortName,
					"regularMarketPrice": f.RegularMarketPrice,
				},
				"timestamp": timestamps,
				"indicators": map[string]any{
					"quote": []map[string]any{{
						"close": f.Closes,
					}},
				},
			}},
			"error": nil,
		},
	})
	if err != nil {
		panic(err)
	}
	return string(body)
}

// ChartError renders a chart API error response (unknown symbol and the
// like).
func ChartError(code, description string) string {
	body, err := json.Marshal(map[string]any{
		"chart": map[string]any{
			"result": nil,
			"error": map[string]any{
				"code":        code,
				"description": description,
			},
		},
	})
	if err != nil {
		panic(err)
	}
	return string(body)
}

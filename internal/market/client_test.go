package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"assetfeed/internal/testutil"
)

func TestHistory_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/BTC-USD" {
			t.Errorf("path = %s, want /BTC-USD", r.URL.Path)
		}
		if got := r.URL.Query().Get("interval"); got != "1d" {
			t.Errorf("interval = %q, want 1d", got)
		}
		if r.URL.Query().Get("period1") == "" || r.URL.Query().Get("period2") == "" {
			t.Error("period1/period2 missing from query")
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testutil.ChartFixture{
			Symbol:   "BTC-USD",
			Currency: "USD",
			Dates:    []string{"2024-01-02", "2024-01-03", "2024-01-04"},
			Closes:   []*float64{testutil.Float(42000.5), nil, testutil.Float(43100.25)},
		}.JSON()))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	bars, err := client.History(context.Background(), "BTC-USD", start, start.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("History() returned unexpected error: %v", err)
	}

	// The null close on 2024-01-03 is skipped.
	if len(bars) != 2 {
		t.Fatalf("History() returned %d bars, want 2", len(bars))
	}
	if got := bars[0].Date.Format("2006-01-02"); got != "2024-01-02" {
		t.Errorf("bars[0].Date = %s, want 2024-01-02", got)
	}
	if bars[0].Close != 42000.5 {
		t.Errorf("bars[0].Close = %v, want 42000.5", bars[0].Close)
	}
	if bars[1].Close != 43100.25 {
		t.Errorf("bars[1].Close = %v, want 43100.25", bars[1].Close)
	}
}

func TestHistory_ChartError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testutil.ChartError("Not Found", "No data found, symbol may be delisted")))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	now := time.Now()

	_, err := client.History(context.Background(), "NOPE", now.AddDate(0, 0, -7), now)
	if err == nil {
		t.Fatal("History() expected error for chart API error, got nil")
	}
}

func TestHistory_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	now := time.Now()

	_, err := client.History(context.Background(), "AAPL", now.AddDate(0, 0, -7), now)
	if err == nil {
		t.Fatal("History() expected error for HTTP 429, got nil")
	}
}

func TestLastPrice_UsesMetaPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testutil.ChartFixture{
			Symbol:             "THYAO.IS",
			Currency:           "TRY",
			RegularMarketPrice: 295.75,
			Dates:              []string{"2024-11-01"},
			Closes:             []*float64{testutil.Float(290.0)},
		}.JSON()))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	price, err := client.LastPrice(context.Background(), "THYAO.IS")
	if err != nil {
		t.Fatalf("LastPrice() returned unexpected error: %v", err)
	}
	if price != 295.75 {
		t.Errorf("LastPrice() = %v, want meta price 295.75", price)
	}
}

func TestLastPrice_FallsBackToLastClose(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testutil.ChartFixture{
			Symbol: "SPY",
			Dates:  []string{"2024-11-01", "2024-11-04", "2024-11-05"},
			Closes: []*float64{testutil.Float(570.1), testutil.Float(572.3), nil},
		}.JSON()))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	price, err := client.LastPrice(context.Background(), "SPY")
	if err != nil {
		t.Fatalf("LastPrice() returned unexpected error: %v", err)
	}
	if price != 572.3 {
		t.Errorf("LastPrice() = %v, want last non-null close 572.3", price)
	}
}

func TestLastPrice_NoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testutil.ChartFixture{Symbol: "EMPTY"}.JSON()))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	_, err := client.LastPrice(context.Background(), "EMPTY")
	if err == nil {
		t.Fatal("LastPrice() expected error for no data, got nil")
	}
}

func TestClosingPriceSince(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testutil.ChartFixture{
			Symbol: "^GSPC",
			Dates:  []string{"2024-01-02", "2024-01-03"},
			Closes: []*float64{testutil.Float(4742.83), testutil.Float(4704.81)},
		}.JSON()))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	price, err := client.ClosingPriceSince(context.Background(), "^GSPC", date)
	if err != nil {
		t.Fatalf("ClosingPriceSince() returned unexpected error: %v", err)
	}
	if price != 4742.83 {
		t.Errorf("ClosingPriceSince() = %v, want first close 4742.83", price)
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		name      string
		longName  string
		shortName string
		want      string
		wantErr   bool
	}{
		{"long name preferred", "SPDR S&P 500 ETF Trust", "SPY", "SPDR S&P 500 ETF Trust", false},
		{"short name fallback", "", "SPY", "SPY", false},
		{"no name", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(testutil.ChartFixture{
					Symbol:    "SPY",
					LongName:  tt.longName,
					ShortName: tt.shortName,
				}.JSON()))
			}))
			defer server.Close()

			client := NewClient(server.URL, 5*time.Second)

			got, err := client.Name(context.Background(), "SPY")
			if tt.wantErr {
				if err == nil {
					t.Fatal("Name() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Name() returned unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

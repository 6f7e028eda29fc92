package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPrice_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			t.Errorf("path = %s, want /simple/price", r.URL.Path)
		}
		if got := r.URL.Query().Get("ids"); got != "bitcoin" {
			t.Errorf("ids = %q, want bitcoin", got)
		}
		if got := r.URL.Query().Get("vs_currencies"); got != "usd" {
			t.Errorf("vs_currencies = %q, want usd", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"bitcoin":{"usd":67345.678}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nil)

	price, err := client.Price(context.Background(), "btc")
	if err != nil {
		t.Fatalf("Price() returned unexpected error: %v", err)
	}
	if price != 67345.68 {
		t.Errorf("Price() = %v, want 67345.68 (two decimals)", price)
	}
}

func TestPrice_UnknownSymbol(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nil)

	_, err := client.Price(context.Background(), "NOTACOIN")
	if err == nil {
		t.Fatal("Price() expected error for unknown symbol, got nil")
	}
	if requests != 0 {
		t.Errorf("unknown symbol triggered %d upstream requests, want 0", requests)
	}
}

func TestPrice_Overrides(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ids"); got != "my-test-coin" {
			t.Errorf("ids = %q, want my-test-coin", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"my-test-coin":{"usd":1.5}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, map[string]string{"tst": "my-test-coin"})

	price, err := client.Price(context.Background(), "TST")
	if err != nil {
		t.Fatalf("Price() returned unexpected error: %v", err)
	}
	if price != 1.5 {
		t.Errorf("Price() = %v, want 1.5", price)
	}
}

func TestPrice_MissingFromResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nil)

	_, err := client.Price(context.Background(), "ETH")
	if err == nil {
		t.Fatal("Price() expected error for missing price, got nil")
	}
}

func TestPrice_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nil)

	_, err := client.Price(context.Background(), "BTC")
	if err == nil {
		t.Fatal("Price() expected error for HTTP 503, got nil")
	}
}

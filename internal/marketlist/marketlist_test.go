package marketlist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("Symbol,Name,Last Sale\nAAPL,Apple Inc.,178.23\nMSFT,Microsoft Corporation,378.91\n"))
	}))
	defer server.Close()

	f := NewFetcher(5 * time.Second)

	entries, err := f.FetchList(context.Background(), server.URL, "Hisse")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Symbol: "AAPL", Name: "Apple Inc.", Kind: "Hisse"}, entries[0])
}

func TestFetchList_ColumnsFoundByName(t *testing.T) {
	// Column order differs from the usual layout.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Fund Name,Ticker Symbol\nInvesco QQQ Trust,QQQ\n"))
	}))
	defer server.Close()

	f := NewFetcher(5 * time.Second)

	entries, err := f.FetchList(context.Background(), server.URL, "ETF")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "QQQ", entries[0].Symbol)
	assert.Equal(t, "Invesco QQQ Trust", entries[0].Name)
}

func TestFetchList_MissingColumns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Code,Description\nX,Y\n"))
	}))
	defer server.Close()

	f := NewFetcher(5 * time.Second)

	_, err := f.FetchList(context.Background(), server.URL, "ETF")
	assert.Error(t, err)
}

func TestFetchList_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher(5 * time.Second)

	_, err := f.FetchList(context.Background(), server.URL, "ETF")
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	stocks := []Entry{
		{Symbol: "AAPL", Name: "Apple Inc.", Kind: "Hisse"},
		{Symbol: "SPY", Name: "SPY (as stock)", Kind: "Hisse"},
	}
	etfs := []Entry{
		{Symbol: "spy", Name: "SPDR S&P 500 ETF Trust", Kind: "ETF"},
		{Symbol: "QQQ", Name: "Invesco QQQ Trust", Kind: "ETF"},
	}

	merged := Merge(stocks, etfs)
	require.Len(t, merged, 3)
	// First occurrence wins, case-insensitively.
	assert.Equal(t, "SPY (as stock)", merged[1].Name)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	entries := []Entry{
		{Symbol: "AAPL", Name: "Apple Inc.", Kind: "Hisse"},
		{Symbol: "QQQ", Name: "Invesco QQQ Trust", Kind: "ETF"},
	}

	require.NoError(t, WriteCSV(path, entries))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Symbol,Name,Tur\nAAPL,Apple Inc.,Hisse\nQQQ,Invesco QQQ Trust,ETF\n", string(data))
}

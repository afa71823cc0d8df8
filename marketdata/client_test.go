package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// chartPayload builds a provider chart envelope for one symbol. A nil entry
// in closes marks a bar with no close price.
func chartPayload(symbol, name string, price float64, closes []interface{}) map[string]interface{} {
	timestamps := make([]int64, len(closes))
	for i := range closes {
		timestamps[i] = 1700000000 + int64(i)*86400
	}
	quote := map[string]interface{}{
		"open":  closes,
		"high":  closes,
		"low":   closes,
		"close": closes,
	}
	return map[string]interface{}{
		"chart": map[string]interface{}{
			"result": []interface{}{
				map[string]interface{}{
					"meta": map[string]interface{}{
						"symbol":             symbol,
						"shortName":          name,
						"regularMarketPrice": price,
					},
					"timestamp": timestamps,
					"indicators": map[string]interface{}{
						"quote": []interface{}{quote},
					},
				},
			},
			"error": nil,
		},
	}
}

func notFoundPayload() map[string]interface{} {
	return map[string]interface{}{
		"chart": map[string]interface{}{
			"result": nil,
			"error": map[string]interface{}{
				"code":        "Not Found",
				"description": "No data found, symbol may be delisted",
			},
		},
	}
}

// newProvider starts a fake provider that serves canned chart payloads per
// symbol and a fixed search response.
func newProvider(t *testing.T, charts map[string]map[string]interface{}, search map[string]interface{}) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v8/finance/chart/", func(w http.ResponseWriter, r *http.Request) {
		symbol := strings.TrimPrefix(r.URL.Path, "/v8/finance/chart/")
		payload, ok := charts[symbol]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			payload = notFoundPayload()
		}
		json.NewEncoder(w).Encode(payload)
	})
	mux.HandleFunc("/v1/finance/search", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(search)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestLatestPrices(t *testing.T) {
	server := newProvider(t, map[string]map[string]interface{}{
		"AAPL": chartPayload("AAPL", "Apple Inc.", 150.25, []interface{}{150.25}),
		"AMZN": chartPayload("AMZN", "Amazon.com Inc.", 3305.10, []interface{}{3305.10}),
	}, nil)

	client := NewClient(server.URL)
	prices, err := client.LatestPrices(context.Background(), []string{"AAPL", "AMZN"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prices["AAPL"] != 150.25 || prices["AMZN"] != 3305.10 {
		t.Errorf("unexpected prices: %v", prices)
	}
}

func TestLatestPricesAbortsOnFirstFailure(t *testing.T) {
	server := newProvider(t, map[string]map[string]interface{}{
		"AAPL": chartPayload("AAPL", "Apple Inc.", 150.25, []interface{}{150.25}),
	}, nil)

	client := NewClient(server.URL)
	_, err := client.LatestPrices(context.Background(), []string{"AAPL", "NOPE"})
	if err == nil {
		t.Fatal("expected an error for the unknown ticker")
	}
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %T: %v", err, err)
	}
}

func TestExchangeRate(t *testing.T) {
	server := newProvider(t, map[string]map[string]interface{}{
		"USDMXN=X": chartPayload("USDMXN=X", "USD/MXN", 17.19, []interface{}{17.19}),
	}, nil)

	client := NewClient(server.URL)
	rate, err := client.ExchangeRate(context.Background(), "USD/MXN")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate.Label != "USD/MXN" {
		t.Errorf("expected label USD/MXN, got %s", rate.Label)
	}
	if rate.Rate != 17.19 {
		t.Errorf("expected rate 17.19, got %v", rate.Rate)
	}
}

func TestExchangeRateInvalidPair(t *testing.T) {
	client := NewClient("http://127.0.0.1:0") // never contacted

	for _, pair := range []string{"USDMXN", "/MXN", "USD/"} {
		if _, err := client.ExchangeRate(context.Background(), pair); !errors.Is(err, ErrInvalidPair) {
			t.Errorf("pair %q: expected ErrInvalidPair, got %v", pair, err)
		}
	}
}

func TestExchangeRatePairNotFound(t *testing.T) {
	server := newProvider(t, nil, nil)

	client := NewClient(server.URL)
	_, err := client.ExchangeRate(context.Background(), "XXX/YYY")
	if !errors.Is(err, ErrPairNotFound) {
		t.Errorf("expected ErrPairNotFound, got %v", err)
	}
}

func TestHistoricalPricesSkipsBarsWithoutClose(t *testing.T) {
	server := newProvider(t, map[string]map[string]interface{}{
		"AAPL": chartPayload("AAPL", "Apple Inc.", 103, []interface{}{100.0, nil, 103.0}),
	}, nil)

	client := NewClient(server.URL)
	series, err := client.HistoricalPrices(context.Background(), []string{"AAPL"}, "1mo", "1d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	candles := series["AAPL"]
	if len(candles) != 2 {
		t.Fatalf("expected 2 candles after skipping the null close, got %d", len(candles))
	}
	if candles[0].Close != 100 || candles[1].Close != 103 {
		t.Errorf("unexpected closes: %v", Closes(candles))
	}
	if !candles[0].Date.Before(candles[1].Date) {
		t.Error("expected candles in chronological order")
	}
}

func TestSearch(t *testing.T) {
	search := map[string]interface{}{
		"quotes": []interface{}{
			map[string]interface{}{
				"symbol":    "COIN",
				"shortname": "Coinbase Global, Inc.",
				"exchange":  "NMS",
				"quoteType": "EQUITY",
			},
			map[string]interface{}{
				"symbol":    "COINBASE.SW",
				"longname":  "Coinbase Tracker",
				"exchange":  "EBS",
				"quoteType": "ETF",
			},
		},
	}
	server := newProvider(t, nil, search)

	client := NewClient(server.URL)
	results, err := client.Search(context.Background(), "coinbase", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Ticker != "COIN" || results[0].DisplayedName != "Coinbase Global, Inc." {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	// longname is the fallback when shortname is missing
	if results[1].DisplayedName != "Coinbase Tracker" {
		t.Errorf("unexpected second result: %+v", results[1])
	}

	capped, err := client.Search(context.Background(), "coinbase", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(capped) != 1 {
		t.Errorf("expected max_results to cap the list, got %d results", len(capped))
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	client := NewClient("http://127.0.0.1:0")

	for _, query := range []string{"", "   "} {
		if _, err := client.Search(context.Background(), query, 10); !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("query %q: expected ErrEmptyQuery, got %v", query, err)
		}
	}
}

func TestSummary(t *testing.T) {
	server := newProvider(t, map[string]map[string]interface{}{
		"COIN": chartPayload("COIN", "Coinbase Global, Inc.", 215.50, []interface{}{200.0, 230.0, 215.5}),
	}, nil)

	client := NewClient(server.URL)
	summary, err := client.Summary(context.Background(), "COIN")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Ticker != "COIN" || summary.DisplayedName != "Coinbase Global, Inc." {
		t.Errorf("unexpected identity: %+v", summary)
	}
	if summary.Price != 215.50 {
		t.Errorf("expected price 215.50, got %v", summary.Price)
	}
	if len(summary.Candles) != 3 {
		t.Errorf("expected 3 candles, got %d", len(summary.Candles))
	}
}

func TestSummaryUnknownTicker(t *testing.T) {
	server := newProvider(t, nil, nil)

	client := NewClient(server.URL)
	_, err := client.Summary(context.Background(), "NOPE")
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %T: %v", err, err)
	}
}

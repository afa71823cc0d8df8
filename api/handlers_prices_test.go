package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stock-price-alert/marketdata"
)

// fakeProvider serves the market-data chart envelope for a fixed set of
// symbols; anything else gets the provider's not-found envelope.
func fakeProvider(t *testing.T, prices map[string]float64) *marketdata.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbol := strings.TrimPrefix(r.URL.Path, "/v8/finance/chart/")
		price, ok := prices[symbol]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"chart": map[string]interface{}{
					"result": nil,
					"error":  map[string]interface{}{"code": "Not Found", "description": "No data found"},
				},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"chart": map[string]interface{}{
				"result": []interface{}{
					map[string]interface{}{
						"meta": map[string]interface{}{
							"symbol":             symbol,
							"shortName":          symbol,
							"regularMarketPrice": price,
						},
						"timestamp": []int64{1700000000},
						"indicators": map[string]interface{}{
							"quote": []interface{}{
								map[string]interface{}{
									"open":  []interface{}{price},
									"high":  []interface{}{price},
									"low":   []interface{}{price},
									"close": []interface{}{price},
								},
							},
						},
					},
				},
				"error": nil,
			},
		})
	}))
	t.Cleanup(server.Close)
	return marketdata.NewClient(server.URL)
}

func doPriceRequest(t *testing.T, market *marketdata.Client, path string) *httptest.ResponseRecorder {
	t.Helper()
	server := NewServer(nil, market, &stubWatchlists{})
	request := httptest.NewRequest(http.MethodGet, path, nil)
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, request)
	return recorder
}

func TestLatestPricesHandler(t *testing.T) {
	market := fakeProvider(t, map[string]float64{"AAPL": 150.25, "AMZN": 3305.10})
	recorder := doPriceRequest(t, market, "/api/prices/latest?tickers=AAPL,AMZN")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var prices map[string]float64
	if err := json.Unmarshal(recorder.Body.Bytes(), &prices); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if prices["AAPL"] != 150.25 || prices["AMZN"] != 3305.10 {
		t.Errorf("unexpected prices: %v", prices)
	}
}

func TestLatestPricesHandlerNoTickers(t *testing.T) {
	market := fakeProvider(t, nil)
	for _, path := range []string{"/api/prices/latest", "/api/prices/latest?tickers=", "/api/prices/latest?tickers=,%20,"} {
		recorder := doPriceRequest(t, market, path)
		if recorder.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, recorder.Code)
			continue
		}
		if body := strings.TrimSpace(recorder.Body.String()); body != `{"error":"No tickers provided"}` {
			t.Errorf("%s: unexpected body %s", path, body)
		}
	}
}

func TestLatestPricesHandlerUpstreamFailure(t *testing.T) {
	market := fakeProvider(t, nil)
	recorder := doPriceRequest(t, market, "/api/prices/latest?tickers=NOPE")
	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if body := strings.TrimSpace(recorder.Body.String()); body != `{"error":"Failed to fetch prices"}` {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestExchangeRateHandler(t *testing.T) {
	market := fakeProvider(t, map[string]float64{"USDMXN=X": 17.19})
	recorder := doPriceRequest(t, market, "/api/prices/exchange-rate?pair=USD/MXN")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	payload := decodeBody(t, recorder)
	if payload["exchange_rate"] != "USD/MXN" {
		t.Errorf("unexpected label: %v", payload["exchange_rate"])
	}
	if payload["rate"] != 17.19 {
		t.Errorf("unexpected rate: %v", payload["rate"])
	}
}

func TestExchangeRateHandlerMissingPair(t *testing.T) {
	market := fakeProvider(t, nil)
	recorder := doPriceRequest(t, market, "/api/prices/exchange-rate")
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if body := strings.TrimSpace(recorder.Body.String()); body != `{"error":"Missing 'pair' query parameter"}` {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestExchangeRateHandlerInvalidPair(t *testing.T) {
	market := fakeProvider(t, nil)
	recorder := doPriceRequest(t, market, "/api/prices/exchange-rate?pair=USDMXN")
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", recorder.Code, recorder.Body.String())
	}
}

func TestExchangeRateHandlerUnknownPair(t *testing.T) {
	market := fakeProvider(t, nil)
	recorder := doPriceRequest(t, market, "/api/prices/exchange-rate?pair=XXX/YYY")
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", recorder.Code, recorder.Body.String())
	}
}

func TestHistoricalPricesHandler(t *testing.T) {
	market := fakeProvider(t, map[string]float64{"AAPL": 150.25})
	recorder := doPriceRequest(t, market, "/api/prices/historical?tickers=AAPL")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var series map[string][]marketdata.Candle
	if err := json.Unmarshal(recorder.Body.Bytes(), &series); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if len(series["AAPL"]) != 1 || series["AAPL"][0].Close != 150.25 {
		t.Errorf("unexpected series: %v", series)
	}
}

func TestHistoricalPricesHandlerInvalidParams(t *testing.T) {
	market := fakeProvider(t, nil)

	recorder := doPriceRequest(t, market, "/api/prices/historical?tickers=AAPL&period=2centuries")
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if body := strings.TrimSpace(recorder.Body.String()); body != `{"error":"Invalid period '2centuries'"}` {
		t.Errorf("unexpected body: %s", body)
	}

	recorder = doPriceRequest(t, market, "/api/prices/historical?tickers=AAPL&interval=7s")
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if body := strings.TrimSpace(recorder.Body.String()); body != `{"error":"Invalid interval '7s'"}` {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestSearchHandlerNoQuery(t *testing.T) {
	market := fakeProvider(t, nil)
	recorder := doPriceRequest(t, market, "/api/prices/search")
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if body := strings.TrimSpace(recorder.Body.String()); body != `{"error":"No query provided"}` {
		t.Errorf("unexpected body: %s", body)
	}
}

// Package marketdata wraps the external market-data provider: latest
// quotes, historical series, currency exchange rates and ticker search.
// Every call is a single request/response with the provider's error passed
// through; nothing here retries, caches or streams.
package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the production provider endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client is the market-data provider client
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a new market-data client. baseURL may be empty to use
// the production provider.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	// Pooled transport shared across requests
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Transport: transport,
			Timeout:   10 * time.Second,
		},
	}
}

// LatestPrices returns the current market price for each ticker. An error
// for any single ticker aborts the whole batch; there are no partial
// results.
func (c *Client) LatestPrices(ctx context.Context, tickers []string) (map[string]float64, error) {
	prices := make(map[string]float64, len(tickers))
	for _, ticker := range tickers {
		result, err := c.fetchChart(ctx, ticker, "1d", "1d")
		if err != nil {
			return nil, wrapUpstream("LatestPrices", fmt.Errorf("ticker %s: %w", ticker, err))
		}
		prices[ticker] = result.Meta.RegularMarketPrice
	}
	return prices, nil
}

// ExchangeRate returns the current rate for a "BASE/QUOTE" currency pair.
func (c *Client) ExchangeRate(ctx context.Context, pair string) (*ExchangeRate, error) {
	base, quote, found := strings.Cut(pair, "/")
	if !found || base == "" || quote == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPair, pair)
	}

	symbol := strings.ToUpper(base) + strings.ToUpper(quote) + "=X"
	result, err := c.fetchChart(ctx, symbol, "1d", "1d")
	if err != nil {
		if errors.Is(err, errNoData) {
			return nil, fmt.Errorf("%w: %q", ErrPairNotFound, pair)
		}
		return nil, wrapUpstream("ExchangeRate", err)
	}

	return &ExchangeRate{
		Label: strings.ToUpper(base) + "/" + strings.ToUpper(quote),
		Rate:  result.Meta.RegularMarketPrice,
	}, nil
}

// HistoricalPrices returns the OHLC series for each ticker over the given
// period and interval. Period and interval values are forwarded as-is; the
// provider's rejection of an unsupported combination surfaces as an
// UpstreamError.
func (c *Client) HistoricalPrices(ctx context.Context, tickers []string, period, interval string) (map[string][]Candle, error) {
	series := make(map[string][]Candle, len(tickers))
	for _, ticker := range tickers {
		result, err := c.fetchChart(ctx, ticker, period, interval)
		if err != nil {
			return nil, wrapUpstream("HistoricalPrices", fmt.Errorf("ticker %s: %w", ticker, err))
		}
		series[ticker] = result.candles()
	}
	return series, nil
}

// Search looks up tickers matching a free-text query, in provider order.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	endpoint := c.baseURL + "/v1/finance/search?" + url.Values{
		"q":           {query},
		"quotesCount": {strconv.Itoa(maxResults)},
		"newsCount":   {"0"},
	}.Encode()

	var response searchResponse
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, wrapUpstream("Search", err)
	}

	results := make([]SearchResult, 0, len(response.Quotes))
	for _, quote := range response.Quotes {
		if quote.Symbol == "" {
			continue
		}
		name := quote.ShortName
		if name == "" {
			name = quote.LongName
		}
		results = append(results, SearchResult{
			Ticker:        quote.Symbol,
			DisplayedName: name,
			Exchange:      quote.Exchange,
			AssetType:     quote.QuoteType,
		})
		if len(results) == maxResults {
			break
		}
	}
	return results, nil
}

// Summary fetches everything needed to materialize a new asset in one
// provider call: a 1-month daily chart whose meta carries the identity and
// current price.
func (c *Client) Summary(ctx context.Context, ticker string) (*Summary, error) {
	result, err := c.fetchChart(ctx, ticker, "1mo", "1d")
	if err != nil {
		return nil, wrapUpstream("Summary", fmt.Errorf("ticker %s: %w", ticker, err))
	}

	name := result.Meta.ShortName
	if name == "" {
		name = result.Meta.LongName
	}
	if name == "" {
		name = result.Meta.Symbol
	}
	symbol := result.Meta.Symbol
	if symbol == "" {
		symbol = ticker
	}

	candles := result.candles()
	price := result.Meta.RegularMarketPrice
	if price == 0 && len(candles) > 0 {
		price = candles[len(candles)-1].Close
	}

	return &Summary{
		Ticker:        symbol,
		DisplayedName: name,
		Price:         price,
		Candles:       candles,
	}, nil
}

// fetchChart performs one chart request and unwraps the provider envelope.
func (c *Client) fetchChart(ctx context.Context, symbol, period, interval string) (*chartResult, error) {
	endpoint := c.baseURL + "/v8/finance/chart/" + url.PathEscape(symbol) + "?" + url.Values{
		"range":    {period},
		"interval": {interval},
	}.Encode()

	var response chartResponse
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}
	if response.Chart.Error != nil {
		if response.Chart.Error.Code == "Not Found" {
			return nil, fmt.Errorf("%w: %s", errNoData, response.Chart.Error.Description)
		}
		return nil, fmt.Errorf("provider error %s: %s", response.Chart.Error.Code, response.Chart.Error.Description)
	}
	if len(response.Chart.Result) == 0 {
		return nil, errNoData
	}
	return &response.Chart.Result[0], nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	request.Header.Set("User-Agent", "stock-price-alert/1.0")

	response, err := c.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	// 404 carries the same JSON error envelope as 200; decode either way
	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusNotFound {
		return fmt.Errorf("unexpected status %d", response.StatusCode)
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("malformed provider response: %w", err)
	}
	return nil
}

// candles assembles the OHLC series from the provider's parallel arrays,
// skipping bars with a missing close.
func (r *chartResult) candles() []Candle {
	if len(r.Indicators.Quote) == 0 {
		return nil
	}
	quote := r.Indicators.Quote[0]
	candles := make([]Candle, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		candle := Candle{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			candle.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			candle.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			candle.Low = *quote.Low[i]
		}
		candles = append(candles, candle)
	}
	return candles
}

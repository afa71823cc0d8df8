package marketdata

import "time"

// Candle is one bar of a historical series. The JSON field names follow
// the tabular export shape the API has always returned.
type Candle struct {
	Date  time.Time `json:"Date"`
	Open  float64   `json:"Open"`
	High  float64   `json:"High"`
	Low   float64   `json:"Low"`
	Close float64   `json:"Close"`
}

// ExchangeRate is a currency pair quote.
type ExchangeRate struct {
	Label string  `json:"exchange_rate"`
	Rate  float64 `json:"rate"`
}

// SearchResult is one match from a ticker search.
type SearchResult struct {
	Ticker        string `json:"ticker"`
	DisplayedName string `json:"displayed_name"`
	Exchange      string `json:"exchange"`
	AssetType     string `json:"asset_type"`
}

// Summary bundles everything needed to materialize a new asset from a
// single provider call: identity, current price and the trailing window.
type Summary struct {
	Ticker        string
	DisplayedName string
	Price         float64
	Candles       []Candle
}

// Closes extracts the close prices of a candle series.
func Closes(candles []Candle) []float64 {
	closes := make([]float64, 0, len(candles))
	for _, c := range candles {
		closes = append(closes, c.Close)
	}
	return closes
}

// ValidPeriods is the set of lookback ranges the provider accepts.
var ValidPeriods = map[string]bool{
	"1d": true, "5d": true, "1mo": true, "3mo": true, "6mo": true,
	"1y": true, "2y": true, "5y": true, "10y": true, "ytd": true, "max": true,
}

// ValidIntervals is the set of bar intervals the provider accepts. Intraday
// intervals are only honored for lookback windows of 60 days or less; that
// combination is left to the provider to reject.
var ValidIntervals = map[string]bool{
	"1m": true, "2m": true, "5m": true, "15m": true, "30m": true,
	"60m": true, "90m": true, "1h": true, "1d": true, "5d": true,
	"1wk": true, "1mo": true, "3mo": true,
}

// chartResponse mirrors the provider's chart endpoint payload.
type chartResponse struct {
	Chart struct {
		Result []chartResult  `json:"result"`
		Error  *providerError `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Symbol              string  `json:"symbol"`
		ShortName           string  `json:"shortName"`
		LongName            string  `json:"longName"`
		Currency            string  `json:"currency"`
		RegularMarketPrice  float64 `json:"regularMarketPrice"`
		ChartPreviousClose  float64 `json:"chartPreviousClose"`
		RegularMarketVolume int64   `json:"regularMarketVolume"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open  []*float64 `json:"open"`
			High  []*float64 `json:"high"`
			Low   []*float64 `json:"low"`
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

type providerError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// searchResponse mirrors the provider's search endpoint payload.
type searchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		Exchange  string `json:"exchange"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
}

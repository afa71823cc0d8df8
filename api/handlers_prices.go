package api

import (
	"fmt"
	"net/http"

	"stock-price-alert/marketdata"
)

// Price handlers pass straight through to the market-data gateway; nothing
// here touches storage.

func (s *Server) handleLatestPrices(w http.ResponseWriter, r *http.Request) {
	tickers := tickerList(r.URL.Query().Get("tickers"))
	if len(tickers) == 0 {
		respondError(w, http.StatusBadRequest, "No tickers provided")
		return
	}

	prices, err := s.market.LatestPrices(r.Context(), tickers)
	if err != nil {
		respondWithError(w, err, "Failed to fetch prices")
		return
	}
	respondJSON(w, http.StatusOK, prices)
}

func (s *Server) handleExchangeRate(w http.ResponseWriter, r *http.Request) {
	pair := r.URL.Query().Get("pair")
	if pair == "" {
		respondError(w, http.StatusBadRequest, "Missing 'pair' query parameter")
		return
	}

	rate, err := s.market.ExchangeRate(r.Context(), pair)
	if err != nil {
		respondWithError(w, err, "Failed to fetch exchange rate")
		return
	}
	respondJSON(w, http.StatusOK, rate)
}

func (s *Server) handleHistoricalPrices(w http.ResponseWriter, r *http.Request) {
	tickers := tickerList(r.URL.Query().Get("tickers"))
	if len(tickers) == 0 {
		respondError(w, http.StatusBadRequest, "No tickers provided")
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "1mo"
	}
	interval := r.URL.Query().Get("interval")
	if interval == "" {
		interval = "1d"
	}
	if !marketdata.ValidPeriods[period] {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid period '%s'", period))
		return
	}
	if !marketdata.ValidIntervals[interval] {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid interval '%s'", interval))
		return
	}

	series, err := s.market.HistoricalPrices(r.Context(), tickers, period, interval)
	if err != nil {
		respondWithError(w, err, "Failed to fetch historical prices")
		return
	}
	respondJSON(w, http.StatusOK, series)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		respondError(w, http.StatusBadRequest, "No query provided")
		return
	}
	minResults, maxResults := 1, 50
	limit := getIntParam(r, "max_results", 10, &minResults, &maxResults)

	results, err := s.market.Search(r.Context(), query, limit)
	if err != nil {
		respondWithError(w, err, "Failed to search tickers")
		return
	}
	respondJSON(w, http.StatusOK, results)
}

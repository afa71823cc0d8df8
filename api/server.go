package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"stock-price-alert/database"
	"stock-price-alert/marketdata"
)

// Server handles HTTP API requests
type Server struct {
	repo       *database.Repository
	market     *marketdata.Client
	watchlists WatchlistService

	mu         sync.Mutex
	httpServer *http.Server
}

// WatchlistService defines the watchlist management operations the API
// depends on.
type WatchlistService interface {
	List() ([]database.WatchlistSummary, error)
	Create(name string) (*database.WatchlistSummary, error)
	Delete(id int) (*database.WatchlistSummary, error)
	Rename(id int, newName string) (*database.WatchlistSummary, error)
	AddAsset(ctx context.Context, id int, ticker string) (*database.WatchlistSummary, error)
}

// NewServer creates a new API server instance
func NewServer(repo *database.Repository, market *marketdata.Client, watchlists WatchlistService) *Server {
	return &Server{
		repo:       repo,
		market:     market,
		watchlists: watchlists,
	}
}

// Handler builds the routing table with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Price routes (read-through to the market-data provider)
	mux.HandleFunc("GET /api/prices/latest", s.handleLatestPrices)
	mux.HandleFunc("GET /api/prices/exchange-rate", s.handleExchangeRate)
	mux.HandleFunc("GET /api/prices/historical", s.handleHistoricalPrices)
	mux.HandleFunc("GET /api/prices/search", s.handleSearch)

	// Watchlist routes
	mux.HandleFunc("GET /api/watchlists/{$}", s.handleListWatchlists)
	mux.HandleFunc("POST /api/watchlists/new", s.handleCreateWatchlist)
	mux.HandleFunc("DELETE /api/watchlists/delete/{id}", s.handleDeleteWatchlist)
	mux.HandleFunc("PATCH /api/watchlists/update/{id}", s.handleRenameWatchlist)
	mux.HandleFunc("POST /api/watchlists/{id}/add-asset", s.handleAddAsset)

	// Alert routes
	mux.HandleFunc("GET /api/alerts/{$}", s.handleListAlerts)
	mux.HandleFunc("POST /api/alerts/new", s.handleCreateAlert)
	mux.HandleFunc("DELETE /api/alerts/delete/{id}", s.handleDeleteAlert)

	mux.HandleFunc("GET /api/{$}", s.handleIndex)
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.corsMiddleware(s.loggingMiddleware(mux))
}

// Start starts the HTTP server on the specified port. It blocks until the
// server fails or Shutdown is called; a shutdown-initiated stop returns nil.
func (s *Server) Start(port int) error {
	serverAddr := fmt.Sprintf("0.0.0.0:%d", port)
	httpServer := &http.Server{Addr: serverAddr, Handler: s.Handler()}

	s.mu.Lock()
	s.httpServer = httpServer
	s.mu.Unlock()

	log.Printf("🚀 API Server starting on %s", serverAddr)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting new connections and waits for in-flight requests
// to finish, bounded by ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	httpServer := s.httpServer
	s.mu.Unlock()

	if httpServer == nil {
		return nil
	}
	return httpServer.Shutdown(ctx)
}

// Middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleIndex describes the service and its endpoints.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"service": "Stock Price Alert for long investors",
		"prices":  "/api/prices/{latest,exchange-rate,historical,search}",
		"lists":   "/api/watchlists/",
		"alerts":  "/api/alerts/",
	})
}

// handleHealth returns the health status of the API
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

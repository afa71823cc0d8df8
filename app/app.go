package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock-price-alert/api"
	"stock-price-alert/config"
	"stock-price-alert/database"
	"stock-price-alert/marketdata"
)

// App represents the main application
type App struct {
	config     *config.Config
	db         *database.Database
	repo       *database.Repository
	market     *marketdata.Client
	watchlists *WatchlistService
}

// New creates a new application instance
func New(cfg *config.Config) *App {
	return &App{
		config: cfg,
		market: marketdata.NewClient(cfg.MarketDataURL),
	}
}

// Start connects the backing services, runs the schema migration and serves
// the HTTP API until the process receives SIGINT or SIGTERM.
func (a *App) Start() error {
	log.Println("🗄️  Connecting to database...")
	db, err := database.Connect(database.Config{
		Host:     a.config.DatabaseHost,
		Port:     a.config.DatabasePort,
		User:     a.config.DatabaseUser,
		Password: a.config.DatabasePassword,
		DBName:   a.config.DatabaseName,
	})
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	a.db = db
	defer a.db.Close()

	a.repo = database.NewRepository(db)
	if err := a.repo.InitSchema(); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	a.watchlists = NewWatchlistService(a.repo, a.market)
	server := api.NewServer(a.repo, a.market, a.watchlists)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start(a.config.APIPort)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-stop:
		log.Printf("🛑 Received %s, shutting down...", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		// Drain the HTTP server before the deferred Close drops the DB handle
		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	}
}

// Command refresh applies a price update to every stored asset: one batch
// of latest quotes plus a 1-month daily window per ticker, persisted
// through the same statistics path the service uses. Intended to run from
// cron or by hand.
package main

import (
	"context"
	"log"

	"stock-price-alert/config"
	"stock-price-alert/database"
	"stock-price-alert/marketdata"
)

func main() {
	cfg := config.LoadFromEnv()

	db, err := database.Connect(database.Config{
		Host:     cfg.DatabaseHost,
		Port:     cfg.DatabasePort,
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		DBName:   cfg.DatabaseName,
	})
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	repo := database.NewRepository(db)
	market := marketdata.NewClient(cfg.MarketDataURL)

	assets, err := repo.ListAssets()
	if err != nil {
		log.Fatalf("failed to list assets: %v", err)
	}
	if len(assets) == 0 {
		log.Println("No assets to refresh")
		return
	}

	tickers := make([]string, 0, len(assets))
	for _, asset := range assets {
		tickers = append(tickers, asset.Ticker)
	}

	ctx := context.Background()
	prices, err := market.LatestPrices(ctx, tickers)
	if err != nil {
		log.Fatalf("failed to fetch latest prices: %v", err)
	}
	series, err := market.HistoricalPrices(ctx, tickers, "1mo", "1d")
	if err != nil {
		log.Fatalf("failed to fetch historical prices: %v", err)
	}

	for _, asset := range assets {
		price, ok := prices[asset.Ticker]
		if !ok {
			log.Printf("⚠️  No price returned for %s, skipping", asset.Ticker)
			continue
		}
		updated, err := repo.UpdateAssetPrice(asset.Ticker, price, marketdata.Closes(series[asset.Ticker]))
		if err != nil {
			log.Printf("⚠️  Failed to update %s: %v", asset.Ticker, err)
			continue
		}
		log.Printf("🔄 %s %.2f → %.2f (%+.2f%%)",
			updated.Ticker, updated.PreviousPrice, updated.Price, updated.PriceChangePercent)
	}
}

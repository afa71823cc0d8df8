// Command seed populates the database with a small demo dataset: a handful
// of assets with alerts and two watchlists. Run with -clean to wipe the
// tables instead.
package main

import (
	"flag"
	"log"

	"stock-price-alert/config"
	"stock-price-alert/database"
	models "stock-price-alert/database/models_pkg"
)

func main() {
	clean := flag.Bool("clean", false, "delete all seeded data instead of inserting it")
	flag.Parse()

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
	if err := repo.InitSchema(); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}

	if *clean {
		for _, table := range []string{"watchlist_asset", "alert", "watchlist", "asset"} {
			if err := db.DB().Exec("DELETE FROM " + table).Error; err != nil {
				log.Fatalf("failed to clean %s: %v", table, err)
			}
		}
		log.Println("🧹 Database cleaned")
		return
	}

	assets := []models.Asset{
		newAsset("AAPL", "Apple Inc.", 150.00),
		newAsset("AMZN", "Amazon.com Inc.", 3305.00),
		newAsset("CVX", "Chevron Corporation", 98.20),
		newAsset("ROBO", "ROBO Global Robotics and Automation Index ETF", 123.69),
		newAsset("IHYA", "iShares iBoxx $ High Yield Corporate Bond ETF", 45.67),
	}
	for i := range assets {
		if err := repo.CreateAsset(&assets[i]); err != nil {
			log.Fatalf("failed to seed asset %s: %v", assets[i].Ticker, err)
		}
	}

	alerts := []models.Alert{
		models.FallBelow("AAPL", 129.00),
		models.RiseAbove("CVX", 175.00),
		models.RiseAbove("CVX", 200.00),
		models.FallBelow("IHYA", 44.90),
		models.MonthLow("ROBO"),
		models.FallBelow("ROBO", 115.00),
		models.FallBelow("ROBO", 90.00),
	}
	for i := range alerts {
		if err := repo.CreateAlert(&alerts[i]); err != nil {
			log.Fatalf("failed to seed alert on %s: %v", alerts[i].Ticker, err)
		}
	}

	watchlists := map[string][]string{
		"Hot stocks":      {"AAPL", "AMZN", "CVX"},
		"Long term holds": {"ROBO", "IHYA"},
	}
	for name, members := range watchlists {
		watchlist, err := repo.CreateWatchlist(name)
		if err != nil {
			log.Fatalf("failed to seed watchlist %s: %v", name, err)
		}
		for _, ticker := range members {
			if _, err := repo.AddAssetToWatchlist(watchlist.ID, ticker, nil); err != nil {
				log.Fatalf("failed to add %s to %s: %v", ticker, name, err)
			}
		}
	}

	log.Println("✅ Demo data seeded")
}

// newAsset builds a freshly-inserted asset: previous price pinned to the
// current price so the derived change fields start at zero.
func newAsset(ticker, name string, price float64) models.Asset {
	return models.Asset{
		Ticker:        ticker,
		DisplayedName: name,
		Price:         price,
		PreviousPrice: price,
	}
}

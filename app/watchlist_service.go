package app

import (
	"context"

	"stock-price-alert/database"
	"stock-price-alert/marketdata"
	"stock-price-alert/stats"
)

// watchlistRepository is the slice of the repository the watchlist service
// depends on.
type watchlistRepository interface {
	ListWatchlists() ([]database.Watchlist, error)
	CreateWatchlist(name string) (*database.Watchlist, error)
	DeleteWatchlist(id int) (*database.Watchlist, error)
	RenameWatchlist(id int, newName string) (*database.Watchlist, error)
	AddAssetToWatchlist(id int, ticker string, materialize database.MaterializeFunc) (*database.Watchlist, error)
}

// WatchlistService implements watchlist management on top of the repository
// and the market-data gateway. It owns the discover-and-adopt path: adding
// a ticker that storage has never seen fetches one summary from the
// provider, derives the asset's statistics and inserts the row inside the
// same transaction as the membership append.
type WatchlistService struct {
	repo   watchlistRepository
	market *marketdata.Client
}

// NewWatchlistService creates a new watchlist service
func NewWatchlistService(repo watchlistRepository, market *marketdata.Client) *WatchlistService {
	return &WatchlistService{repo: repo, market: market}
}

// List returns every watchlist with its member assets.
func (s *WatchlistService) List() ([]database.WatchlistSummary, error) {
	watchlists, err := s.repo.ListWatchlists()
	if err != nil {
		return nil, err
	}
	summaries := make([]database.WatchlistSummary, 0, len(watchlists))
	for i := range watchlists {
		summaries = append(summaries, watchlists[i].Summary())
	}
	return summaries, nil
}

// Create makes a new empty watchlist with a unique name.
func (s *WatchlistService) Create(name string) (*database.WatchlistSummary, error) {
	watchlist, err := s.repo.CreateWatchlist(name)
	if err != nil {
		return nil, err
	}
	summary := watchlist.Summary()
	return &summary, nil
}

// Delete removes a watchlist and its membership rows, returning the deleted
// summary. Member assets survive.
func (s *WatchlistService) Delete(id int) (*database.WatchlistSummary, error) {
	watchlist, err := s.repo.DeleteWatchlist(id)
	if err != nil {
		return nil, err
	}
	summary := watchlist.Summary()
	return &summary, nil
}

// Rename changes a watchlist's name. Renaming to the current name succeeds
// without touching storage.
func (s *WatchlistService) Rename(id int, newName string) (*database.WatchlistSummary, error) {
	watchlist, err := s.repo.RenameWatchlist(id, newName)
	if err != nil {
		return nil, err
	}
	summary := watchlist.Summary()
	return &summary, nil
}

// AddAsset appends an asset to a watchlist. An unknown ticker is
// materialized with exactly one gateway fetch; on first insert the asset's
// previous price equals its price, so the derived change fields are zero
// while the window statistics come from the fetched month of closes.
func (s *WatchlistService) AddAsset(ctx context.Context, id int, ticker string) (*database.WatchlistSummary, error) {
	watchlist, err := s.repo.AddAssetToWatchlist(id, ticker, func(t string) (*database.Asset, error) {
		summary, err := s.market.Summary(ctx, t)
		if err != nil {
			return nil, err
		}
		return newAssetFromSummary(summary), nil
	})
	if err != nil {
		return nil, err
	}
	summary := watchlist.Summary()
	return &summary, nil
}

// newAssetFromSummary derives a fresh Asset from one provider summary. The
// previous price is pinned to the current price so the change fields start
// at zero; the window statistics come from the summary's month of closes.
func newAssetFromSummary(summary *marketdata.Summary) *database.Asset {
	update := stats.Compute(summary.Price, summary.Price, marketdata.Closes(summary.Candles))
	return &database.Asset{
		Ticker:             summary.Ticker,
		DisplayedName:      summary.DisplayedName,
		PreviousPrice:      update.PreviousPrice,
		Price:              update.Price,
		PriceChange:        update.PriceChange,
		PriceChangePercent: update.PriceChangePercent,
		MinMonthPrice:      update.MinMonthPrice,
		MaxMonthPrice:      update.MaxMonthPrice,
		AvgMonthPrice:      update.AvgMonthPrice,
	}
}

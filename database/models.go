package database

import (
	models "stock-price-alert/database/models_pkg"
)

// Type aliases so callers can refer to the data models through the database
// package directly.

type Asset = models.Asset
type Alert = models.Alert
type Watchlist = models.Watchlist
type WatchlistSummary = models.WatchlistSummary
type AssetRef = models.AssetRef

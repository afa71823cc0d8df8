package models

import (
	"fmt"
	"time"
)

// Asset represents a tracked financial instrument with its current price
// and derived statistics over the trailing month.
//
// Key Fields:
//   - Ticker: provider symbol, primary key. Sized to fit exchange-suffixed
//     listings such as "COINBASE.SW", not just bare US symbols.
//   - Price / PreviousPrice: current price and the price before the last
//     refresh. On first insert PreviousPrice equals Price so the derived
//     change fields start at zero.
//   - PriceChange / PriceChangePercent: derived from the two prices above
//   - MinMonthPrice / MaxMonthPrice / AvgMonthPrice: trailing-window close
//     statistics, null until the first window has been fetched
//
// Deleting an asset cascades to its alerts. Watchlist membership rows are
// owned by the association table and never delete the asset itself.
type Asset struct {
	Ticker             string       `gorm:"size:20;primaryKey" json:"ticker"`
	DisplayedName      string       `gorm:"size:120;not null" json:"displayed_name"`
	PreviousPrice      float64      `gorm:"not null" json:"previous_price"`
	Price              float64      `gorm:"not null" json:"price"`
	PriceChange        float64      `gorm:"default:0" json:"price_change"`
	PriceChangePercent float64      `gorm:"default:0" json:"price_change_percent"`
	MinMonthPrice      *float64     `json:"min_month_price,omitempty"`
	MaxMonthPrice      *float64     `json:"max_month_price,omitempty"`
	AvgMonthPrice      *float64     `json:"avg_month_price,omitempty"`
	Alerts             []Alert      `gorm:"foreignKey:Ticker;references:Ticker;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"alerts,omitempty"`
	Watchlists         []*Watchlist `gorm:"many2many:watchlist_asset;joinForeignKey:AssetTicker;joinReferences:WatchlistID" json:"-"`
	CreatedAt          time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Asset
func (Asset) TableName() string {
	return "asset"
}

// Alert type values. These three strings are the closed set of recognized
// alert kinds; use the constructors below instead of filling Alert by hand
// so the threshold rules hold by construction.
const (
	AlertMonthLow  = "month low"
	AlertFallBelow = "fall below"
	AlertRiseAbove = "rise above"
)

// Alert represents a stored threshold condition on one asset. Alerts are
// plain records: nothing in this system evaluates or fires them.
//
// PriceThreshold is nil for "month low" alerts, which are relative to the
// asset's own trailing minimum, and required for the other two kinds.
type Alert struct {
	ID             int      `gorm:"primaryKey;autoIncrement" json:"id"`
	Ticker         string   `gorm:"size:20;not null;index" json:"ticker"`
	AlertType      string   `gorm:"size:20;not null" json:"alert_type"`
	PriceThreshold *float64 `gorm:"type:decimal(15,4)" json:"price_threshold,omitempty"`
}

// TableName specifies the table name for Alert
func (Alert) TableName() string {
	return "alert"
}

// FallBelow builds an alert that fires conceptually when the price drops
// under a fixed threshold.
func FallBelow(ticker string, threshold float64) Alert {
	return Alert{Ticker: ticker, AlertType: AlertFallBelow, PriceThreshold: &threshold}
}

// RiseAbove builds an alert for the price exceeding a fixed threshold.
func RiseAbove(ticker string, threshold float64) Alert {
	return Alert{Ticker: ticker, AlertType: AlertRiseAbove, PriceThreshold: &threshold}
}

// MonthLow builds an alert relative to the asset's trailing monthly minimum.
// It carries no threshold of its own.
func MonthLow(ticker string) Alert {
	return Alert{Ticker: ticker, AlertType: AlertMonthLow}
}

// Validate checks that the alert matches one of the three recognized shapes.
func (a *Alert) Validate() error {
	if a.Ticker == "" {
		return fmt.Errorf("alert requires a ticker")
	}
	switch a.AlertType {
	case AlertMonthLow:
		if a.PriceThreshold != nil {
			return fmt.Errorf("%q alerts track the trailing minimum and take no price threshold", AlertMonthLow)
		}
	case AlertFallBelow, AlertRiseAbove:
		if a.PriceThreshold == nil {
			return fmt.Errorf("%q alerts require a price threshold", a.AlertType)
		}
	default:
		return fmt.Errorf("unknown alert type %q", a.AlertType)
	}
	return nil
}

// Watchlist represents a user-named collection of assets. Names are unique
// across all watchlists, compared case-sensitively. Membership lives in the
// watchlist_asset association table; deleting a watchlist removes its
// membership rows but never the member assets.
type Watchlist struct {
	ID     int     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name   string  `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Assets []Asset `gorm:"many2many:watchlist_asset;joinForeignKey:WatchlistID;joinReferences:AssetTicker" json:"assets"`
}

// TableName specifies the table name for Watchlist
func (Watchlist) TableName() string {
	return "watchlist"
}

// AssetRef is the shallow asset view embedded in watchlist responses.
type AssetRef struct {
	Ticker        string `json:"ticker"`
	DisplayedName string `json:"displayed_name"`
}

// Summary returns the id/name/assets view used by the watchlist API.
func (w *Watchlist) Summary() WatchlistSummary {
	assets := make([]AssetRef, 0, len(w.Assets))
	for _, a := range w.Assets {
		assets = append(assets, AssetRef{Ticker: a.Ticker, DisplayedName: a.DisplayedName})
	}
	return WatchlistSummary{ID: w.ID, Name: w.Name, Assets: assets}
}

// WatchlistSummary is the JSON shape returned for a watchlist.
type WatchlistSummary struct {
	ID     int        `json:"id"`
	Name   string     `json:"name"`
	Assets []AssetRef `json:"assets"`
}

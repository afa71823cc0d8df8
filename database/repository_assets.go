package database

import (
	"errors"

	"gorm.io/gorm"

	models "stock-price-alert/database/models_pkg"
	"stock-price-alert/stats"
)

// GetAsset fetches one asset by ticker.
func (r *Repository) GetAsset(ticker string) (*models.Asset, error) {
	var asset models.Asset
	if err := r.db.DB().First(&asset, "ticker = ?", ticker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundErrorWithID("Asset", ticker)
		}
		return nil, WrapStorageError("GetAsset", err)
	}
	return &asset, nil
}

// ListAssets returns every stored asset ordered by ticker.
func (r *Repository) ListAssets() ([]models.Asset, error) {
	var assets []models.Asset
	if err := r.db.DB().Order("ticker").Find(&assets).Error; err != nil {
		return nil, WrapStorageError("ListAssets", err)
	}
	return assets, nil
}

// CreateAsset inserts a new asset row. A duplicate ticker is a conflict.
func (r *Repository) CreateAsset(asset *models.Asset) error {
	err := r.db.DB().Omit("Alerts", "Watchlists").Create(asset).Error
	return TranslateError("CreateAsset", "Asset", err)
}

// UpdateAssetPrice applies a price refresh to a stored asset: the old price
// becomes previous_price, the change fields are recomputed, and the
// trailing-window statistics are overwritten when a window is supplied.
func (r *Repository) UpdateAssetPrice(ticker string, newPrice float64, closes []float64) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&asset, "ticker = ?", ticker).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundErrorWithID("Asset", ticker)
			}
			return WrapStorageError("UpdateAssetPrice", err)
		}

		update := stats.Compute(asset.Price, newPrice, closes)
		fields := map[string]interface{}{
			"previous_price":       update.PreviousPrice,
			"price":                update.Price,
			"price_change":         update.PriceChange,
			"price_change_percent": update.PriceChangePercent,
		}
		if update.MinMonthPrice != nil {
			fields["min_month_price"] = *update.MinMonthPrice
			fields["max_month_price"] = *update.MaxMonthPrice
			fields["avg_month_price"] = *update.AvgMonthPrice
		}
		if err := tx.Model(&asset).Updates(fields).Error; err != nil {
			return WrapStorageError("UpdateAssetPrice", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

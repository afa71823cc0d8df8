package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	models "stock-price-alert/database/models_pkg"
)

// MaterializeFunc builds a new Asset for a ticker that is not yet in
// storage, typically by fetching a summary from the market-data gateway.
// It runs inside the membership transaction so a failure rolls everything
// back.
type MaterializeFunc func(ticker string) (*models.Asset, error)

// ListWatchlists returns every watchlist with its member assets, ordered by
// id.
func (r *Repository) ListWatchlists() ([]models.Watchlist, error) {
	var lists []models.Watchlist
	if err := r.db.DB().Preload("Assets").Order("id").Find(&lists).Error; err != nil {
		return nil, WrapStorageError("ListWatchlists", err)
	}
	return lists, nil
}

// CreateWatchlist creates an empty watchlist. The name must not be taken;
// the existence check runs inside the transaction and the unique index on
// name settles any race as a ConflictError.
func (r *Repository) CreateWatchlist(name string) (*models.Watchlist, error) {
	watchlist := models.Watchlist{Name: name}
	err := r.db.DB().Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Watchlist{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return WrapStorageError("CreateWatchlist", err)
		}
		if count > 0 {
			return NewConflictError("Watchlist", fmt.Sprintf("name '%s' already exists", name))
		}
		return TranslateError("CreateWatchlist", "Watchlist", tx.Create(&watchlist).Error)
	})
	if err != nil {
		return nil, err
	}
	return &watchlist, nil
}

// DeleteWatchlist removes a watchlist and its membership rows. Member
// assets are left untouched.
func (r *Repository) DeleteWatchlist(id int) (*models.Watchlist, error) {
	var watchlist models.Watchlist
	err := r.db.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&watchlist, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundErrorWithID("Watchlist", id)
			}
			return WrapStorageError("DeleteWatchlist", err)
		}
		if err := tx.Model(&watchlist).Association("Assets").Clear(); err != nil {
			return WrapStorageError("DeleteWatchlist", err)
		}
		return TranslateError("DeleteWatchlist", "Watchlist", tx.Delete(&watchlist).Error)
	})
	if err != nil {
		return nil, err
	}
	return &watchlist, nil
}

// RenameWatchlist changes a watchlist's name. Renaming to the current name
// is a no-op success; colliding with a different watchlist is a conflict.
func (r *Repository) RenameWatchlist(id int, newName string) (*models.Watchlist, error) {
	var watchlist models.Watchlist
	err := r.db.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&watchlist, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundErrorWithID("Watchlist", id)
			}
			return WrapStorageError("RenameWatchlist", err)
		}
		if watchlist.Name == newName {
			return nil
		}
		var count int64
		if err := tx.Model(&models.Watchlist{}).Where("name = ? AND id <> ?", newName, id).Count(&count).Error; err != nil {
			return WrapStorageError("RenameWatchlist", err)
		}
		if count > 0 {
			return NewConflictError("Watchlist", fmt.Sprintf("name '%s' already exists", newName))
		}
		watchlist.Name = newName
		return TranslateError("RenameWatchlist", "Watchlist", tx.Save(&watchlist).Error)
	})
	if err != nil {
		return nil, err
	}
	return &watchlist, nil
}

// AddAssetToWatchlist appends an asset to a watchlist's membership. An
// unknown ticker is materialized through the supplied callback and inserted
// in the same transaction, so a failed market-data fetch leaves no partial
// state. Adding a ticker that is already a member is a conflict.
func (r *Repository) AddAssetToWatchlist(id int, ticker string, materialize MaterializeFunc) (*models.Watchlist, error) {
	var watchlist models.Watchlist
	err := r.db.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Assets").First(&watchlist, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundErrorWithID("Watchlist", id)
			}
			return WrapStorageError("AddAssetToWatchlist", err)
		}

		for _, member := range watchlist.Assets {
			if member.Ticker == ticker {
				return NewConflictError("Watchlist", fmt.Sprintf("asset '%s' is already in the watchlist", ticker))
			}
		}

		var asset models.Asset
		err := tx.First(&asset, "ticker = ?", ticker).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if materialize == nil {
				return NewNotFoundErrorWithID("Asset", ticker)
			}
			created, err := materialize(ticker)
			if err != nil {
				return err
			}
			if err := tx.Omit("Alerts", "Watchlists").Create(created).Error; err != nil {
				return TranslateError("AddAssetToWatchlist", "Asset", err)
			}
			asset = *created
		case err != nil:
			return WrapStorageError("AddAssetToWatchlist", err)
		}

		if err := tx.Model(&watchlist).Association("Assets").Append(&asset); err != nil {
			return TranslateError("AddAssetToWatchlist", "Watchlist", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &watchlist, nil
}

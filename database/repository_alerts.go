package database

import (
	"errors"

	"gorm.io/gorm"

	models "stock-price-alert/database/models_pkg"
)

// ListAlerts returns stored alerts, restricted to one asset when ticker is
// non-empty.
func (r *Repository) ListAlerts(ticker string) ([]models.Alert, error) {
	var alerts []models.Alert
	query := r.db.DB().Order("id")
	if ticker != "" {
		query = query.Where("ticker = ?", ticker)
	}
	if err := query.Find(&alerts).Error; err != nil {
		return nil, WrapStorageError("ListAlerts", err)
	}
	return alerts, nil
}

// CreateAlert stores a threshold condition for an existing asset. The alert
// must match one of the three recognized shapes and the referenced asset
// must already be in storage.
func (r *Repository) CreateAlert(alert *models.Alert) error {
	if err := alert.Validate(); err != nil {
		return NewValidationError("alert", err.Error())
	}
	return r.db.DB().Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Asset{}).Where("ticker = ?", alert.Ticker).Count(&count).Error; err != nil {
			return WrapStorageError("CreateAlert", err)
		}
		if count == 0 {
			return NewNotFoundErrorWithID("Asset", alert.Ticker)
		}
		return TranslateError("CreateAlert", "Alert", tx.Create(alert).Error)
	})
}

// DeleteAlert removes one alert by id.
func (r *Repository) DeleteAlert(id int) (*models.Alert, error) {
	var alert models.Alert
	err := r.db.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&alert, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundErrorWithID("Alert", id)
			}
			return WrapStorageError("DeleteAlert", err)
		}
		return TranslateError("DeleteAlert", "Alert", tx.Delete(&alert).Error)
	})
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

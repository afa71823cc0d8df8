package database

import (
	"fmt"

	models "stock-price-alert/database/models_pkg"
)

// Repository handles database operations for assets, alerts and
// watchlists. One instance is built at startup and shared by the service
// and API layers; every mutating method runs inside its own transaction.
type Repository struct {
	db *Database
}

// NewRepository creates a new repository
func NewRepository(db *Database) *Repository {
	return &Repository{db: db}
}

// InitSchema performs auto-migration of the three entity tables plus the
// watchlist_asset association table, which GORM derives from the many2many
// relation with a composite primary key of both foreign keys.
func (r *Repository) InitSchema() error {
	err := r.db.DB().AutoMigrate(
		&models.Asset{},
		&models.Alert{},
		&models.Watchlist{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}

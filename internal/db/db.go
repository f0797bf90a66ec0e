package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/go-invoicing/internal/models"
)

// Connect opens the database for the given DSN. A postgres:// (or
// postgresql://) URL selects the Postgres driver; anything else is treated
// as a SQLite file path.
func Connect(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Migrate applies GORM auto-migrations for all entities.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.OptionalText{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Abdulaziz20007/Phono-Backend/internal/infrastructure/repositories"
)

// Open creates a new database connection with production-ready settings.
// Unique violations surface as gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	return open(postgres.Open(dsn))
}

func open(dialector gorm.Dialector) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}
	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// AutoMigrate performs database migration for the account tables.
// The casbin_rule table is created by the Casbin GORM adapter.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(repositories.Models()...); err != nil {
		return fmt.Errorf("failed to migrate account tables: %w", err)
	}
	return nil
}

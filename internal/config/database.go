package config

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"trip_ledger/internal/logger"
	"trip_ledger/internal/models"
)

// InitDB opens the configured database and migrates the trip and account tables.
func InitDB(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	// Open GORM connection
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.GormLogger()})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.TripRecord{}, &models.Account{}); err != nil {
		return nil, fmt.Errorf("auto-migration failed: %w", err)
	}

	logrus.WithField("driver", cfg.DBDriver).Info("database ready")
	return db, nil
}

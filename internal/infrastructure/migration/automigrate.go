// Package migration keeps the database schema in sync with the persistence
// models via GORM AutoMigrate.
package migration

import (
	"fmt"

	"gorm.io/gorm"

	"subtrack/internal/infrastructure/persistence/models"
	"subtrack/internal/shared/logger"
)

// AutoMigrateModels returns every model the schema is derived from.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.PlanModel{},
		&models.SubscriptionModel{},
	}
}

// Run migrates the schema for all registered models.
func Run(db *gorm.DB) error {
	modelList := AutoMigrateModels()

	logger.Info("starting database migration", "models_count", len(modelList))

	if err := db.AutoMigrate(modelList...); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}

	logger.Info("database migration completed")
	return nil
}

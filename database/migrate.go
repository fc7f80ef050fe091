package database

import (
	"fmt"

	"gorm.io/gorm"

	"plantpal_backend/internal/models"
)

// Migrate runs the schema migration for every model.
func Migrate(db *gorm.DB) error {
	// uuid_generate_v4 defaults on primary keys need the extension.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid-ossp extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Plant{},
		&models.CareAction{},
		&models.CommunityShare{},
		&models.Identification{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}
	return nil
}

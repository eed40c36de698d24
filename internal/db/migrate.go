package db

import (
	"fmt"

	"github.com/blinko-space/blinko-server/internal/models"
	"gorm.io/gorm"
)

// Migrate applies the schema for all persisted models.
//
// The configs table intentionally carries no unique (key, user_id) index;
// duplicate rows are repaired by the settings writer on the next update.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	return conn.AutoMigrate(
		&models.User{},
		&models.ConfigEntry{},
		&models.AIProvider{},
		&models.AIModel{},
	)
}

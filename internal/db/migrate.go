package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/dengas/devtimetracker/internal/models"
)

// Migrate creates or updates the schema for every tracked entity.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	if errAutoMigrate := conn.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.ProjectStats{},
		&models.FileStats{},
		&models.ProjectDailyStat{},
		&models.FileDailyStat{},
	); errAutoMigrate != nil {
		return fmt.Errorf("db: migrate: %w", errAutoMigrate)
	}
	return nil
}

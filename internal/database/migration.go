package database

import (
	"fmt"

	"github.com/davidsantoszx/gerenciadorsalario/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Plan{},
		&models.LineItem{},
		&models.Session{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

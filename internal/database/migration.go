package database

import (
	"fmt"

	"github.com/giganoto/fast-beta/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.RevokedToken{},
		&models.BlogCategory{},
		&models.BlogTag{},
		&models.Blog{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SeedAdmin provisions the configured administrator account if it does
// not exist yet. Identities are immutable afterwards; re-running with
// the same email is a no-op.
func SeedAdmin(db *gorm.DB, name, email string) error {
	if email == "" {
		return nil
	}
	admin := models.Admin{Name: name, Email: email}
	err := db.Where(models.Admin{Email: email}).
		Attrs(models.Admin{Name: name}).
		FirstOrCreate(&admin).Error
	if err != nil {
		return fmt.Errorf("seed admin %s: %w", email, err)
	}
	return nil
}

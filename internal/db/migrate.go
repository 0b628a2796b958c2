package db

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hward/assetdesk/internal/auth"
	"github.com/hward/assetdesk/internal/models"
	"gorm.io/gorm"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Employee{},
		&models.Asset{},
		&models.SoftwareLicense{},
		&models.Repair{},
		&models.MaintenanceReminder{},
		&models.Bill{},
		&models.InternetMonth{},
		&models.InternetAddon{},
		&models.Tag{},
		&models.Memo{},
		&models.M365Usage{},
		&models.M365Sync{},
		&models.ReportAttachment{},
		&models.FingerprintAssignment{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// SeedAdmin creates the initial admin account if no user with that
// username exists. Existing accounts are left untouched.
func SeedAdmin(db *gorm.DB, username, password string) error {
	var existing models.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("db: check admin %q: %w", username, err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("db: hash admin password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Role:         "admin",
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("db: seed admin %q: %w", username, err)
	}
	return nil
}

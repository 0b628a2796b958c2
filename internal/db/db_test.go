package db

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/hward/assetdesk/internal/config"
	"github.com/hward/assetdesk/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

func TestMySQLDSN(t *testing.T) {
	dsn := MySQLDSN(config.DatabaseConfig{
		User:     "adk",
		Password: "pw",
		Host:     "10.0.0.9",
		Port:     3307,
		Name:     "assetdesk_prod",
	})
	want := "adk:pw@tcp(10.0.0.9:3307)/assetdesk_prod?parseTime=true"
	if dsn != want {
		t.Errorf("MySQLDSN = %q, want %q", dsn, want)
	}
}

func TestConnect_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adk.db")
	db, err := Connect(config.DatabaseConfig{Driver: "sqlite", Path: path})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if db == nil {
		t.Fatal("Connect returned nil db")
	}
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := Connect(config.DatabaseConfig{Driver: "postgres"})
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if !strings.Contains(err.Error(), "unsupported driver") {
		t.Errorf("error = %v, want mention of unsupported driver", err)
	}
}

func TestAutoMigrate_AllTables(t *testing.T) {
	db := openTestDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	for _, m := range AllModels() {
		if !db.Migrator().HasTable(m) {
			t.Errorf("missing table for model %T", m)
		}
	}
}

func TestSeedAdmin_CreatesOnce(t *testing.T) {
	db := openTestDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	if err := SeedAdmin(db, "admin", "changeme"); err != nil {
		t.Fatalf("SeedAdmin: %v", err)
	}

	var user models.User
	if err := db.Where("username = ?", "admin").First(&user).Error; err != nil {
		t.Fatalf("admin not created: %v", err)
	}
	if user.Role != "admin" {
		t.Errorf("Role = %q, want %q", user.Role, "admin")
	}
	if user.PasswordHash == "" || user.PasswordHash == "changeme" {
		t.Errorf("PasswordHash = %q, want a hash", user.PasswordHash)
	}

	// Second seed must not duplicate or overwrite.
	if err := SeedAdmin(db, "admin", "other"); err != nil {
		t.Fatalf("SeedAdmin (second): %v", err)
	}
	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count != 1 {
		t.Errorf("admin count = %d, want 1", count)
	}
	var again models.User
	db.Where("username = ?", "admin").First(&again)
	if again.PasswordHash != user.PasswordHash {
		t.Error("second seed overwrote the existing admin password")
	}
}

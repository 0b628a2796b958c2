package m365

import (
	"testing"
	"time"

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
	if err := db.AutoMigrate(&models.M365Usage{}, &models.M365Sync{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedSnapshots(t *testing.T, db *gorm.DB) time.Time {
	t.Helper()
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	old := now.AddDate(0, -1, 0)
	active := now.AddDate(0, 0, -5)
	stale := now.AddDate(0, 0, -90)

	rows := []models.M365Usage{
		// Older snapshots, superseded for "latest" views.
		{UserPrincipalName: "alice@corp.example", StorageUsedGB: 10, StorageQuotaGB: 100, LastActivity: &active, RecordedAt: old},
		{UserPrincipalName: "bob@corp.example", StorageUsedGB: 40, StorageQuotaGB: 100, LastActivity: &stale, RecordedAt: old},
		// Latest snapshots.
		{UserPrincipalName: "alice@corp.example", StorageUsedGB: 92, StorageQuotaGB: 100, LastActivity: &active, RecordedAt: now},
		{UserPrincipalName: "bob@corp.example", StorageUsedGB: 45, StorageQuotaGB: 100, LastActivity: &stale, RecordedAt: now},
		{UserPrincipalName: "carol@corp.example", StorageUsedGB: 70, StorageQuotaGB: 100, RecordedAt: now}, // never active
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed snapshots: %v", err)
	}
	return now
}

func TestLatestPerAccount(t *testing.T) {
	db := openTestDB(t)
	seedSnapshots(t, db)

	latest, err := LatestPerAccount(db)
	if err != nil {
		t.Fatalf("LatestPerAccount: %v", err)
	}
	if len(latest) != 3 {
		t.Fatalf("len = %d, want 3", len(latest))
	}
	// Ordered by principal name; alice's latest row is the 92 GB one.
	if latest[0].UserPrincipalName != "alice@corp.example" || latest[0].StorageUsedGB != 92 {
		t.Errorf("latest[0] = %s/%v, want alice with 92 GB", latest[0].UserPrincipalName, latest[0].StorageUsedGB)
	}
}

func TestHighUsage(t *testing.T) {
	db := openTestDB(t)
	seedSnapshots(t, db)

	rows, err := HighUsage(db, 80)
	if err != nil {
		t.Fatalf("HighUsage: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len = %d, want 1", len(rows))
	}
	if rows[0].UserPrincipalName != "alice@corp.example" {
		t.Errorf("high usage = %q, want alice", rows[0].UserPrincipalName)
	}
}

func TestInactive(t *testing.T) {
	db := openTestDB(t)
	now := seedSnapshots(t, db)

	rows, err := Inactive(db, 60, now)
	if err != nil {
		t.Fatalf("Inactive: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2 (bob stale, carol never active)", len(rows))
	}
	names := map[string]bool{}
	for _, r := range rows {
		names[r.UserPrincipalName] = true
	}
	if !names["bob@corp.example"] || !names["carol@corp.example"] {
		t.Errorf("inactive set = %v, want bob and carol", names)
	}
}

func TestTrend(t *testing.T) {
	db := openTestDB(t)
	seedSnapshots(t, db)

	rows, err := Trend(db, "alice@corp.example")
	if err != nil {
		t.Fatalf("Trend: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	if !rows[0].RecordedAt.Before(rows[1].RecordedAt) {
		t.Error("trend rows not in chronological order")
	}
	if rows[0].StorageUsedGB != 10 || rows[1].StorageUsedGB != 92 {
		t.Errorf("trend usage = %v, %v; want 10, 92", rows[0].StorageUsedGB, rows[1].StorageUsedGB)
	}
}

func TestTopStorage(t *testing.T) {
	db := openTestDB(t)
	seedSnapshots(t, db)

	rows, err := TopStorage(db, 2)
	if err != nil {
		t.Fatalf("TopStorage: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	if rows[0].UserPrincipalName != "alice@corp.example" {
		t.Errorf("top[0] = %q, want alice (92 GB)", rows[0].UserPrincipalName)
	}
	if rows[1].UserPrincipalName != "carol@corp.example" {
		t.Errorf("top[1] = %q, want carol (70 GB)", rows[1].UserPrincipalName)
	}
}

func TestIngestAndLastSync(t *testing.T) {
	db := openTestDB(t)

	sync, err := LastSync(db)
	if err != nil {
		t.Fatalf("LastSync (empty): %v", err)
	}
	if sync != nil {
		t.Fatal("expected nil sync before any ingest")
	}

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	rows := []models.M365Usage{
		{UserPrincipalName: "dave@corp.example", StorageUsedGB: 5, StorageQuotaGB: 50},
	}
	if err := Ingest(db, rows, now); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	sync, err = LastSync(db)
	if err != nil {
		t.Fatalf("LastSync: %v", err)
	}
	if sync == nil {
		t.Fatal("expected sync marker after ingest")
	}
	if sync.Accounts != 1 {
		t.Errorf("Accounts = %d, want 1", sync.Accounts)
	}
	if !sync.SyncedAt.Equal(now) {
		t.Errorf("SyncedAt = %v, want %v", sync.SyncedAt, now)
	}
}

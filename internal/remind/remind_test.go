package remind

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hward/assetdesk/internal/models"
	"github.com/hward/assetdesk/internal/notify"
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
	err = db.AutoMigrate(&models.Employee{}, &models.Asset{}, &models.MaintenanceReminder{}, &models.Bill{})
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedReminderFixtures(t *testing.T, db *gorm.DB, now time.Time) {
	t.Helper()
	emp := models.Employee{ID: "e-1", Name: "Dana", Email: "dana@corp.example"}
	asset := models.Asset{ID: "a-1", Name: "Projector", AssetTag: "AT-001"}
	if err := db.Create(&emp).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	if err := db.Create(&asset).Error; err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	rems := []models.MaintenanceReminder{
		{ID: "r-due", AssetID: "a-1", EmployeeID: "e-1", ReminderDate: now.AddDate(0, 0, 1), Notes: "projector lamp"},
		{ID: "r-far", AssetID: "a-1", EmployeeID: "e-1", ReminderDate: now.AddDate(0, 0, 30)},
		{ID: "r-done", AssetID: "a-1", EmployeeID: "e-1", ReminderDate: now, Returned: true},
	}
	if err := db.Create(&rems).Error; err != nil {
		t.Fatalf("seed reminders: %v", err)
	}

	bills := []models.Bill{
		{ID: "b-due", Name: "ISP invoice", Amount: 120, ReminderDate: now, Priority: "high", Status: "pending"},
		{ID: "b-paid", Name: "Old invoice", ReminderDate: now, Status: "paid"},
		{ID: "b-far", Name: "Next quarter", ReminderDate: now.AddDate(0, 0, 60), Status: "pending"},
	}
	if err := db.Create(&bills).Error; err != nil {
		t.Fatalf("seed bills: %v", err)
	}
}

func TestSweeper_Run(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	seedReminderFixtures(t, db, now)

	mock := notify.NewMockAdapter()
	s := &Sweeper{DB: db, Notifier: notify.NewMulti(mock), LeadDays: 3}

	n, err := s.Run(now)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 2 {
		t.Fatalf("sent = %d, want 2 (one reminder, one bill)", n)
	}

	sent := mock.Sent()
	var subjects []string
	for _, notice := range sent {
		subjects = append(subjects, notice.Subject)
	}
	joined := strings.Join(subjects, "; ")
	if !strings.Contains(joined, "Projector") {
		t.Errorf("notices %q missing maintenance subject for Projector", joined)
	}
	if !strings.Contains(joined, "ISP invoice") {
		t.Errorf("notices %q missing bill subject for ISP invoice", joined)
	}
}

func TestSweeper_Run_NoRepeatNotices(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	seedReminderFixtures(t, db, now)

	mock := notify.NewMockAdapter()
	s := &Sweeper{DB: db, Notifier: notify.NewMulti(mock), LeadDays: 3}

	if _, err := s.Run(now); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	n, err := s.Run(now.Add(time.Hour))
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if n != 0 {
		t.Errorf("second sweep sent = %d, want 0 (NotifiedAt guard)", n)
	}
}

func TestSweeper_Run_EmptyDB(t *testing.T) {
	db := openTestDB(t)
	s := &Sweeper{DB: db, Notifier: notify.NewMulti(), LeadDays: 3}

	n, err := s.Run(time.Now())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 0 {
		t.Errorf("sent = %d, want 0", n)
	}
}

func TestStart_BadExpression(t *testing.T) {
	db := openTestDB(t)
	s := &Sweeper{DB: db, Notifier: notify.NewMulti(), LeadDays: 3}

	_, err := Start(context.Background(), "not a cron expr", s)
	if err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestStart_StopsOnCancel(t *testing.T) {
	db := openTestDB(t)
	s := &Sweeper{DB: db, Notifier: notify.NewMulti(), LeadDays: 3}

	ctx, cancel := context.WithCancel(context.Background())
	c, err := Start(ctx, "0 9 * * *", s)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	cancel()
	// Stop is asynchronous; just ensure the scheduler object exists and a
	// second Stop is harmless.
	time.Sleep(10 * time.Millisecond)
	c.Stop()
}

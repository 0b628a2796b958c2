// Package remind runs the scheduled sweep that turns due maintenance
// reminders and pending bills into notifications.
package remind

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hward/assetdesk/internal/models"
	"github.com/hward/assetdesk/internal/notify"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Sweeper finds due items and notifies once per item. A second sweep on
// the same day must not repeat a notice; NotifiedAt is the guard.
type Sweeper struct {
	DB       *gorm.DB
	Notifier *notify.Multi
	LeadDays int
}

// Run performs one sweep and returns the number of notices sent.
func (s *Sweeper) Run(now time.Time) (int, error) {
	sent := 0

	due, err := s.dueReminders(now)
	if err != nil {
		return sent, err
	}
	for _, r := range due {
		s.Notifier.Send(notify.Notice{
			Subject: fmt.Sprintf("Maintenance return due: %s", r.Asset.Name),
			Body: fmt.Sprintf("%s holds %s, due back %s. %s",
				r.Employee.Name, r.Asset.Name, r.ReminderDate.Format("2006-01-02"), r.Notes),
		})
		if err := s.DB.Model(&models.MaintenanceReminder{}).Where("id = ?", r.ID).
			Update("notified_at", now).Error; err != nil {
			return sent, fmt.Errorf("remind: stamp reminder %s: %w", r.ID, err)
		}
		sent++
	}

	bills, err := s.dueBills(now)
	if err != nil {
		return sent, err
	}
	for _, b := range bills {
		s.Notifier.Send(notify.Notice{
			Subject: fmt.Sprintf("Bill due: %s", b.Name),
			Body: fmt.Sprintf("%s for %.2f is due %s (priority %s).",
				b.Name, b.Amount, b.ReminderDate.Format("2006-01-02"), b.Priority),
		})
		if err := s.DB.Model(&models.Bill{}).Where("id = ?", b.ID).
			Update("notified_at", now).Error; err != nil {
			return sent, fmt.Errorf("remind: stamp bill %s: %w", b.ID, err)
		}
		sent++
	}

	return sent, nil
}

// dueReminders returns unreturned reminders inside the lead window that
// have not been notified yet.
func (s *Sweeper) dueReminders(now time.Time) ([]models.MaintenanceReminder, error) {
	horizon := now.AddDate(0, 0, s.LeadDays)
	var due []models.MaintenanceReminder
	err := s.DB.Preload("Asset").Preload("Employee").
		Where("returned = ? AND reminder_date <= ? AND notified_at IS NULL", false, horizon).
		Order("reminder_date ASC").Find(&due).Error
	if err != nil {
		return nil, fmt.Errorf("remind: due reminders: %w", err)
	}
	return due, nil
}

// dueBills returns pending bills inside the lead window that have not
// been notified yet.
func (s *Sweeper) dueBills(now time.Time) ([]models.Bill, error) {
	horizon := now.AddDate(0, 0, s.LeadDays)
	var due []models.Bill
	err := s.DB.
		Where("status = ? AND reminder_date <= ? AND notified_at IS NULL", "pending", horizon).
		Order("reminder_date ASC").Find(&due).Error
	if err != nil {
		return nil, fmt.Errorf("remind: due bills: %w", err)
	}
	return due, nil
}

// Start schedules the sweep on a 5-field cron expression. It returns
// after scheduling; the sweep stops when ctx is cancelled.
func Start(ctx context.Context, expr string, sweeper *Sweeper) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(expr, func() {
		n, err := sweeper.Run(time.Now())
		if err != nil {
			log.Printf("remind: sweep: %v", err)
			return
		}
		if n > 0 {
			log.Printf("remind: sent %d notices", n)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("remind: schedule %q: %w", expr, err)
	}
	c.Start()

	go func() {
		<-ctx.Done()
		c.Stop()
	}()

	return c, nil
}

package models

import "time"

// Bill is a payable with a reminder date, swept by the reminder scheduler.
type Bill struct {
	ID           string  `gorm:"primaryKey;size:36"`
	Name         string  `gorm:"size:128;not null"`
	Amount       float64 `gorm:"default:0"`
	ReminderDate time.Time `gorm:"index"`
	Recurring    string    `gorm:"size:16;default:none"` // none, monthly, yearly
	Priority     string    `gorm:"size:16;default:normal"`
	Status       string    `gorm:"size:16;default:pending;index"` // pending, paid
	PaidAt       *time.Time
	NotifiedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

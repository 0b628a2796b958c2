package models

import "time"

// MaintenanceReminder schedules the return of an asset handed to an
// employee for maintenance or temporary use.
type MaintenanceReminder struct {
	ID           string `gorm:"primaryKey;size:36"`
	AssetID      string `gorm:"size:36;not null;index"`
	EmployeeID   string `gorm:"size:36;not null;index"`
	ReminderDate time.Time `gorm:"index"`
	Notes        string    `gorm:"type:text"`
	Returned     bool      `gorm:"default:false;index"`
	ReturnedAt   *time.Time
	NotifiedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Asset    Asset    `gorm:"foreignKey:AssetID"`
	Employee Employee `gorm:"foreignKey:EmployeeID"`
}

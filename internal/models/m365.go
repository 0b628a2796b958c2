package models

import (
	"time"

	"gorm.io/datatypes"
)

// M365Usage is one synced snapshot of a Microsoft 365 account's storage
// and activity. Multiple rows per account form the growth trend.
type M365Usage struct {
	ID                uint   `gorm:"primaryKey;autoIncrement"`
	UserPrincipalName string `gorm:"size:128;not null;index"`
	DisplayName       string `gorm:"size:128"`
	StorageUsedGB     float64
	StorageQuotaGB    float64
	LastActivity      *time.Time
	Services          datatypes.JSON `gorm:"type:json"` // per-service usage breakdown
	RecordedAt        time.Time      `gorm:"index"`
	CreatedAt         time.Time
}

// M365Sync records when a usage refresh last ran.
type M365Sync struct {
	ID       uint `gorm:"primaryKey;autoIncrement"`
	SyncedAt time.Time
	Accounts int
}

package models

import "time"

// SoftwareLicense is a purchased license or subscription.
type SoftwareLicense struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:128;not null"`
	Vendor       string `gorm:"size:128"`
	AssignedTo   string `gorm:"size:128"`
	RenewalCycle string `gorm:"size:16;default:yearly"` // monthly, yearly, none
	AutoRenew    bool   `gorm:"default:false"`
	ExpiryDate   *time.Time
	Notes        string `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

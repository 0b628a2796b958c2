package models

import "time"

// Asset is a physical hardware item tracked by the console.
type Asset struct {
	ID             string `gorm:"primaryKey;size:36"`
	Name           string `gorm:"size:128;not null"`
	AssetTag       string `gorm:"size:64;uniqueIndex"`
	Category       string `gorm:"size:64;index"`
	Brand          string `gorm:"size:64"`
	Model          string `gorm:"size:64"`
	SerialNumber   string `gorm:"size:64"`
	Location       string `gorm:"size:128"`
	Status         string `gorm:"size:16;default:available;index"` // available, assigned, repair, retired
	AssignedToID   *string `gorm:"size:36;index"`
	AssignmentType string  `gorm:"size:16"` // assigned, temporary
	PurchaseDate   *time.Time
	WarrantyExpiry *time.Time
	Remarks        string `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	AssignedTo *Employee `gorm:"foreignKey:AssignedToID"`
}

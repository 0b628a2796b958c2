package models

import "time"

// Tag is a printable asset label: who holds the item, its code and serial.
type Tag struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"size:64;not null"`
	AssetCode    string `gorm:"size:64;not null;index"`
	SerialNumber string `gorm:"size:64"`
	PurchaseDate *time.Time
	CreatedAt    time.Time
}

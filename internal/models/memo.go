package models

import (
	"time"

	"gorm.io/datatypes"
)

// Memo is an internal office memo rendered into a printable document.
type Memo struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	RefNumber  string `gorm:"size:64;uniqueIndex"`
	Subject    string `gorm:"size:256;not null"`
	Recipient  string `gorm:"size:128"`
	Department string `gorm:"size:64"`
	Body       string `gorm:"type:text"`
	CC         datatypes.JSON `gorm:"type:json"` // JSON array of names copied in
	CreatedBy  string         `gorm:"size:64"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

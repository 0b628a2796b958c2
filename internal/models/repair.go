package models

import "time"

// Repair is a dispatch/return cycle for an asset sent to an external
// vendor. A record is dispatched until a return action (manual or
// QR-scan) transitions it to returned; the transition is one-way.
type Repair struct {
	ID             string `gorm:"primaryKey;size:24"` // 24-char hex, minted at dispatch
	AssetID        string `gorm:"size:36;not null;index"`
	AssetName      string `gorm:"size:128"` // denormalized for listings and scan notices
	Vendor         string `gorm:"size:128;not null"`
	Reason         string `gorm:"type:text"`
	Status         string `gorm:"size:16;default:dispatched;index"` // dispatched, returned
	GatePassNumber string `gorm:"size:32;uniqueIndex"`
	QRCode         string `gorm:"type:text"` // PNG data URI encoding the return deep link
	DispatchDate   time.Time
	ReturnDate     *time.Time
	Notes          string `gorm:"type:text"`
	ProofImage     string `gorm:"size:256"` // stored file path, set at return time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Asset Asset `gorm:"foreignKey:AssetID"`
}

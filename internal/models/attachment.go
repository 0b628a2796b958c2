package models

import "time"

// ReportAttachment is an uploaded document stored on disk and indexed here.
type ReportAttachment struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	FileName   string `gorm:"size:128;not null"`
	FilePath   string `gorm:"size:256;not null"`
	FileType   string `gorm:"size:64"`
	FileSize   int64
	UploadedBy string `gorm:"size:64"`
	CreatedAt  time.Time
}

// FingerprintAssignment records a fingerprint-device enrollment notice
// sent to an employee.
type FingerprintAssignment struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	EmployeeID string `gorm:"size:36;not null;index"`
	Device     string `gorm:"size:64"`
	Location   string `gorm:"size:128"`
	NotifiedAt *time.Time
	CreatedAt  time.Time

	Employee Employee `gorm:"foreignKey:EmployeeID"`
}

package models

import "time"

// Employee is a staff member who can hold assets.
type Employee struct {
	ID         string `gorm:"primaryKey;size:36"`
	Name       string `gorm:"size:128;not null"`
	Email      string `gorm:"size:128;index"`
	Department string `gorm:"size:64;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Assets []Asset `gorm:"foreignKey:AssignedToID"`
}

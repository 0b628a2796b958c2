package models

import "time"

// User is a console operator account. Passwords are stored as argon2id
// hashes; the plaintext never touches the database.
type User struct {
	ID           string `gorm:"primaryKey;size:36"`
	Username     string `gorm:"size:64;not null;uniqueIndex"`
	Email        string `gorm:"size:128"`
	PasswordHash string `gorm:"size:256;not null"`
	Role         string `gorm:"size:16;default:staff"` // staff, admin
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

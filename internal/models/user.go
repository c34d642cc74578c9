package models

import "time"

// User represents an application user. The password is stored only as a
// bcrypt hash.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Nome         string `gorm:"size:100;not null"`
	Email        string `gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:100;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

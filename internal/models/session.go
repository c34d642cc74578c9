package models

import "time"

// Session stores user login sessions so logout can revoke a cookie
// before its expiry.
type Session struct {
	ID        string    `gorm:"primaryKey;size:64"` // UUID
	UserID    uint      `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	Revoked   bool      `gorm:"index;not null"`
	CreatedAt time.Time
}

package models

import "time"

// Plan is a user-owned budget template grouping line items. At most one
// plan per user carries Principal = true; the first plan a user creates
// becomes principal automatically.
type Plan struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Nome      string `gorm:"size:100;not null"`
	Principal bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Linhas []LineItem `gorm:"foreignKey:PlanID"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is a single income/expense entry within a plan.
type LineItem struct {
	ID        uint            `gorm:"primaryKey"`
	PlanID    uint            `gorm:"index;not null"`
	Tipo      string          `gorm:"size:50;not null"`
	Descricao string          `gorm:"size:200;not null"`
	Valor     decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	CreatedAt time.Time
}

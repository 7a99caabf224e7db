package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a spending record in its source currency. ConvertedCAD
// holds the amount in the base currency, fixed at creation using the historical
// rate for Date; it is never recomputed.
type Transaction struct {
	Base
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency     string          `gorm:"type:varchar(3);not null" json:"currency"`
	ConvertedCAD decimal.Decimal `gorm:"column:converted_cad;type:decimal(12,2)" json:"convertedCad"`
	Date         time.Time       `gorm:"type:date;not null" json:"date"`
	Description  string          `gorm:"not null" json:"description"`
	CategoryID   uint            `gorm:"not null;index" json:"categoryId"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expenditure struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date     time.Time       `gorm:"type:date;not null;index" json:"date"`
	Amount   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Category string          `gorm:"size:50;not null" json:"category"`
	Notes    string          `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

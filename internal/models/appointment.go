package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"not null;index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// Date is the calendar day (midnight, business timezone); Time is "15:04".
	Date time.Time `gorm:"type:date;not null;index" json:"date"`
	Time string    `gorm:"size:5;not null" json:"time"`

	ServiceType string          `gorm:"size:100;not null" json:"service_type"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Status      string          `gorm:"size:20;not null;default:'pending'" json:"status"`
	Notes       string          `gorm:"type:text" json:"notes"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `gorm:"<-:create" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Instant combines Date and Time into a single point in loc. A malformed
// Time falls back to midnight.
func (a *Appointment) Instant(loc *time.Location) time.Time {
	h, m := 0, 0
	if t, err := time.Parse("15:04", a.Time); err == nil {
		h, m = t.Hour(), t.Minute()
	}
	return time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), h, m, 0, 0, loc)
}

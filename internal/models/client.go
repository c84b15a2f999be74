package models

import "time"

// Client is a dog owner. FrequencyDays nil or 0 means "as needed".
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name          string `gorm:"size:100;not null" json:"name"`
	Phone         string `gorm:"size:30;not null;index" json:"phone"`
	Address       string `gorm:"size:255;not null" json:"address"`
	FrequencyDays *int   `gorm:"column:frequency_days" json:"frequency_days"`
	Notes         string `gorm:"type:text" json:"notes"`

	Dogs []Dog `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"dogs,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasCadence reports whether the client expects repeat appointments.
func (c *Client) HasCadence() bool {
	return c.FrequencyDays != nil && *c.FrequencyDays > 0
}

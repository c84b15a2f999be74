package models

import "time"

const (
	DogSizeSmall  = "small"
	DogSizeMedium = "medium"
	DogSizeLarge  = "large"

	HairShort  = "short"
	HairMedium = "medium"
	HairLong   = "long"
)

type Dog struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClientID uint `gorm:"not null;index" json:"client_id"`

	Name       string `gorm:"size:100;not null" json:"name"`
	Breed      string `gorm:"size:100" json:"breed"`
	Size       string `gorm:"size:10;not null" json:"size"`
	HairLength string `gorm:"size:10;not null" json:"hair_length"`
	PhotoURL   string `gorm:"size:255" json:"photo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ValidDogSize(s string) bool {
	switch s {
	case DogSizeSmall, DogSizeMedium, DogSizeLarge:
		return true
	}
	return false
}

func ValidHairLength(s string) bool {
	switch s {
	case HairShort, HairMedium, HairLong:
		return true
	}
	return false
}

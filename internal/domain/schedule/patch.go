package schedule

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/groomer-manager/internal/httperr"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
)

// ClientPatch carries a partial client update. Nil fields are left alone;
// FrequencyDays set to 0 clears the cadence.
type ClientPatch struct {
	Name          *string
	Phone         *string
	Address       *string
	FrequencyDays *int
	Notes         *string
}

func (p ClientPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return httperr.ErrBusinessf("invalid_input", "name cannot be empty")
	}
	if p.Phone != nil && strings.TrimSpace(*p.Phone) == "" {
		return httperr.ErrBusinessf("invalid_input", "phone cannot be empty")
	}
	if p.FrequencyDays != nil && *p.FrequencyDays < 0 {
		return httperr.ErrBusinessf("invalid_input", "frequency days must be positive")
	}
	return nil
}

func (p ClientPatch) Apply(c *models.Client) {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Phone != nil {
		c.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Address != nil {
		c.Address = strings.TrimSpace(*p.Address)
	}
	if p.FrequencyDays != nil {
		c.FrequencyDays = NormalizeFrequency(p.FrequencyDays)
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
}

// NormalizeFrequency folds zero and negative cadences into "as needed".
func NormalizeFrequency(days *int) *int {
	if days == nil || *days <= 0 {
		return nil
	}
	v := *days
	return &v
}

type DogPatch struct {
	Name       *string
	Breed      *string
	Size       *string
	HairLength *string
}

func (p DogPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return httperr.ErrBusinessf("invalid_input", "dog name cannot be empty")
	}
	if p.Size != nil && !models.ValidDogSize(*p.Size) {
		return httperr.ErrBusinessf("invalid_input", "invalid dog size %q", *p.Size)
	}
	if p.HairLength != nil && !models.ValidHairLength(*p.HairLength) {
		return httperr.ErrBusinessf("invalid_input", "invalid hair length %q", *p.HairLength)
	}
	return nil
}

func (p DogPatch) Apply(d *models.Dog) {
	if p.Name != nil {
		d.Name = strings.TrimSpace(*p.Name)
	}
	if p.Breed != nil {
		d.Breed = strings.TrimSpace(*p.Breed)
	}
	if p.Size != nil {
		d.Size = *p.Size
	}
	if p.HairLength != nil {
		d.HairLength = *p.HairLength
	}
}

type AppointmentPatch struct {
	ClientID    *uint
	Date        *time.Time
	Time        *string
	ServiceType *string
	Price       *decimal.Decimal
	Status      *string
	Notes       *string
}

func (p AppointmentPatch) Validate() error {
	if p.Time != nil {
		if err := ValidateClock(*p.Time); err != nil {
			return err
		}
	}
	if p.ServiceType != nil && strings.TrimSpace(*p.ServiceType) == "" {
		return httperr.ErrBusinessf("invalid_input", "service type cannot be empty")
	}
	if p.Price != nil && p.Price.IsNegative() {
		return httperr.ErrBusinessf("invalid_input", "price cannot be negative")
	}
	if p.Price != nil && !models.FitsMoney(*p.Price) {
		return httperr.ErrBusinessf("invalid_input", "price must have at most 2 decimals and be below 100000000")
	}
	if p.Status != nil && !Status(*p.Status).Valid() {
		return httperr.ErrBusinessf("invalid_input", "invalid status %q", *p.Status)
	}
	return nil
}

// Apply copies the set fields onto ap. Status changes through a patch
// bypass the confirm/complete/cancel rules and stamp nothing.
func (p AppointmentPatch) Apply(ap *models.Appointment) {
	if p.ClientID != nil {
		ap.ClientID = *p.ClientID
	}
	if p.Date != nil {
		ap.Date = *p.Date
	}
	if p.Time != nil {
		ap.Time = *p.Time
	}
	if p.ServiceType != nil {
		ap.ServiceType = strings.TrimSpace(*p.ServiceType)
	}
	if p.Price != nil {
		ap.Price = *p.Price
	}
	if p.Status != nil {
		ap.Status = *p.Status
	}
	if p.Notes != nil {
		ap.Notes = *p.Notes
	}
}

// ValidateClock accepts a 24h "HH:MM" time of day.
func ValidateClock(hm string) error {
	if len(hm) != 5 {
		return httperr.ErrBusinessf("invalid_input", "invalid time %q, want HH:MM", hm)
	}
	if _, err := time.Parse("15:04", hm); err != nil {
		return httperr.ErrBusinessf("invalid_input", "invalid time %q, want HH:MM", hm)
	}
	return nil
}

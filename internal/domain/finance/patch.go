package finance

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/groomer-manager/internal/httperr"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
)

type ExpenditurePatch struct {
	Date     *time.Time
	Amount   *decimal.Decimal
	Category *string
	Notes    *string
}

func (p ExpenditurePatch) Validate() error {
	if p.Amount != nil && p.Amount.IsNegative() {
		return httperr.ErrBusinessf("invalid_input", "amount cannot be negative")
	}
	if p.Amount != nil && !models.FitsMoney(*p.Amount) {
		return httperr.ErrBusinessf("invalid_input", "amount must have at most 2 decimals and be below 100000000")
	}
	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		return httperr.ErrBusinessf("invalid_input", "category cannot be empty")
	}
	return nil
}

func (p ExpenditurePatch) Apply(e *models.Expenditure) {
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Category != nil {
		e.Category = strings.TrimSpace(*p.Category)
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
}

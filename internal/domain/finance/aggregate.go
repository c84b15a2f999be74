package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/groomer-manager/internal/models"
)

// Totals are income, expenses and their difference. Every appointment
// counts as income whatever its status.
type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

func (t *Totals) addIncome(v decimal.Decimal) {
	t.Income = t.Income.Add(v)
	t.Net = t.Net.Add(v)
}

func (t *Totals) addExpense(v decimal.Decimal) {
	t.Expenses = t.Expenses.Add(v)
	t.Net = t.Net.Sub(v)
}

// civil drops clock time and zone, keeping the calendar date.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func within(d, start, end time.Time) bool {
	d = civil(d)
	return !d.Before(start) && !d.After(end)
}

// CheckRange normalizes start and end to calendar dates.
func CheckRange(start, end time.Time) (time.Time, time.Time, error) {
	s, e := civil(start), civil(end)
	if s.After(e) {
		return s, e, ErrInvalidRange
	}
	return s, e, nil
}

// AggregatePeriod sums prices and amounts dated within [start, end].
func AggregatePeriod(
	appointments []models.Appointment,
	expenditures []models.Expenditure,
	start, end time.Time,
) (Totals, error) {
	s, e, err := CheckRange(start, end)
	if err != nil {
		return Totals{}, err
	}

	var t Totals
	for _, ap := range appointments {
		if within(ap.Date, s, e) {
			t.addIncome(ap.Price)
		}
	}
	for _, ex := range expenditures {
		if within(ex.Date, s, e) {
			t.addExpense(ex.Amount)
		}
	}
	return t, nil
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/groomer-manager/internal/domain/finance"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
	"github.com/BruksfildServices01/groomer-manager/internal/timezone"
)

type ExpenditureDTO struct {
	ID       uint            `json:"id"`
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Notes    string          `json:"notes"`
}

func NewExpenditure(e models.Expenditure) ExpenditureDTO {
	return ExpenditureDTO{
		ID:       e.ID,
		Date:     e.Date.Format(timezone.DateLayout),
		Amount:   e.Amount,
		Category: e.Category,
		Notes:    e.Notes,
	}
}

func NewExpenditures(exps []models.Expenditure) []ExpenditureDTO {
	out := make([]ExpenditureDTO, 0, len(exps))
	for _, e := range exps {
		out = append(out, NewExpenditure(e))
	}
	return out
}

// TotalsDTO rounds money to cents for display.
type TotalsDTO struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

func NewTotals(t finance.Totals) TotalsDTO {
	return TotalsDTO{
		Income:   t.Income.Round(2),
		Expenses: t.Expenses.Round(2),
		Net:      t.Net.Round(2),
	}
}

type BucketDTO struct {
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
	TotalsDTO
}

func NewBuckets(buckets []finance.Bucket) []BucketDTO {
	out := make([]BucketDTO, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, BucketDTO{
			Label:     b.Label,
			Start:     b.Start.Format(timezone.DateLayout),
			End:       b.End.Format(timezone.DateLayout),
			TotalsDTO: NewTotals(b.Totals),
		})
	}
	return out
}

type DayDTO struct {
	Date string `json:"date"`
	TotalsDTO
}

type MonthDetailDTO struct {
	Year  int         `json:"year"`
	Month int         `json:"month"`
	Days  []DayDTO    `json:"days"`
	Weeks []BucketDTO `json:"weeks"`
	TotalsDTO
}

func NewMonthDetail(m finance.MonthDetail) MonthDetailDTO {
	out := MonthDetailDTO{
		Year:      m.Year,
		Month:     m.Month,
		Days:      make([]DayDTO, 0, len(m.Days)),
		Weeks:     NewBuckets(m.Weeks),
		TotalsDTO: NewTotals(m.Totals),
	}
	for _, d := range m.Days {
		out.Days = append(out.Days, DayDTO{
			Date:      d.Date.Format(timezone.DateLayout),
			TotalsDTO: NewTotals(d.Totals),
		})
	}
	return out
}

type WeekDTO struct {
	Start          string `json:"start"`
	End            string `json:"end"`
	Appointments   int    `json:"appointments"`
	OverdueClients int    `json:"overdue_clients"`
	TotalsDTO
}

func NewWeek(start, end time.Time, appointments, overdue int, totals finance.Totals) WeekDTO {
	return WeekDTO{
		Start:          start.Format(timezone.DateLayout),
		End:            end.Format(timezone.DateLayout),
		Appointments:   appointments,
		OverdueClients: overdue,
		TotalsDTO:      NewTotals(totals),
	}
}

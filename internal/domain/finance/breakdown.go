package finance

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/groomer-manager/internal/models"
)

type ServiceStat struct {
	ServiceType string          `json:"service_type"`
	Count       int             `json:"count"`
	Total       decimal.Decimal `json:"total"`
	Average     decimal.Decimal `json:"average"`
}

// ServiceBreakdown groups appointment income by service type, largest
// total first.
func ServiceBreakdown(appointments []models.Appointment) []ServiceStat {
	byType := make(map[string]*ServiceStat)
	for _, ap := range appointments {
		key := strings.TrimSpace(ap.ServiceType)
		st, ok := byType[key]
		if !ok {
			st = &ServiceStat{ServiceType: key}
			byType[key] = st
		}
		st.Count++
		st.Total = st.Total.Add(ap.Price)
	}

	out := make([]ServiceStat, 0, len(byType))
	for _, st := range byType {
		st.Average = st.Total.Div(decimal.NewFromInt(int64(st.Count))).Round(2)
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].ServiceType < out[j].ServiceType
	})
	return out
}

type CategoryStat struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage int64           `json:"percentage"`
}

// CategoryBreakdown groups expenses by category with each category's
// rounded share of the total.
func CategoryBreakdown(expenditures []models.Expenditure) []CategoryStat {
	byCat := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for _, ex := range expenditures {
		key := strings.TrimSpace(ex.Category)
		byCat[key] = byCat[key].Add(ex.Amount)
		total = total.Add(ex.Amount)
	}

	out := make([]CategoryStat, 0, len(byCat))
	for cat, amount := range byCat {
		st := CategoryStat{Category: cat, Amount: amount}
		if total.IsPositive() {
			st.Percentage = amount.Div(total).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

type DayStat struct {
	Date time.Time `json:"date"`
	Totals
}

type MonthDetail struct {
	Year  int       `json:"year"`
	Month int       `json:"month"`
	Days  []DayStat `json:"days"`
	Weeks []Bucket  `json:"weeks"`
	Totals
}

// MaxWeekOffset bounds how far WeekRange may move from the current week.
const MaxWeekOffset = 520

// MonthRange returns the first and last day of a calendar month.
func MonthRange(year int, month time.Month) (time.Time, time.Time, error) {
	if month < time.January || month > time.December || year < 1 || year > 9999 {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1), nil
}

// MonthlyDetail reports per-day and Monday based per-week figures for one
// month. Weeks straddling the month edge only cover days inside it.
func MonthlyDetail(
	year int,
	month time.Month,
	appointments []models.Appointment,
	expenditures []models.Expenditure,
) (MonthDetail, error) {
	first, last, err := MonthRange(year, month)
	if err != nil {
		return MonthDetail{}, err
	}

	days, err := Buckets(GranularityDay, first, last)
	if err != nil {
		return MonthDetail{}, err
	}
	weeks, err := Buckets(GranularityWeek, first, last)
	if err != nil {
		return MonthDetail{}, err
	}

	detail := MonthDetail{Year: year, Month: int(month), Weeks: weeks}

	for _, ap := range appointments {
		if i := find(days, ap.Date); i >= 0 {
			days[i].addIncome(ap.Price)
			detail.Weeks[find(weeks, ap.Date)].addIncome(ap.Price)
			detail.addIncome(ap.Price)
		}
	}
	for _, ex := range expenditures {
		if i := find(days, ex.Date); i >= 0 {
			days[i].addExpense(ex.Amount)
			detail.Weeks[find(weeks, ex.Date)].addExpense(ex.Amount)
			detail.addExpense(ex.Amount)
		}
	}

	detail.Days = make([]DayStat, len(days))
	for i, d := range days {
		detail.Days[i] = DayStat{Date: d.Start, Totals: d.Totals}
	}
	return detail, nil
}

// WeekRange returns Monday through Sunday of the week containing now,
// shifted by offset weeks. Offsets beyond MaxWeekOffset either way are
// rejected.
func WeekRange(now time.Time, offset int) (time.Time, time.Time, error) {
	if offset < -MaxWeekOffset || offset > MaxWeekOffset {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	start := WeekStart(now).AddDate(0, 0, 7*offset)
	return start, start.AddDate(0, 0, 6), nil
}

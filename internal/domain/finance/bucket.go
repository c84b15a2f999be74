package finance

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/groomer-manager/internal/httperr"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
)

type Period string

const (
	Period30Days  Period = "30days"
	Period3Months Period = "3months"
	Period6Months Period = "6months"
	PeriodYear    Period = "year"
)

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case Period30Days, Period3Months, Period6Months, PeriodYear:
		return p, nil
	}
	return "", httperr.ErrBusinessf("invalid_range", "unknown period %q", s)
}

func (p Period) Granularity() Granularity {
	switch p {
	case Period30Days:
		return GranularityDay
	case Period3Months, Period6Months:
		return GranularityWeek
	default:
		return GranularityMonth
	}
}

// Range returns the calendar window ending today that the period covers.
func (p Period) Range(now time.Time) (time.Time, time.Time) {
	end := civil(now)
	switch p {
	case Period30Days:
		return end.AddDate(0, 0, -30), end
	case Period3Months:
		return end.AddDate(0, -3, 0), end
	case Period6Months:
		return end.AddDate(0, -6, 0), end
	default:
		return end.AddDate(-1, 0, 0), end
	}
}

type Bucket struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Totals
}

// WeekStart returns the Monday on or before d.
func WeekStart(d time.Time) time.Time {
	d = civil(d)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func unitStart(g Granularity, d time.Time) time.Time {
	switch g {
	case GranularityWeek:
		return WeekStart(d)
	case GranularityMonth:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return d
	}
}

func unitNext(g Granularity, d time.Time) time.Time {
	switch g {
	case GranularityWeek:
		return d.AddDate(0, 0, 7)
	case GranularityMonth:
		return d.AddDate(0, 1, 0)
	default:
		return d.AddDate(0, 0, 1)
	}
}

func label(g Granularity, d time.Time) string {
	if g == GranularityMonth {
		return d.Format("2006-01")
	}
	return d.Format("2006-01-02")
}

// Buckets splits [start, end] into contiguous day, week (Monday based) or
// month intervals. The first and last buckets are clipped to the range.
func Buckets(g Granularity, start, end time.Time) ([]Bucket, error) {
	s, e, err := CheckRange(start, end)
	if err != nil {
		return nil, err
	}

	var out []Bucket
	for u := unitStart(g, s); !u.After(e); u = unitNext(g, u) {
		bs := u
		if bs.Before(s) {
			bs = s
		}
		be := unitNext(g, u).AddDate(0, 0, -1)
		if be.After(e) {
			be = e
		}
		out = append(out, Bucket{Label: label(g, bs), Start: bs, End: be})
	}
	return out, nil
}

func find(buckets []Bucket, d time.Time) int {
	d = civil(d)
	i := sort.Search(len(buckets), func(i int) bool {
		return !buckets[i].End.Before(d)
	})
	if i < len(buckets) && !d.Before(buckets[i].Start) {
		return i
	}
	return -1
}

// Bucketize spreads income and expenses over the period's buckets between
// start and end. Items dated outside the range are dropped.
func Bucketize(
	period Period,
	start, end time.Time,
	appointments []models.Appointment,
	expenditures []models.Expenditure,
) ([]Bucket, error) {
	if _, err := ParsePeriod(string(period)); err != nil {
		return nil, err
	}

	buckets, err := Buckets(period.Granularity(), start, end)
	if err != nil {
		return nil, err
	}

	for _, ap := range appointments {
		if i := find(buckets, ap.Date); i >= 0 {
			buckets[i].addIncome(ap.Price)
		}
	}
	for _, ex := range expenditures {
		if i := find(buckets, ex.Date); i >= 0 {
			buckets[i].addExpense(ex.Amount)
		}
	}
	return buckets, nil
}

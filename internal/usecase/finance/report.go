package finance

import (
	"context"
	"time"

	"github.com/BruksfildServices01/groomer-manager/internal/domain/finance"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
	"github.com/BruksfildServices01/groomer-manager/internal/timezone"
)

// OverdueCounter reports how many clients are overdue right now.
type OverdueCounter interface {
	CountOverdue(ctx context.Context) (int, error)
}

// Reports answers the financial summary queries. All ranges are inclusive
// calendar dates.
type Reports struct {
	repo    finance.Repository
	clock   timezone.Clock
	overdue OverdueCounter
}

func NewReports(
	repo finance.Repository,
	clock timezone.Clock,
	overdue OverdueCounter,
) *Reports {
	return &Reports{
		repo:    repo,
		clock:   clock,
		overdue: overdue,
	}
}

func (r *Reports) load(
	ctx context.Context,
	start, end time.Time,
) ([]models.Appointment, []models.Expenditure, time.Time, time.Time, error) {

	start, end, err := finance.CheckRange(start, end)
	if err != nil {
		return nil, nil, start, end, err
	}

	apps, err := r.repo.ListAppointmentsInRange(ctx, start, end)
	if err != nil {
		return nil, nil, start, end, err
	}
	exps, err := r.repo.ListExpendituresInRange(ctx, start, end)
	if err != nil {
		return nil, nil, start, end, err
	}
	return apps, exps, start, end, nil
}

// DefaultRange is the current calendar month up to today.
func (r *Reports) DefaultRange() (time.Time, time.Time) {
	today := timezone.Today(r.clock)
	return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), today
}

func (r *Reports) Summary(ctx context.Context, start, end time.Time) (finance.Totals, error) {
	apps, exps, start, end, err := r.load(ctx, start, end)
	if err != nil {
		return finance.Totals{}, err
	}
	return finance.AggregatePeriod(apps, exps, start, end)
}

// Trends buckets the period ending today by day, week or month.
func (r *Reports) Trends(ctx context.Context, period finance.Period) ([]finance.Bucket, error) {
	if _, err := finance.ParsePeriod(string(period)); err != nil {
		return nil, err
	}

	start, end := period.Range(r.clock.Now())
	apps, exps, start, end, err := r.load(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return finance.Bucketize(period, start, end, apps, exps)
}

func (r *Reports) Services(ctx context.Context, start, end time.Time) ([]finance.ServiceStat, error) {
	apps, _, _, _, err := r.load(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return finance.ServiceBreakdown(apps), nil
}

func (r *Reports) Categories(ctx context.Context, start, end time.Time) ([]finance.CategoryStat, error) {
	_, exps, _, _, err := r.load(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return finance.CategoryBreakdown(exps), nil
}

func (r *Reports) Monthly(ctx context.Context, year int, month time.Month) (finance.MonthDetail, error) {
	first, last, err := finance.MonthRange(year, month)
	if err != nil {
		return finance.MonthDetail{}, err
	}

	apps, exps, _, _, err := r.load(ctx, first, last)
	if err != nil {
		return finance.MonthDetail{}, err
	}
	return finance.MonthlyDetail(year, month, apps, exps)
}

type WeekStats struct {
	Start          time.Time
	End            time.Time
	Appointments   int
	Totals         finance.Totals
	OverdueClients int
}

// Week summarizes the Monday to Sunday week offset weeks from the current
// one.
func (r *Reports) Week(ctx context.Context, offset int) (WeekStats, error) {
	start, end, err := finance.WeekRange(timezone.Today(r.clock), offset)
	if err != nil {
		return WeekStats{}, err
	}

	apps, exps, start, end, err := r.load(ctx, start, end)
	if err != nil {
		return WeekStats{}, err
	}

	totals, err := finance.AggregatePeriod(apps, exps, start, end)
	if err != nil {
		return WeekStats{}, err
	}

	stats := WeekStats{
		Start:        start,
		End:          end,
		Appointments: len(apps),
		Totals:       totals,
	}

	if r.overdue != nil {
		n, err := r.overdue.CountOverdue(ctx)
		if err != nil {
			return WeekStats{}, err
		}
		stats.OverdueClients = n
	}
	return stats, nil
}

type ListExpenditures struct {
	repo finance.ExpenditureStore
}

func NewListExpenditures(repo finance.ExpenditureStore) *ListExpenditures {
	return &ListExpenditures{repo: repo}
}

// Execute lists every expenditure newest first, or those in [start, end]
// when both are set.
func (uc *ListExpenditures) Execute(ctx context.Context, start, end *time.Time) ([]models.Expenditure, error) {
	if start == nil || end == nil {
		return uc.repo.ListExpenditures(ctx)
	}

	s, e, err := finance.CheckRange(*start, *end)
	if err != nil {
		return nil, err
	}
	return uc.repo.ListExpendituresInRange(ctx, s, e)
}

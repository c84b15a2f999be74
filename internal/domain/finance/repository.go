package finance

import (
	"context"
	"time"

	"github.com/BruksfildServices01/groomer-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
)

type ExpenditureStore interface {
	CreateExpenditure(ctx context.Context, e *models.Expenditure) error
	GetExpenditure(ctx context.Context, id uint) (*models.Expenditure, error)
	ListExpenditures(ctx context.Context) ([]models.Expenditure, error)

	// ListExpendituresInRange returns expenditures dated within [start, end],
	// both inclusive.
	ListExpendituresInRange(ctx context.Context, start, end time.Time) ([]models.Expenditure, error)

	UpdateExpenditure(ctx context.Context, e *models.Expenditure) error
	DeleteExpenditure(ctx context.Context, id uint) error
}

// Repository is what financial reporting needs from storage.
type Repository interface {
	ExpenditureStore
	schedule.AppointmentReader
}

package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/groomer-manager/internal/models"
)

type ClientStore interface {
	CreateClient(ctx context.Context, c *models.Client) error

	// GetClient loads the client with its dogs.
	GetClient(ctx context.Context, id uint) (*models.Client, error)

	ListClients(ctx context.Context) ([]models.Client, error)

	// SearchClients matches a case-insensitive name substring or a phone
	// substring.
	SearchClients(ctx context.Context, term string) ([]models.Client, error)

	UpdateClient(ctx context.Context, c *models.Client) error

	// DeleteClient removes the client together with its dogs and
	// appointments.
	DeleteClient(ctx context.Context, id uint) error
}

type DogStore interface {
	CreateDog(ctx context.Context, d *models.Dog) error
	GetDog(ctx context.Context, id uint) (*models.Dog, error)
	ListDogs(ctx context.Context) ([]models.Dog, error)
	ListDogsByClient(ctx context.Context, clientID uint) ([]models.Dog, error)
	UpdateDog(ctx context.Context, d *models.Dog) error
	DeleteDog(ctx context.Context, id uint) error
}

// AppointmentReader is the read side used by reporting.
type AppointmentReader interface {
	ListAppointments(ctx context.Context) ([]models.Appointment, error)

	ListAppointmentsForClient(ctx context.Context, clientID uint) ([]models.Appointment, error)

	// ListAppointmentsInRange returns appointments whose date falls within
	// [start, end], both inclusive, in id order.
	ListAppointmentsInRange(ctx context.Context, start, end time.Time) ([]models.Appointment, error)
}

type AppointmentStore interface {
	AppointmentReader

	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	DeleteAppointment(ctx context.Context, id uint) error
}

type Repository interface {
	ClientStore
	DogStore
	AppointmentStore

	// ExecUnderTx runs fn against a transactional view of the store. Any
	// error returned by fn rolls the whole unit back.
	ExecUnderTx(ctx context.Context, fn func(tx Repository) error) error
}

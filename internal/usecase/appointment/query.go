package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/groomer-manager/internal/domain/finance"
	"github.com/BruksfildServices01/groomer-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/groomer-manager/internal/dto"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
	"github.com/BruksfildServices01/groomer-manager/internal/timezone"
)

// DateRange is an inclusive span of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

type ListAppointments struct {
	repo  schedule.Repository
	clock timezone.Clock
}

func NewListAppointments(
	repo schedule.Repository,
	clock timezone.Clock,
) *ListAppointments {
	return &ListAppointments{
		repo:  repo,
		clock: clock,
	}
}

// Execute lists appointments with their client and dogs, in date and time
// order. A nil range lists everything.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	rng *DateRange,
) ([]dto.AppointmentDTO, error) {

	var (
		apps []models.Appointment
		err  error
	)
	if rng == nil {
		apps, err = uc.repo.ListAppointments(ctx)
	} else {
		start, end, rerr := finance.CheckRange(rng.Start, rng.End)
		if rerr != nil {
			return nil, rerr
		}
		apps, err = uc.repo.ListAppointmentsInRange(ctx, start, end)
	}
	if err != nil {
		return nil, err
	}

	clients, err := uc.repo.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	dogs, err := uc.repo.ListDogs(ctx)
	if err != nil {
		return nil, err
	}

	schedule.SortByInstant(apps, uc.clock.Location())

	views, err := schedule.EnrichAppointments(apps, clients, dogs)
	if err != nil {
		return nil, err
	}
	return dto.NewAppointmentViews(views), nil
}

type GetAppointment struct {
	repo schedule.Repository
}

func NewGetAppointment(repo schedule.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
) (*dto.AppointmentDTO, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	clients := map[uint]models.Client{}
	dogs := map[uint][]models.Dog{}

	client, err := uc.repo.GetClient(ctx, ap.ClientID)
	switch {
	case err == nil:
		clients[client.ID] = *client
		dogs[client.ID] = client.Dogs
	case !errors.Is(err, schedule.ErrClientNotFound):
		return nil, err
	}

	view, err := schedule.EnrichAppointment(*ap, clients, dogs)
	if err != nil {
		return nil, err
	}

	out := dto.NewAppointmentView(view)
	return &out, nil
}

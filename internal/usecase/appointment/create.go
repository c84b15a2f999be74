package appointment

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/groomer-manager/internal/audit"
	"github.com/BruksfildServices01/groomer-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/groomer-manager/internal/httperr"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
	"github.com/BruksfildServices01/groomer-manager/internal/timezone"
)

type CreateAppointmentInput struct {
	ClientID    uint
	Date        string
	Time        string
	ServiceType string
	Price       decimal.Decimal
	Status      string
	Notes       string
}

type CreateAppointment struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo schedule.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actorID uint,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	date, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusinessf("invalid_input", "invalid date %q", in.Date)
	}

	status := schedule.InitialStatus()
	if in.Status != "" {
		status = schedule.Status(in.Status)
	}

	statusStr := string(status)
	check := schedule.AppointmentPatch{
		Time:        &in.Time,
		ServiceType: &in.ServiceType,
		Price:       &in.Price,
		Status:      &statusStr,
	}
	if err := check.Validate(); err != nil {
		return nil, err
	}

	if err := assertClient(ctx, uc.repo, in.ClientID); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		ClientID:    in.ClientID,
		Date:        date,
		Time:        in.Time,
		ServiceType: strings.TrimSpace(in.ServiceType),
		Price:       in.Price,
		Status:      string(status),
		Notes:       in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"client_id": ap.ClientID, "date": in.Date, "time": ap.Time},
	})

	return ap, nil
}

// assertClient turns an unknown client id into a missing reference.
func assertClient(ctx context.Context, repo schedule.ClientStore, clientID uint) error {
	if _, err := repo.GetClient(ctx, clientID); err != nil {
		if httperr.IsBusiness(err, "client_not_found") {
			return httperr.ErrBusinessf("missing_reference", "client %d does not exist", clientID)
		}
		return err
	}
	return nil
}

package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/groomer-manager/internal/audit"
	"github.com/BruksfildServices01/groomer-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
	"github.com/BruksfildServices01/groomer-manager/internal/timezone"
)

type transition struct {
	apply  func(*models.Appointment, time.Time) error
	action string
}

// ChangeStatus moves an appointment through confirm, complete or cancel.
type ChangeStatus struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
	step  transition
}

func newChangeStatus(
	repo schedule.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	step transition,
) *ChangeStatus {
	return &ChangeStatus{
		repo:  repo,
		audit: audit,
		clock: clock,
		step:  step,
	}
}

func NewConfirmAppointment(repo schedule.Repository, audit *audit.Dispatcher, clock timezone.Clock) *ChangeStatus {
	return newChangeStatus(repo, audit, clock, transition{schedule.Confirm, "appointment_confirmed"})
}

func NewCompleteAppointment(repo schedule.Repository, audit *audit.Dispatcher, clock timezone.Clock) *ChangeStatus {
	return newChangeStatus(repo, audit, clock, transition{schedule.Complete, "appointment_completed"})
}

func NewCancelAppointment(repo schedule.Repository, audit *audit.Dispatcher, clock timezone.Clock) *ChangeStatus {
	return newChangeStatus(repo, audit, clock, transition{schedule.Cancel, "appointment_cancelled"})
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	actorID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := uc.step.apply(ap, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   uc.step.action,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

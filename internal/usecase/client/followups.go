package client

import (
	"context"
	"time"

	"github.com/BruksfildServices01/groomer-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/groomer-manager/internal/dto"
	"github.com/BruksfildServices01/groomer-manager/internal/timezone"
)

// Followups lists clients that need a call: overdue, due soon or lapsed.
type Followups struct {
	repo   schedule.Repository
	clock  timezone.Clock
	policy schedule.CadencePolicy
}

func NewFollowups(
	repo schedule.Repository,
	clock timezone.Clock,
	policy schedule.CadencePolicy,
) *Followups {
	return &Followups{
		repo:   repo,
		clock:  clock,
		policy: policy,
	}
}

func (uc *Followups) views(ctx context.Context) ([]schedule.ClientView, time.Time, error) {
	clients, err := uc.repo.ListClients(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	apps, err := uc.repo.ListAppointments(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}

	byClient := schedule.GroupAppointments(apps)
	now := uc.clock.Now()
	views := make([]schedule.ClientView, 0, len(clients))
	for _, c := range clients {
		views = append(views, schedule.EnrichClient(c, c.Dogs, byClient[c.ID], now, uc.clock.Location()))
	}
	return views, now, nil
}

func (uc *Followups) filter(
	ctx context.Context,
	keep func(schedule.ClientView, time.Time) bool,
) ([]dto.ClientDTO, error) {
	views, now, err := uc.views(ctx)
	if err != nil {
		return nil, err
	}

	out := []dto.ClientDTO{}
	for _, v := range views {
		if !keep(v, now) {
			continue
		}
		cadence := uc.policy.Classify(v, now)
		out = append(out, dto.NewClientView(v, &cadence))
	}
	return out, nil
}

func (uc *Followups) Overdue(ctx context.Context) ([]dto.ClientDTO, error) {
	return uc.filter(ctx, uc.policy.IsOverdue)
}

func (uc *Followups) DueSoon(ctx context.Context) ([]dto.ClientDTO, error) {
	return uc.filter(ctx, uc.policy.IsDueSoon)
}

func (uc *Followups) Lapsed(ctx context.Context) ([]dto.ClientDTO, error) {
	return uc.filter(ctx, uc.policy.IsLapsed)
}

func (uc *Followups) CountOverdue(ctx context.Context) (int, error) {
	views, now, err := uc.views(ctx)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, v := range views {
		if uc.policy.IsOverdue(v, now) {
			n++
		}
	}
	return n, nil
}

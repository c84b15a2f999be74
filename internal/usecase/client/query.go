package client

import (
	"context"

	"github.com/BruksfildServices01/groomer-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/groomer-manager/internal/dto"
	"github.com/BruksfildServices01/groomer-manager/internal/timezone"
)

type GetClient struct {
	repo   schedule.Repository
	clock  timezone.Clock
	policy schedule.CadencePolicy
}

func NewGetClient(
	repo schedule.Repository,
	clock timezone.Clock,
	policy schedule.CadencePolicy,
) *GetClient {
	return &GetClient{
		repo:   repo,
		clock:  clock,
		policy: policy,
	}
}

// Execute returns the client with its dogs, nearest appointments and
// cadence.
func (uc *GetClient) Execute(ctx context.Context, clientID uint) (*dto.ClientDTO, error) {
	c, err := uc.repo.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	apps, err := uc.repo.ListAppointmentsForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	view := schedule.EnrichClient(*c, c.Dogs, apps, now, uc.clock.Location())
	cadence := uc.policy.Classify(view, now)

	out := dto.NewClientView(view, &cadence)
	return &out, nil
}

type ListClients struct {
	repo   schedule.Repository
	clock  timezone.Clock
	policy schedule.CadencePolicy
}

func NewListClients(
	repo schedule.Repository,
	clock timezone.Clock,
	policy schedule.CadencePolicy,
) *ListClients {
	return &ListClients{
		repo:   repo,
		clock:  clock,
		policy: policy,
	}
}

// Execute lists every client, or those whose name or phone contains term.
func (uc *ListClients) Execute(ctx context.Context, term string) ([]dto.ClientDTO, error) {
	clients, err := uc.repo.SearchClients(ctx, term)
	if err != nil {
		return nil, err
	}

	apps, err := uc.repo.ListAppointments(ctx)
	if err != nil {
		return nil, err
	}

	byClient := schedule.GroupAppointments(apps)
	now := uc.clock.Now()
	out := make([]dto.ClientDTO, 0, len(clients))
	for _, c := range clients {
		view := schedule.EnrichClient(c, c.Dogs, byClient[c.ID], now, uc.clock.Location())
		cadence := uc.policy.Classify(view, now)
		out = append(out, dto.NewClientView(view, &cadence))
	}
	return out, nil
}

type ClientAppointments struct {
	repo  schedule.Repository
	clock timezone.Clock
}

func NewClientAppointments(repo schedule.Repository, clock timezone.Clock) *ClientAppointments {
	return &ClientAppointments{repo: repo, clock: clock}
}

// Execute returns the client's appointments in date and time order.
func (uc *ClientAppointments) Execute(ctx context.Context, clientID uint) ([]dto.AppointmentDTO, error) {
	if _, err := uc.repo.GetClient(ctx, clientID); err != nil {
		return nil, err
	}

	apps, err := uc.repo.ListAppointmentsForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	schedule.SortByInstant(apps, uc.clock.Location())
	return dto.NewAppointments(apps), nil
}

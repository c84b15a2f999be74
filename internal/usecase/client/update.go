package client

import (
	"context"

	"github.com/BruksfildServices01/groomer-manager/internal/audit"
	"github.com/BruksfildServices01/groomer-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
)

type UpdateClient struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
}

func NewUpdateClient(
	repo schedule.Repository,
	audit *audit.Dispatcher,
) *UpdateClient {
	return &UpdateClient{
		repo:  repo,
		audit: audit,
	}
}

// Execute patches the client. When dogs is non-nil it becomes the client's
// full dog list: entries with an id are updated, entries without one are
// created and dogs not listed are deleted. Everything happens in one
// transaction.
func (uc *UpdateClient) Execute(
	ctx context.Context,
	actorID uint,
	clientID uint,
	patch schedule.ClientPatch,
	dogs []DogInput,
) (*models.Client, error) {

	if err := patch.Validate(); err != nil {
		return nil, err
	}
	for _, d := range dogs {
		if err := d.validate(); err != nil {
			return nil, err
		}
	}

	var out *models.Client
	err := uc.repo.ExecUnderTx(ctx, func(tx schedule.Repository) error {
		c, err := tx.GetClient(ctx, clientID)
		if err != nil {
			return err
		}

		patch.Apply(c)
		if err := tx.UpdateClient(ctx, c); err != nil {
			return err
		}

		if dogs != nil {
			if err := replaceDogs(ctx, tx, c, dogs); err != nil {
				return err
			}
		}

		out, err = tx.GetClient(ctx, clientID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "client_updated",
		Entity:   "client",
		EntityID: &clientID,
	})

	return out, nil
}

func replaceDogs(ctx context.Context, tx schedule.Repository, c *models.Client, dogs []DogInput) error {
	existing := make(map[uint]models.Dog, len(c.Dogs))
	for _, d := range c.Dogs {
		existing[d.ID] = d
	}

	keep := make(map[uint]bool, len(dogs))
	for _, in := range dogs {
		if in.ID == nil {
			d := &models.Dog{ClientID: c.ID}
			in.patch().Apply(d)
			if err := tx.CreateDog(ctx, d); err != nil {
				return err
			}
			continue
		}

		d, ok := existing[*in.ID]
		if !ok {
			return dogNotOwned(*in.ID, c.ID)
		}
		in.patch().Apply(&d)
		if err := tx.UpdateDog(ctx, &d); err != nil {
			return err
		}
		keep[d.ID] = true
	}

	for id := range existing {
		if keep[id] {
			continue
		}
		if err := tx.DeleteDog(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

type DeleteClient struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
}

func NewDeleteClient(
	repo schedule.Repository,
	audit *audit.Dispatcher,
) *DeleteClient {
	return &DeleteClient{
		repo:  repo,
		audit: audit,
	}
}

// Execute removes the client along with its dogs and appointments.
func (uc *DeleteClient) Execute(ctx context.Context, actorID uint, clientID uint) error {
	if err := uc.repo.DeleteClient(ctx, clientID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "client_deleted",
		Entity:   "client",
		EntityID: &clientID,
	})
	return nil
}

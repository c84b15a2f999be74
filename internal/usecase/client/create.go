package client

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/groomer-manager/internal/audit"
	"github.com/BruksfildServices01/groomer-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/groomer-manager/internal/httperr"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
)

type DogInput struct {
	ID         *uint
	Name       string
	Breed      string
	Size       string
	HairLength string
}

func (in DogInput) validate() error {
	return schedule.DogPatch{
		Name:       &in.Name,
		Size:       &in.Size,
		HairLength: &in.HairLength,
	}.Validate()
}

func (in DogInput) patch() schedule.DogPatch {
	return schedule.DogPatch{
		Name:       &in.Name,
		Breed:      &in.Breed,
		Size:       &in.Size,
		HairLength: &in.HairLength,
	}
}

type CreateClientInput struct {
	Name          string
	Phone         string
	Address       string
	FrequencyDays *int
	Notes         string
	Dogs          []DogInput
}

type CreateClient struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
}

func NewCreateClient(
	repo schedule.Repository,
	audit *audit.Dispatcher,
) *CreateClient {
	return &CreateClient{
		repo:  repo,
		audit: audit,
	}
}

// Execute stores the client and its dogs together or not at all.
func (uc *CreateClient) Execute(
	ctx context.Context,
	actorID uint,
	in CreateClientInput,
) (*models.Client, error) {

	check := schedule.ClientPatch{
		Name:          &in.Name,
		Phone:         &in.Phone,
		FrequencyDays: in.FrequencyDays,
	}
	if err := check.Validate(); err != nil {
		return nil, err
	}
	for _, d := range in.Dogs {
		if err := d.validate(); err != nil {
			return nil, err
		}
	}

	c := &models.Client{
		Name:          strings.TrimSpace(in.Name),
		Phone:         strings.TrimSpace(in.Phone),
		Address:       strings.TrimSpace(in.Address),
		FrequencyDays: schedule.NormalizeFrequency(in.FrequencyDays),
		Notes:         in.Notes,
	}

	err := uc.repo.ExecUnderTx(ctx, func(tx schedule.Repository) error {
		if err := tx.CreateClient(ctx, c); err != nil {
			return err
		}
		for _, dog := range in.Dogs {
			d := &models.Dog{ClientID: c.ID}
			dog.patch().Apply(d)
			if err := tx.CreateDog(ctx, d); err != nil {
				return err
			}
			c.Dogs = append(c.Dogs, *d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "client_created",
		Entity:   "client",
		EntityID: &c.ID,
		Metadata: map[string]any{"dogs": len(c.Dogs)},
	})

	return c, nil
}

func dogNotOwned(dogID, clientID uint) error {
	return httperr.ErrBusinessf("dog_not_found", "dog %d does not belong to client %d", dogID, clientID)
}

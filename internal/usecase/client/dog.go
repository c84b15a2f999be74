package client

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/groomer-manager/internal/audit"
	"github.com/BruksfildServices01/groomer-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/groomer-manager/internal/httperr"
	"github.com/BruksfildServices01/groomer-manager/internal/imaging"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
)

type CreateDog struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
}

func NewCreateDog(repo schedule.Repository, audit *audit.Dispatcher) *CreateDog {
	return &CreateDog{repo: repo, audit: audit}
}

func (uc *CreateDog) Execute(
	ctx context.Context,
	actorID uint,
	clientID uint,
	in DogInput,
) (*models.Dog, error) {

	if err := in.validate(); err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetClient(ctx, clientID); err != nil {
		if httperr.IsBusiness(err, "client_not_found") {
			return nil, httperr.ErrBusinessf("missing_reference", "client %d does not exist", clientID)
		}
		return nil, err
	}

	d := &models.Dog{ClientID: clientID}
	in.patch().Apply(d)
	if err := uc.repo.CreateDog(ctx, d); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "dog_created",
		Entity:   "dog",
		EntityID: &d.ID,
		Metadata: map[string]any{"client_id": clientID},
	})
	return d, nil
}

type UpdateDog struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
}

func NewUpdateDog(repo schedule.Repository, audit *audit.Dispatcher) *UpdateDog {
	return &UpdateDog{repo: repo, audit: audit}
}

func (uc *UpdateDog) Execute(
	ctx context.Context,
	actorID uint,
	dogID uint,
	patch schedule.DogPatch,
) (*models.Dog, error) {

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	d, err := uc.repo.GetDog(ctx, dogID)
	if err != nil {
		return nil, err
	}

	patch.Apply(d)
	if err := uc.repo.UpdateDog(ctx, d); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "dog_updated",
		Entity:   "dog",
		EntityID: &d.ID,
	})
	return d, nil
}

type DeleteDog struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
}

func NewDeleteDog(repo schedule.Repository, audit *audit.Dispatcher) *DeleteDog {
	return &DeleteDog{repo: repo, audit: audit}
}

func (uc *DeleteDog) Execute(ctx context.Context, actorID uint, dogID uint) error {
	if err := uc.repo.DeleteDog(ctx, dogID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "dog_deleted",
		Entity:   "dog",
		EntityID: &dogID,
	})
	return nil
}

// PhotoStore keeps processed photos and hands back their public URL.
type PhotoStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

var ErrPhotosDisabled = httperr.ErrBusiness("photos_disabled")

type UploadDogPhoto struct {
	repo   schedule.Repository
	photos PhotoStore
	audit  *audit.Dispatcher
	opts   imaging.Options
}

// NewUploadDogPhoto accepts a nil store, in which case uploads fail with
// ErrPhotosDisabled.
func NewUploadDogPhoto(
	repo schedule.Repository,
	photos PhotoStore,
	audit *audit.Dispatcher,
) *UploadDogPhoto {
	return &UploadDogPhoto{
		repo:   repo,
		photos: photos,
		audit:  audit,
		opts:   imaging.Options{MaxSide: imaging.DefaultMaxSide, Quality: imaging.DefaultQuality},
	}
}

func (uc *UploadDogPhoto) Execute(
	ctx context.Context,
	actorID uint,
	dogID uint,
	photo io.Reader,
) (*models.Dog, error) {

	if uc.photos == nil {
		return nil, ErrPhotosDisabled
	}

	d, err := uc.repo.GetDog(ctx, dogID)
	if err != nil {
		return nil, err
	}

	img, err := imaging.ToWebP(photo, uc.opts)
	if err != nil {
		return nil, httperr.ErrBusinessf("invalid_input", "photo: %v", err)
	}

	key := fmt.Sprintf("dogs/%d/%s.webp", d.ID, uuid.NewString())
	url, err := uc.photos.Put(ctx, key, "image/webp", img)
	if err != nil {
		return nil, err
	}

	d.PhotoURL = url
	if err := uc.repo.UpdateDog(ctx, d); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "dog_photo_uploaded",
		Entity:   "dog",
		EntityID: &d.ID,
		Metadata: map[string]any{"key": key, "bytes": len(img)},
	})
	return d, nil
}

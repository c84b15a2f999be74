package repository

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/groomer-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
)

func (s *GormStore) CreateDog(ctx context.Context, d *models.Dog) error {
	if err := s.db.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("create dog: %w", translate(err, schedule.ErrDogNotFound))
	}
	return nil
}

func (s *GormStore) GetDog(ctx context.Context, id uint) (*models.Dog, error) {
	var d models.Dog
	if err := s.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, translate(err, schedule.ErrDogNotFound)
	}
	return &d, nil
}

func (s *GormStore) ListDogs(ctx context.Context) ([]models.Dog, error) {
	var dogs []models.Dog
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&dogs).Error; err != nil {
		return nil, fmt.Errorf("list dogs: %w", err)
	}
	return dogs, nil
}

func (s *GormStore) ListDogsByClient(ctx context.Context, clientID uint) ([]models.Dog, error) {
	var dogs []models.Dog
	if err := s.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("id ASC").
		Find(&dogs).Error; err != nil {
		return nil, fmt.Errorf("list dogs for client %d: %w", clientID, err)
	}
	return dogs, nil
}

func (s *GormStore) UpdateDog(ctx context.Context, d *models.Dog) error {
	res := s.db.WithContext(ctx).
		Model(d).
		Select("client_id", "name", "breed", "size", "hair_length", "photo_url").
		Updates(d)
	if res.Error != nil {
		return fmt.Errorf("update dog: %w", translate(res.Error, schedule.ErrDogNotFound))
	}
	if res.RowsAffected == 0 {
		return schedule.ErrDogNotFound
	}
	return nil
}

func (s *GormStore) DeleteDog(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Dog{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete dog: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return schedule.ErrDogNotFound
	}
	return nil
}

package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/groomer-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
)

func orderedDogs(db *gorm.DB) *gorm.DB {
	return db.Order("dogs.id ASC")
}

func (s *GormStore) CreateClient(ctx context.Context, c *models.Client) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return fmt.Errorf("create client: %w", translate(err, schedule.ErrClientNotFound))
	}
	return nil
}

func (s *GormStore) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var c models.Client
	if err := s.db.WithContext(ctx).
		Preload("Dogs", orderedDogs).
		First(&c, id).Error; err != nil {
		return nil, translate(err, schedule.ErrClientNotFound)
	}
	return &c, nil
}

func (s *GormStore) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := s.db.WithContext(ctx).
		Preload("Dogs", orderedDogs).
		Order("name ASC, id ASC").
		Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func (s *GormStore) SearchClients(ctx context.Context, term string) ([]models.Client, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.ListClients(ctx)
	}

	like := "%" + escapeLike(strings.ToLower(term)) + "%"

	var clients []models.Client
	if err := s.db.WithContext(ctx).
		Preload("Dogs", orderedDogs).
		Where("LOWER(name) LIKE ? OR phone LIKE ?", like, like).
		Order("name ASC, id ASC").
		Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}
	return clients, nil
}

func (s *GormStore) UpdateClient(ctx context.Context, c *models.Client) error {
	res := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Model(c).
		Select("name", "phone", "address", "frequency_days", "notes").
		Updates(c)
	if res.Error != nil {
		return fmt.Errorf("update client: %w", translate(res.Error, schedule.ErrClientNotFound))
	}
	if res.RowsAffected == 0 {
		return schedule.ErrClientNotFound
	}
	return nil
}

// DeleteClient relies on the ON DELETE CASCADE foreign keys of dogs and
// appointments.
func (s *GormStore) DeleteClient(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Client{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete client: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return schedule.ErrClientNotFound
	}
	return nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

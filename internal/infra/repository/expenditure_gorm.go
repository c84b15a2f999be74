package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/groomer-manager/internal/domain/finance"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
)

func (s *GormStore) CreateExpenditure(ctx context.Context, e *models.Expenditure) error {
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("create expenditure: %w", err)
	}
	return nil
}

func (s *GormStore) GetExpenditure(ctx context.Context, id uint) (*models.Expenditure, error) {
	var e models.Expenditure
	if err := s.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, translate(err, finance.ErrExpenditureNotFound)
	}
	return &e, nil
}

func (s *GormStore) ListExpenditures(ctx context.Context) ([]models.Expenditure, error) {
	var exps []models.Expenditure
	if err := s.db.WithContext(ctx).Order("date DESC, id DESC").Find(&exps).Error; err != nil {
		return nil, fmt.Errorf("list expenditures: %w", err)
	}
	return exps, nil
}

func (s *GormStore) ListExpendituresInRange(ctx context.Context, start, end time.Time) ([]models.Expenditure, error) {
	var exps []models.Expenditure
	if err := s.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start.Format(dateLayout), end.Format(dateLayout)).
		Order("id ASC").
		Find(&exps).Error; err != nil {
		return nil, fmt.Errorf("list expenditures in range: %w", err)
	}
	return exps, nil
}

func (s *GormStore) UpdateExpenditure(ctx context.Context, e *models.Expenditure) error {
	res := s.db.WithContext(ctx).
		Model(e).
		Select("date", "amount", "category", "notes").
		Updates(e)
	if res.Error != nil {
		return fmt.Errorf("update expenditure: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return finance.ErrExpenditureNotFound
	}
	return nil
}

func (s *GormStore) DeleteExpenditure(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Expenditure{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete expenditure: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return finance.ErrExpenditureNotFound
	}
	return nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/groomer-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
)

func (s *GormStore) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if err := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(ap).Error; err != nil {
		return fmt.Errorf("create appointment: %w", translate(err, schedule.ErrAppointmentNotFound))
	}
	return nil
}

func (s *GormStore) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := s.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, translate(err, schedule.ErrAppointmentNotFound)
	}
	return &ap, nil
}

func (s *GormStore) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	var apps []models.Appointment
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return apps, nil
}

func (s *GormStore) ListAppointmentsForClient(ctx context.Context, clientID uint) ([]models.Appointment, error) {
	var apps []models.Appointment
	if err := s.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("id ASC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list appointments for client %d: %w", clientID, err)
	}
	return apps, nil
}

func (s *GormStore) ListAppointmentsInRange(ctx context.Context, start, end time.Time) ([]models.Appointment, error) {
	var apps []models.Appointment
	if err := s.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start.Format(dateLayout), end.Format(dateLayout)).
		Order("id ASC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list appointments in range: %w", err)
	}
	return apps, nil
}

// UpdateAppointment writes every mutable column; created_at is never
// touched.
func (s *GormStore) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	res := s.db.WithContext(ctx).
		Model(ap).
		Omit(clause.Associations).
		Select(
			"client_id", "date", "time", "service_type", "price", "status", "notes",
			"confirmed_at", "cancelled_at", "completed_at",
		).
		Updates(ap)
	if res.Error != nil {
		return fmt.Errorf("update appointment: %w", translate(res.Error, schedule.ErrAppointmentNotFound))
	}
	if res.RowsAffected == 0 {
		return schedule.ErrAppointmentNotFound
	}
	return nil
}

func (s *GormStore) DeleteAppointment(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete appointment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return schedule.ErrAppointmentNotFound
	}
	return nil
}

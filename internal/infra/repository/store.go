package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/groomer-manager/internal/domain/finance"
	"github.com/BruksfildServices01/groomer-manager/internal/domain/schedule"
)

const dateLayout = "2006-01-02"

// GormStore persists clients, dogs, appointments and expenditures.
type GormStore struct {
	log *slog.Logger
	db  *gorm.DB
}

func NewGormStore(log *slog.Logger, db *gorm.DB) *GormStore {
	return &GormStore{log: log, db: db}
}

func (s *GormStore) ExecUnderTx(ctx context.Context, fn func(tx schedule.Repository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStore(s.log, tx))
	})
}

// translate maps driver errors onto business errors. notFound is returned
// for gorm.ErrRecordNotFound.
func translate(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ForeignKeyViolation:
			return fmt.Errorf("%w: %s", schedule.ErrMissingReference, pgErr.ConstraintName)
		case pgerrcode.NumericValueOutOfRange:
			return fmt.Errorf("%w: %s", schedule.ErrInvalidInput, pgErr.Message)
		}
	}
	return err
}

// Compile-time check
var (
	_ schedule.Repository = (*GormStore)(nil)
	_ finance.Repository  = (*GormStore)(nil)
)

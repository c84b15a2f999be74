package finance

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/groomer-manager/internal/audit"
	"github.com/BruksfildServices01/groomer-manager/internal/domain/finance"
	"github.com/BruksfildServices01/groomer-manager/internal/httperr"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
	"github.com/BruksfildServices01/groomer-manager/internal/timezone"
)

type CreateExpenditureInput struct {
	Date     string
	Amount   decimal.Decimal
	Category string
	Notes    string
}

type CreateExpenditure struct {
	repo  finance.ExpenditureStore
	audit *audit.Dispatcher
}

func NewCreateExpenditure(repo finance.ExpenditureStore, audit *audit.Dispatcher) *CreateExpenditure {
	return &CreateExpenditure{repo: repo, audit: audit}
}

func (uc *CreateExpenditure) Execute(
	ctx context.Context,
	actorID uint,
	in CreateExpenditureInput,
) (*models.Expenditure, error) {

	date, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusinessf("invalid_input", "invalid date %q", in.Date)
	}

	check := finance.ExpenditurePatch{Amount: &in.Amount, Category: &in.Category}
	if err := check.Validate(); err != nil {
		return nil, err
	}

	e := &models.Expenditure{
		Date:     date,
		Amount:   in.Amount,
		Category: strings.TrimSpace(in.Category),
		Notes:    in.Notes,
	}
	if err := uc.repo.CreateExpenditure(ctx, e); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "expenditure_created",
		Entity:   "expenditure",
		EntityID: &e.ID,
		Metadata: map[string]any{"category": e.Category, "amount": e.Amount.String()},
	})
	return e, nil
}

type UpdateExpenditure struct {
	repo  finance.ExpenditureStore
	audit *audit.Dispatcher
}

func NewUpdateExpenditure(repo finance.ExpenditureStore, audit *audit.Dispatcher) *UpdateExpenditure {
	return &UpdateExpenditure{repo: repo, audit: audit}
}

func (uc *UpdateExpenditure) Execute(
	ctx context.Context,
	actorID uint,
	id uint,
	patch finance.ExpenditurePatch,
) (*models.Expenditure, error) {

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	e, err := uc.repo.GetExpenditure(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(e)
	if err := uc.repo.UpdateExpenditure(ctx, e); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "expenditure_updated",
		Entity:   "expenditure",
		EntityID: &e.ID,
	})
	return e, nil
}

type DeleteExpenditure struct {
	repo  finance.ExpenditureStore
	audit *audit.Dispatcher
}

func NewDeleteExpenditure(repo finance.ExpenditureStore, audit *audit.Dispatcher) *DeleteExpenditure {
	return &DeleteExpenditure{repo: repo, audit: audit}
}

func (uc *DeleteExpenditure) Execute(ctx context.Context, actorID uint, id uint) error {
	if err := uc.repo.DeleteExpenditure(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "expenditure_deleted",
		Entity:   "expenditure",
		EntityID: &id,
	})
	return nil
}

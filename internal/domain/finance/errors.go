package finance

import "github.com/BruksfildServices01/groomer-manager/internal/httperr"

var (
	ErrExpenditureNotFound = httperr.ErrBusiness("expenditure_not_found")
	ErrInvalidRange        = httperr.ErrBusiness("invalid_range")
	ErrInvalidInput        = httperr.ErrBusiness("invalid_input")
)

package account

import (
	"context"

	"github.com/BruksfildServices01/groomer-manager/internal/httperr"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
)

var ErrUserNotFound = httperr.ErrBusiness("user_not_found")

type UserStore interface {
	CountUsers(ctx context.Context) (int64, error)
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

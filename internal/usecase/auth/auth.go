// Package auth handles owner registration and login.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/groomer-manager/internal/audit"
	"github.com/BruksfildServices01/groomer-manager/internal/domain/account"
	"github.com/BruksfildServices01/groomer-manager/internal/httperr"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
	"github.com/BruksfildServices01/groomer-manager/internal/timezone"
)

const TokenTTL = 24 * time.Hour

var (
	ErrOwnerExists        = httperr.ErrBusiness("owner_exists")
	ErrInvalidCredentials = httperr.ErrBusiness("invalid_credentials")
)

type Service struct {
	users       account.UserStore
	secret      []byte
	clock       timezone.Clock
	audit       *audit.Dispatcher
	emailDomain func(string) bool
}

// NewService builds the account service. emailDomain, when set, rejects
// registrations whose address has no reachable domain.
func NewService(
	users account.UserStore,
	secret string,
	clock timezone.Clock,
	audit *audit.Dispatcher,
	emailDomain func(string) bool,
) *Service {
	return &Service{
		users:       users,
		secret:      []byte(secret),
		clock:       clock,
		audit:       audit,
		emailDomain: emailDomain,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// Register creates the owner. It only succeeds while no account exists.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	email := normalizeEmail(in.Email)
	if strings.TrimSpace(in.Name) == "" {
		return nil, "", httperr.ErrBusinessf("invalid_input", "name is required")
	}
	if len(in.Password) < 6 {
		return nil, "", httperr.ErrBusinessf("invalid_input", "password must have at least 6 characters")
	}
	if s.emailDomain != nil && !s.emailDomain(email) {
		return nil, "", httperr.ErrBusinessf("invalid_input", "email domain does not look valid")
	}

	n, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, "", err
	}
	if n > 0 {
		return nil, "", ErrOwnerExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        in.Phone,
		Role:         "owner",
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.token(u)
	if err != nil {
		return nil, "", err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   "owner_registered",
		Entity:   "user",
		EntityID: &u.ID,
	})
	return u, token, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, account.ErrUserNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.token(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) Me(ctx context.Context, userID uint) (*models.User, error) {
	return s.users.GetUser(ctx, userID)
}

func (s *Service) token(u *models.User) (string, error) {
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": u.Role,
		"exp":  now.Add(TokenTTL).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package ports

import (
	"context"

	"github.com/leadsite/marketing-api/internal/core/domain"
)

// RegisterInput carries the fields of a self-service sign-up.
type RegisterInput struct {
	Name     string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// LoginInput carries user credentials.
type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	// Me resolves the user behind a bearer token, re-reading the store.
	Me(ctx context.Context, token string) (*domain.User, error)
}

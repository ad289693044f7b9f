package ports

import (
	"context"

	"github.com/engnet/backoffice-api/internal/core/domain"
)

// LoginResult is returned on successful authentication.
type LoginResult struct {
	AccessToken string
	User        *domain.User
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Authenticate verifies a raw bearer token and rejects revoked ones.
	Authenticate(ctx context.Context, token string) (*domain.Claims, error)
	Logout(ctx context.Context, claims *domain.Claims) error
}

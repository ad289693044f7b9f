package ports

import (
	"context"

	"github.com/engnet/backoffice-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Implementations must
// return domain.ErrUserExists on an email uniqueness violation and
// domain.ErrUserNotFound when the id or email is unknown.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail returns the user including its password hash.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

package ports

import (
	"context"

	"github.com/engnet/backoffice-api/internal/core/domain"
)

// RefundRepository defines persistence for refunds. List returns matches
// ordered by creation time, newest first.
type RefundRepository interface {
	Create(ctx context.Context, refund *domain.Refund) (*domain.Refund, error)
	List(ctx context.Context, filter domain.RefundFilter) ([]domain.Refund, error)
	FindByID(ctx context.Context, id string) (*domain.Refund, error)
	Update(ctx context.Context, refund *domain.Refund) (*domain.Refund, error)
	Delete(ctx context.Context, id string) error
}

package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/engnet/backoffice-api/internal/core/domain"
)

type CreateRefundInput struct {
	Description string
	Amount      decimal.Decimal
	UserID      string
}

type UpdateRefundInput struct {
	Description *string
	Amount      *decimal.Decimal
	Status      *domain.RefundStatus
}

type RefundService interface {
	Create(ctx context.Context, input CreateRefundInput) (*domain.Refund, error)
	FindAll(ctx context.Context) ([]domain.Refund, error)
	FindByID(ctx context.Context, id string) (*domain.Refund, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Refund, error)
	Update(ctx context.Context, id string, input UpdateRefundInput) (*domain.Refund, error)
	Delete(ctx context.Context, id string) error
	History(ctx context.Context, id string) ([]domain.AuditEvent, error)
}

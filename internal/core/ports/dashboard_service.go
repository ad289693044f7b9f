package ports

import (
	"context"

	"github.com/engnet/backoffice-api/internal/core/domain"
)

// DashboardService serves read-only aggregates. Date bounds accept
// YYYY-MM-DD or RFC 3339; an empty status means every status.
type DashboardService interface {
	Summary(ctx context.Context) (*domain.DashboardSummary, error)
	RefundReport(ctx context.Context, status string) ([]domain.Refund, error)
	RefundsByStatus(ctx context.Context, status string) ([]domain.Refund, error)
	RefundsByUser(ctx context.Context, userID string) ([]domain.Refund, error)
	RefundsByDateRange(ctx context.Context, startDate, endDate string) ([]domain.Refund, error)
}

package ports

import (
	"context"

	"github.com/engnet/backoffice-api/internal/core/domain"
)

// StatsRepository runs read-only aggregate queries for the dashboard and
// reports.
type StatsRepository interface {
	RefundCounts(ctx context.Context) (domain.RefundCounts, error)
	UserStats(ctx context.Context) (domain.UserStats, error)
	ClientStats(ctx context.Context) (domain.ClientStats, error)
}

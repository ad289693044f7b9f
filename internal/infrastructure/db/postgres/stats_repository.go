package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/engnet/backoffice-api/internal/core/domain"
)

const (
	refundCountsQuery = `
		SELECT status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total
		FROM refunds
		GROUP BY status`

	// Only refunds whose owner still exists count towards active users.
	userStatsQuery = `
		SELECT
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(DISTINCT r.user_id)
			   FROM refunds r
			   JOIN users u ON u.id = r.user_id) AS active_users`

	clientStatsQuery = `
		SELECT
			COUNT(*) AS total_clients,
			COUNT(*) FILTER (WHERE btrim(coalesce(cnpj, '')) <> '') AS closed_contracts
		FROM clients`
)

// StatsRepository implements ports.StatsRepository with hand-written
// aggregate SQL over sqlx.
type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *DB) *StatsRepository {
	return &StatsRepository{db: db.SQL}
}

type statusTotalRow struct {
	Status string          `db:"status"`
	Count  int64           `db:"count"`
	Total  decimal.Decimal `db:"total"`
}

func (r *StatsRepository) RefundCounts(ctx context.Context) (domain.RefundCounts, error) {
	var rows []statusTotalRow
	if err := r.db.SelectContext(ctx, &rows, refundCountsQuery); err != nil {
		return domain.RefundCounts{}, fmt.Errorf("refund counts: %w", err)
	}

	counts := domain.RefundCounts{Sum: decimal.Zero}
	for _, row := range rows {
		counts.Total += row.Count
		counts.Sum = counts.Sum.Add(row.Total)
		counts.ByStatus = append(counts.ByStatus, domain.StatusTotal{
			Status: domain.RefundStatus(row.Status),
			Count:  row.Count,
			Sum:    row.Total,
		})
	}
	return counts, nil
}

func (r *StatsRepository) UserStats(ctx context.Context) (domain.UserStats, error) {
	var row struct {
		TotalUsers  int64 `db:"total_users"`
		ActiveUsers int64 `db:"active_users"`
	}
	if err := r.db.GetContext(ctx, &row, userStatsQuery); err != nil {
		return domain.UserStats{}, fmt.Errorf("user stats: %w", err)
	}
	return domain.UserStats{
		TotalUsers:          row.TotalUsers,
		ActiveUsers:         row.ActiveUsers,
		UsersWithoutRefunds: row.TotalUsers - row.ActiveUsers,
	}, nil
}

func (r *StatsRepository) ClientStats(ctx context.Context) (domain.ClientStats, error) {
	var row struct {
		TotalClients    int64 `db:"total_clients"`
		ClosedContracts int64 `db:"closed_contracts"`
	}
	if err := r.db.GetContext(ctx, &row, clientStatsQuery); err != nil {
		return domain.ClientStats{}, fmt.Errorf("client stats: %w", err)
	}
	return domain.ClientStats{
		TotalClients:        row.TotalClients,
		TotalWithRefunds:    0,
		TotalWithoutRefunds: row.TotalClients,
		ClosedContracts:     row.ClosedContracts,
	}, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/engnet/backoffice-api/internal/core/domain"
	"github.com/engnet/backoffice-api/internal/core/ports"
)

type DashboardService struct {
	refunds ports.RefundRepository
	stats   ports.StatsRepository
	logger  zerolog.Logger
	now     func() time.Time
}

func NewDashboardService(refunds ports.RefundRepository, stats ports.StatsRepository, logger zerolog.Logger) *DashboardService {
	return &DashboardService{refunds: refunds, stats: stats, logger: logger, now: time.Now}
}

func (s *DashboardService) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	counts, err := s.stats.RefundCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("refund stats: %w", err)
	}
	users, err := s.stats.UserStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	clients, err := s.stats.ClientStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("client stats: %w", err)
	}

	return &domain.DashboardSummary{
		Refunds:     domain.NewRefundStats(counts),
		Users:       users,
		Clients:     clients,
		GeneratedAt: s.now().UTC(),
	}, nil
}

// RefundReport lists every refund, optionally restricted to one status.
func (s *DashboardService) RefundReport(ctx context.Context, status string) ([]domain.Refund, error) {
	var filter domain.RefundFilter
	if status != "" {
		st, err := domain.ParseRefundStatus(status)
		if err != nil {
			return nil, err
		}
		filter.Status = &st
	}
	return s.list(ctx, filter)
}

func (s *DashboardService) RefundsByStatus(ctx context.Context, status string) ([]domain.Refund, error) {
	st, err := domain.ParseRefundStatus(status)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, domain.RefundFilter{Status: &st})
}

func (s *DashboardService) RefundsByUser(ctx context.Context, userID string) ([]domain.Refund, error) {
	if !validID(userID) {
		return nil, fmt.Errorf("%w: invalid user id", domain.ErrValidation)
	}
	return s.list(ctx, domain.RefundFilter{UserID: userID})
}

// RefundsByDateRange requires both bounds; both are inclusive.
func (s *DashboardService) RefundsByDateRange(ctx context.Context, startDate, endDate string) ([]domain.Refund, error) {
	if startDate == "" || endDate == "" {
		return nil, fmt.Errorf("%w: startDate and endDate are required", domain.ErrInvalidDateRange)
	}
	from, to, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, domain.RefundFilter{From: from, To: to})
}

func (s *DashboardService) list(ctx context.Context, filter domain.RefundFilter) ([]domain.Refund, error) {
	refunds, err := s.refunds.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list refunds: %w", err)
	}
	return refunds, nil
}

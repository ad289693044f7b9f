package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/engnet/backoffice-api/internal/core/domain"
	"github.com/engnet/backoffice-api/internal/core/ports"
)

type RefundService struct {
	repo   ports.RefundRepository
	users  ports.UserRepository
	audit  auditTrail
	logger zerolog.Logger
}

func NewRefundService(
	repo ports.RefundRepository,
	users ports.UserRepository,
	audit ports.AuditLog,
	logger zerolog.Logger,
) *RefundService {
	return &RefundService{
		repo:   repo,
		users:  users,
		audit:  newAuditTrail(audit, logger),
		logger: logger,
	}
}

// Create validates the refund and checks that its owner exists. The owner
// check is not repeated later: deleting the user afterwards leaves the
// refund in place.
func (s *RefundService) Create(ctx context.Context, input ports.CreateRefundInput) (*domain.Refund, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if input.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}
	if !validID(input.UserID) {
		return nil, fmt.Errorf("%w: invalid user id", domain.ErrValidation)
	}
	if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: user %s does not exist", domain.ErrRefundOwnerNotFound, input.UserID)
		}
		return nil, fmt.Errorf("create refund: %w", err)
	}

	now := time.Now().UTC()
	refund := &domain.Refund{
		ID:          uuid.NewString(),
		Description: description,
		Amount:      input.Amount,
		Status:      domain.RefundPending,
		UserID:      input.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, refund)
	if err != nil {
		return nil, fmt.Errorf("create refund: %w", err)
	}

	s.audit.record(ctx, domain.EntityRefund, created.ID, domain.ActionCreated, map[string]any{
		"description": created.Description,
		"amount":      created.Amount.StringFixed(2),
		"status":      string(created.Status),
		"userId":      created.UserID,
	})
	s.logger.Info().
		Str("refund_id", created.ID).
		Str("user_id", created.UserID).
		Str("amount", created.Amount.StringFixed(2)).
		Msg("refund created")

	return created, nil
}

func (s *RefundService) FindAll(ctx context.Context) ([]domain.Refund, error) {
	refunds, err := s.repo.List(ctx, domain.RefundFilter{})
	if err != nil {
		return nil, fmt.Errorf("list refunds: %w", err)
	}
	return refunds, nil
}

func (s *RefundService) FindByID(ctx context.Context, id string) (*domain.Refund, error) {
	if !validID(id) {
		return nil, domain.ErrRefundNotFound
	}
	refund, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find refund: %w", err)
	}
	return refund, nil
}

func (s *RefundService) FindByUser(ctx context.Context, userID string) ([]domain.Refund, error) {
	if !validID(userID) {
		return nil, fmt.Errorf("%w: invalid user id", domain.ErrValidation)
	}
	refunds, err := s.repo.List(ctx, domain.RefundFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("list user refunds: %w", err)
	}
	return refunds, nil
}

// Update applies a partial update. Status changes are recorded with both
// the previous and the new value.
func (s *RefundService) Update(ctx context.Context, id string, input ports.UpdateRefundInput) (*domain.Refund, error) {
	refund, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}

	if input.Description != nil {
		v := strings.TrimSpace(*input.Description)
		if v == "" {
			return nil, fmt.Errorf("%w: description must not be empty", domain.ErrValidation)
		}
		refund.Description = v
		changes["description"] = v
	}
	if input.Amount != nil {
		if err := domain.ValidateAmount(*input.Amount); err != nil {
			return nil, err
		}
		refund.Amount = *input.Amount
		changes["amount"] = input.Amount.StringFixed(2)
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, *input.Status)
		}
		if *input.Status != refund.Status {
			changes["status"] = map[string]any{"from": string(refund.Status), "to": string(*input.Status)}
		}
		refund.Status = *input.Status
	}

	refund.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, refund)
	if err != nil {
		return nil, fmt.Errorf("update refund: %w", err)
	}

	s.audit.record(ctx, domain.EntityRefund, updated.ID, domain.ActionUpdated, changes)
	return updated, nil
}

func (s *RefundService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrRefundNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete refund: %w", err)
	}

	s.audit.record(ctx, domain.EntityRefund, id, domain.ActionDeleted, nil)
	s.logger.Info().Str("refund_id", id).Msg("refund deleted")
	return nil
}

// History returns the audit trail of a refund, oldest first. A deleted
// refund keeps its history; an id with neither a refund nor events is not
// found.
func (s *RefundService) History(ctx context.Context, id string) ([]domain.AuditEvent, error) {
	if !validID(id) {
		return nil, domain.ErrRefundNotFound
	}

	events, err := s.audit.history(ctx, domain.EntityRefund, id)
	if err != nil {
		return nil, fmt.Errorf("refund history: %w", err)
	}
	if len(events) > 0 {
		return events, nil
	}

	if _, err := s.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return events, nil
}

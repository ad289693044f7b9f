package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/engnet/backoffice-api/internal/core/domain"
	"github.com/engnet/backoffice-api/internal/core/ports"
)

// auditTrail writes audit events on a best-effort basis: a failed write is
// logged and never fails the operation that produced it. A nil log disables
// recording.
type auditTrail struct {
	log    ports.AuditLog
	logger zerolog.Logger
}

func newAuditTrail(log ports.AuditLog, logger zerolog.Logger) auditTrail {
	return auditTrail{log: log, logger: logger}
}

func (a auditTrail) record(ctx context.Context, entity, id, action string, changes map[string]any) {
	if a.log == nil {
		return
	}

	event := domain.AuditEvent{
		Entity:     entity,
		EntityID:   id,
		Action:     action,
		Changes:    changes,
		OccurredAt: time.Now().UTC(),
	}
	if err := a.log.Record(ctx, event); err != nil {
		a.logger.Warn().
			Err(err).
			Str("entity", entity).
			Str("entity_id", id).
			Str("action", action).
			Msg("failed to record audit event")
	}
}

func (a auditTrail) history(ctx context.Context, entity, id string) ([]domain.AuditEvent, error) {
	if a.log == nil {
		return []domain.AuditEvent{}, nil
	}
	return a.log.History(ctx, entity, id)
}

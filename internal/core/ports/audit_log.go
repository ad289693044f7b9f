package ports

import (
	"context"

	"github.com/engnet/backoffice-api/internal/core/domain"
)

// AuditLog is an append-only store of entity write events.
type AuditLog interface {
	Record(ctx context.Context, event domain.AuditEvent) error
	// History returns the events for one entity, oldest first.
	History(ctx context.Context, entity, entityID string) ([]domain.AuditEvent, error)
}

package domain

import "time"

const (
	EntityUser   = "user"
	EntityClient = "client"
	EntityRefund = "refund"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// AuditEvent is an append-only record of a write against one entity.
type AuditEvent struct {
	Entity     string
	EntityID   string
	Action     string
	Changes    map[string]any
	OccurredAt time.Time
}

package handler

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Amounts are accepted as JSON numbers or numeric strings. New refunds
// always start PENDING; status only changes through an update.
type createRefundRequest struct {
	Description string           `json:"description" validate:"required"`
	Amount      *decimal.Decimal `json:"amount" validate:"required,money" swaggertype:"number"`
	UserID      string           `json:"userId" validate:"required,uuid"`
}

type updateRefundRequest struct {
	Description *string          `json:"description" validate:"omitnil,min=1"`
	Amount      *decimal.Decimal `json:"amount" validate:"omitnil,money" swaggertype:"number"`
	Status      *string          `json:"status" validate:"omitnil,refundstatus"`
}

type refundResponse struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount" swaggertype:"number"`
	Status      string      `json:"status"`
	UserID      string      `json:"userId"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type auditEventResponse struct {
	Entity     string         `json:"entity"`
	EntityID   string         `json:"entityId"`
	Action     string         `json:"action"`
	Changes    map[string]any `json:"changes,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}

package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RefundStatus represents the review state of a refund request.
type RefundStatus string

const (
	RefundPending  RefundStatus = "PENDING"
	RefundApproved RefundStatus = "APPROVED"
	RefundRejected RefundStatus = "REJECTED"
)

// RefundStatuses lists every valid status in display order.
var RefundStatuses = []RefundStatus{RefundPending, RefundApproved, RefundRejected}

// Valid reports whether s is one of the known statuses.
func (s RefundStatus) Valid() bool {
	for _, known := range RefundStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseRefundStatus accepts any casing ("pending", "Pending", "PENDING").
func ParseRefundStatus(raw string) (RefundStatus, error) {
	s := RefundStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		names := make([]string, len(RefundStatuses))
		for i, known := range RefundStatuses {
			names[i] = string(known)
		}
		return "", fmt.Errorf("%w: %q, expected one of %s", ErrInvalidStatus, raw, strings.Join(names, ", "))
	}
	return s, nil
}

// Refund is an expense reimbursement request owned by a user.
type Refund struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Status      RefundStatus
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DaysSinceCreation returns the number of whole days between CreatedAt and now.
func (r *Refund) DaysSinceCreation(now time.Time) int {
	if now.Before(r.CreatedAt) {
		return 0
	}
	return int(now.Sub(r.CreatedAt).Hours() / 24)
}

// RefundFilter narrows refund listings. Zero values mean "no constraint";
// From and To are inclusive bounds on CreatedAt.
type RefundFilter struct {
	Status *RefundStatus
	UserID string
	From   *time.Time
	To     *time.Time
}

// MaxRefundAmount is the largest amount the refunds.amount column holds.
var MaxRefundAmount = decimal.RequireFromString("99999999.99")

// ValidateAmount requires a strictly positive amount with at most two
// fractional digits, no larger than MaxRefundAmount.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than 0", ErrValidation)
	}
	if amount.GreaterThan(MaxRefundAmount) {
		return fmt.Errorf("%w: amount must not exceed %s", ErrValidation, MaxRefundAmount.StringFixed(2))
	}
	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: amount must have at most 2 decimal places", ErrValidation)
	}
	return nil
}

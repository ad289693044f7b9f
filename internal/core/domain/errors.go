package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("email already in use")

	ErrClientNotFound = errors.New("client not found")

	ErrRefundNotFound      = errors.New("refund not found")
	ErrRefundOwnerNotFound = errors.New("refund owner not found")
	ErrInvalidStatus       = errors.New("invalid refund status")
	ErrInvalidDateRange    = errors.New("invalid date range")
)

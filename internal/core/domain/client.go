package domain

import "time"

// Client is a customer company. It has no relation to users or refunds.
type Client struct {
	ID            string
	CompanyName   string
	ContactPerson string
	CNPJ          *string // optional tax id, 14-18 chars and not blank when present; marks a closed contract
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

package domain

import "time"

// Claims is the verified payload of a bearer token.
type Claims struct {
	Subject   string    `json:"sub"`
	Email     string    `json:"email"`
	TokenID   string    `json:"jti,omitempty"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

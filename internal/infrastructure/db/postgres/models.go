package postgres

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/engnet/backoffice-api/internal/core/domain"
)

type userRow struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"not null;uniqueIndex"`
	Password  string `gorm:"not null"`
	Role      string `gorm:"not null;default:user"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userRow) TableName() string { return "users" }

func newUserRow(u *domain.User) userRow {
	return userRow{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.PasswordHash,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.Password,
		Role:         r.Role,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type clientRow struct {
	ID            string  `gorm:"type:uuid;primaryKey"`
	CompanyName   string  `gorm:"not null"`
	ContactPerson string  `gorm:"not null"`
	CNPJ          *string `gorm:"column:cnpj;size:18"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (clientRow) TableName() string { return "clients" }

func newClientRow(c *domain.Client) clientRow {
	return clientRow{
		ID:            c.ID,
		CompanyName:   c.CompanyName,
		ContactPerson: c.ContactPerson,
		CNPJ:          c.CNPJ,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (r clientRow) toDomain() *domain.Client {
	return &domain.Client{
		ID:            r.ID,
		CompanyName:   r.CompanyName,
		ContactPerson: r.ContactPerson,
		CNPJ:          r.CNPJ,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

type refundRow struct {
	ID          string          `gorm:"type:uuid;primaryKey"`
	Description string          `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Status      string          `gorm:"type:varchar(16);not null;default:PENDING;index"`
	UserID      string          `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time       `gorm:"index"`
	UpdatedAt   time.Time
}

func (refundRow) TableName() string { return "refunds" }

func newRefundRow(r *domain.Refund) refundRow {
	return refundRow{
		ID:          r.ID,
		Description: r.Description,
		Amount:      r.Amount,
		Status:      string(r.Status),
		UserID:      r.UserID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r refundRow) toDomain() *domain.Refund {
	return &domain.Refund{
		ID:          r.ID,
		Description: r.Description,
		Amount:      r.Amount,
		Status:      domain.RefundStatus(r.Status),
		UserID:      r.UserID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

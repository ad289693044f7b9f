package ports

import (
	"context"

	"github.com/engnet/backoffice-api/internal/core/domain"
)

type CreateClientInput struct {
	CompanyName   string
	ContactPerson string
	CNPJ          *string
}

type UpdateClientInput struct {
	CompanyName   *string
	ContactPerson *string
	CNPJ          *string
}

type ClientService interface {
	Create(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	FindAll(ctx context.Context) ([]domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	Update(ctx context.Context, id string, input UpdateClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
}

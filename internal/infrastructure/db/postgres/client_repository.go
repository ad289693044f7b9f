package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/engnet/backoffice-api/internal/core/domain"
)

// ClientRepository implements ports.ClientRepository with GORM.
type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db.ORM}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	row := newClientRow(client)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return row.toDomain(), nil
}

func (r *ClientRepository) FindAll(ctx context.Context) ([]domain.Client, error) {
	var rows []clientRow
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select clients: %w", err)
	}

	clients := make([]domain.Client, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, *row.toDomain())
	}
	return clients, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	var row clientRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("select client: %w", err)
	}
	return row.toDomain(), nil
}

func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	row := newClientRow(client)
	res := r.db.WithContext(ctx).
		Model(&clientRow{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"company_name":   row.CompanyName,
			"contact_person": row.ContactPerson,
			"cnpj":           row.CNPJ,
			"updated_at":     row.UpdatedAt,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("update client: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrClientNotFound
	}
	return r.FindByID(ctx, row.ID)
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&clientRow{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete client: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

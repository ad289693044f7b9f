package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/engnet/backoffice-api/internal/core/domain"
)

// RefundRepository implements ports.RefundRepository with GORM.
type RefundRepository struct {
	db *gorm.DB
}

func NewRefundRepository(db *DB) *RefundRepository {
	return &RefundRepository{db: db.ORM}
}

func (r *RefundRepository) Create(ctx context.Context, refund *domain.Refund) (*domain.Refund, error) {
	row := newRefundRow(refund)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, translateRefundError("insert refund", err)
	}
	return row.toDomain(), nil
}

// List applies the filter and returns matches newest first.
func (r *RefundRepository) List(ctx context.Context, filter domain.RefundFilter) ([]domain.Refund, error) {
	q := r.db.WithContext(ctx).Model(&refundRow{})
	if filter.Status != nil {
		q = q.Where("status = ?", string(*filter.Status))
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at <= ?", *filter.To)
	}

	var rows []refundRow
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select refunds: %w", err)
	}

	refunds := make([]domain.Refund, 0, len(rows))
	for _, row := range rows {
		refunds = append(refunds, *row.toDomain())
	}
	return refunds, nil
}

func (r *RefundRepository) FindByID(ctx context.Context, id string) (*domain.Refund, error) {
	var row refundRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRefundNotFound
		}
		return nil, fmt.Errorf("select refund: %w", err)
	}
	return row.toDomain(), nil
}

func (r *RefundRepository) Update(ctx context.Context, refund *domain.Refund) (*domain.Refund, error) {
	row := newRefundRow(refund)
	res := r.db.WithContext(ctx).
		Model(&refundRow{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"description": row.Description,
			"amount":      row.Amount,
			"status":      row.Status,
			"updated_at":  row.UpdatedAt,
		})
	if res.Error != nil {
		return nil, translateRefundError("update refund", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrRefundNotFound
	}
	return r.FindByID(ctx, row.ID)
}

func (r *RefundRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&refundRow{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete refund: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrRefundNotFound
	}
	return nil
}

// numeric_field_overflow
const codeNumericOverflow = "22003"

func translateRefundError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeNumericOverflow {
		return fmt.Errorf("%w: amount out of range", domain.ErrValidation)
	}
	return fmt.Errorf("%s: %w", op, err)
}

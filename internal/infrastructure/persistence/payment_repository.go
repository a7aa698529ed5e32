package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookshop/backend/internal/domain/order"
	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository implements order.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GORM payment repository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

var _ order.PaymentRepository = (*GormPaymentRepository)(nil)

func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Payment, error) {
	var payment order.Payment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by id: %w", err)
	}
	return &payment, nil
}

func (r *GormPaymentRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*order.Payment, error) {
	var payments []*order.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find payments by order: %w", err)
	}
	return payments, nil
}

func (r *GormPaymentRepository) SumCompletedByOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&order.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("order_id = ? AND status = ?", orderID, order.PaymentStatusCompleted).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum completed payments: %w", err)
	}
	return sum, nil
}

func (r *GormPaymentRepository) Save(ctx context.Context, payment *order.Payment) error {
	if err := r.db.WithContext(ctx).Save(payment).Error; err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}
	return nil
}

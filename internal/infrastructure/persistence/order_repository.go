package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bookshop/backend/internal/domain/order"
	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

var _ order.OrderRepository = (*GormOrderRepository)(nil)

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	err := r.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order by id: %w", err)
	}
	return &o, nil
}

func (r *GormOrderRepository) FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		Where("id = ?", id).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order with details: %w", err)
	}
	return &o, nil
}

func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*order.Order], error) {
	query := r.db.WithContext(ctx).Model(&order.Order{})
	return r.paginate(query, filter)
}

func (r *GormOrderRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) (shared.Paginated[*order.Order], error) {
	query := r.db.WithContext(ctx).Model(&order.Order{}).Where("client_id = ?", clientID)
	return r.paginate(query, filter)
}

func (r *GormOrderRepository) FindByStatus(ctx context.Context, status order.Status, filter shared.Filter) (shared.Paginated[*order.Order], error) {
	query := r.db.WithContext(ctx).Model(&order.Order{}).Where("status = ?", status)
	return r.paginate(query, filter)
}

func (r *GormOrderRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) (shared.Paginated[*order.Order], error) {
	query := r.db.WithContext(ctx).Model(&order.Order{}).
		Where("created_at >= ? AND created_at <= ?", from, to)
	return r.paginate(query, filter)
}

// Save persists the order and its items atomically. Items removed from
// the aggregate are deleted, remaining ones are upserted.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Payments").Save(o).Error; err != nil {
			return fmt.Errorf("failed to save order: %w", err)
		}

		itemIDs := make([]uuid.UUID, 0, len(o.Items))
		for i := range o.Items {
			itemIDs = append(itemIDs, o.Items[i].ID)
		}
		if len(itemIDs) > 0 {
			if err := tx.Where("order_id = ? AND id NOT IN ?", o.ID, itemIDs).
				Delete(&order.OrderItem{}).Error; err != nil {
				return fmt.Errorf("failed to delete removed order items: %w", err)
			}
		} else {
			if err := tx.Where("order_id = ?", o.ID).
				Delete(&order.OrderItem{}).Error; err != nil {
				return fmt.Errorf("failed to delete order items: %w", err)
			}
		}

		for i := range o.Items {
			o.Items[i].OrderID = o.ID
			if err := tx.Save(&o.Items[i]).Error; err != nil {
				return fmt.Errorf("failed to save order item: %w", err)
			}
		}
		return nil
	})
}

func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&order.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&order.Order{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&order.Order{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

func (r *GormOrderRepository) paginate(query *gorm.DB, filter shared.Filter) (shared.Paginated[*order.Order], error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*order.Order]{}, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []*order.Order
	if err := applyPagination(query.Preload("Items"), filter).Find(&orders).Error; err != nil {
		return shared.Paginated[*order.Order]{}, fmt.Errorf("failed to find orders: %w", err)
	}

	return shared.NewPaginated(orders, total, filter.Page, filter.PageSize), nil
}

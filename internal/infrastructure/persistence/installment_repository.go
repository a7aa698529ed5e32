package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookshop/backend/internal/domain/installment"
	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInstallmentRepository implements installment.InstallmentRepository using GORM
type GormInstallmentRepository struct {
	db *gorm.DB
}

// NewGormInstallmentRepository creates a new GORM installment repository
func NewGormInstallmentRepository(db *gorm.DB) *GormInstallmentRepository {
	return &GormInstallmentRepository{db: db}
}

var _ installment.InstallmentRepository = (*GormInstallmentRepository)(nil)

func (r *GormInstallmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*installment.Installment, error) {
	var plan installment.Installment
	err := r.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		Where("id = ?", id).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find installment plan by id: %w", err)
	}
	return &plan, nil
}

func (r *GormInstallmentRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) (*installment.Installment, error) {
	var plan installment.Installment
	err := r.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		Where("order_id = ?", orderID).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find installment plan by order: %w", err)
	}
	return &plan, nil
}

func (r *GormInstallmentRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*installment.Installment], error) {
	query := r.db.WithContext(ctx).Model(&installment.Installment{})
	return r.paginate(query, filter)
}

func (r *GormInstallmentRepository) FindByStatus(ctx context.Context, status installment.Status, filter shared.Filter) (shared.Paginated[*installment.Installment], error) {
	query := r.db.WithContext(ctx).Model(&installment.Installment{}).Where("status = ?", status)
	return r.paginate(query, filter)
}

// Save persists the plan and its schedule rows atomically.
func (r *GormInstallmentRepository) Save(ctx context.Context, plan *installment.Installment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Payments").Save(plan).Error; err != nil {
			return fmt.Errorf("failed to save installment plan: %w", err)
		}
		for i := range plan.Payments {
			plan.Payments[i].InstallmentID = plan.ID
			if err := tx.Save(&plan.Payments[i]).Error; err != nil {
				return fmt.Errorf("failed to save installment payment: %w", err)
			}
		}
		return nil
	})
}

func (r *GormInstallmentRepository) ExistsByOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&installment.Installment{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check installment plan existence: %w", err)
	}
	return count > 0, nil
}

func (r *GormInstallmentRepository) paginate(query *gorm.DB, filter shared.Filter) (shared.Paginated[*installment.Installment], error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*installment.Installment]{}, fmt.Errorf("failed to count installment plans: %w", err)
	}

	var plans []*installment.Installment
	err := applyPagination(query.Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("number ASC")
	}), filter).Find(&plans).Error
	if err != nil {
		return shared.Paginated[*installment.Installment]{}, fmt.Errorf("failed to find installment plans: %w", err)
	}

	return shared.NewPaginated(plans, total, filter.Page, filter.PageSize), nil
}

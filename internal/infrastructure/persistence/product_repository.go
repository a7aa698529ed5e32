package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookshop/backend/internal/domain/catalog"
	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)

func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by id: %w", err)
	}
	return &product, nil
}

func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []*catalog.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products by ids: %w", err)
	}
	return products, nil
}

func (r *GormProductRepository) FindByName(ctx context.Context, name string) (*catalog.Product, error) {
	var product catalog.Product
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by name: %w", err)
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	query := r.db.WithContext(ctx).Model(&catalog.Product{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	return r.paginate(query, filter)
}

func (r *GormProductRepository) FindByCategory(ctx context.Context, category catalog.Category, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	query := r.db.WithContext(ctx).Model(&catalog.Product{}).Where("category = ?", category)
	return r.paginate(query, filter)
}

func (r *GormProductRepository) FindByStatus(ctx context.Context, status catalog.StockStatus, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	query := r.db.WithContext(ctx).Model(&catalog.Product{}).Where("status = ?", status)
	return r.paginate(query, filter)
}

func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&catalog.Product{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *GormProductRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.Product{}).Where("name = ?", name).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check product existence by name: %w", err)
	}
	return count > 0, nil
}

func (r *GormProductRepository) paginate(query *gorm.DB, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*catalog.Product]{}, fmt.Errorf("failed to count products: %w", err)
	}

	var products []*catalog.Product
	if err := applyPagination(query, filter).Find(&products).Error; err != nil {
		return shared.Paginated[*catalog.Product]{}, fmt.Errorf("failed to find products: %w", err)
	}

	return shared.NewPaginated(products, total, filter.Page, filter.PageSize), nil
}

// GormStockMovementRepository implements catalog.StockMovementRepository using GORM
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GORM stock movement repository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

var _ catalog.StockMovementRepository = (*GormStockMovementRepository)(nil)

func (r *GormStockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.StockMovement, error) {
	var movement catalog.StockMovement
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&movement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find stock movement by id: %w", err)
	}
	return &movement, nil
}

func (r *GormStockMovementRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (shared.Paginated[*catalog.StockMovement], error) {
	query := r.db.WithContext(ctx).Model(&catalog.StockMovement{}).Where("product_id = ?", productID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*catalog.StockMovement]{}, fmt.Errorf("failed to count stock movements: %w", err)
	}

	var movements []*catalog.StockMovement
	if err := applyPagination(query, filter).Find(&movements).Error; err != nil {
		return shared.Paginated[*catalog.StockMovement]{}, fmt.Errorf("failed to find stock movements: %w", err)
	}

	return shared.NewPaginated(movements, total, filter.Page, filter.PageSize), nil
}

func (r *GormStockMovementRepository) Save(ctx context.Context, movement *catalog.StockMovement) error {
	if err := r.db.WithContext(ctx).Save(movement).Error; err != nil {
		return fmt.Errorf("failed to save stock movement: %w", err)
	}
	return nil
}

package catalog

import (
	"context"

	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*Product], error)
	FindByCategory(ctx context.Context, category Category, filter shared.Filter) (shared.Paginated[*Product], error)
	FindByStatus(ctx context.Context, status StockStatus, filter shared.Filter) (shared.Paginated[*Product], error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// StockMovementRepository defines the persistence operations for stock movements
type StockMovementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockMovement, error)
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (shared.Paginated[*StockMovement], error)
	Save(ctx context.Context, movement *StockMovement) error
}

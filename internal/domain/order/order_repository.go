package order

import (
	"context"
	"time"

	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderRepository defines the persistence operations for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*Order], error)
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) (shared.Paginated[*Order], error)
	FindByStatus(ctx context.Context, status Status, filter shared.Filter) (shared.Paginated[*Order], error)
	FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) (shared.Paginated[*Order], error)
	Save(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// PaymentRepository defines the persistence operations for payments
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*Payment, error)
	// SumCompletedByOrder returns the sum of COMPLETED payment amounts
	// for the order, zero when there are none.
	SumCompletedByOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error)
	Save(ctx context.Context, payment *Payment) error
}

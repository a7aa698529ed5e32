package installment

import (
	"context"

	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InstallmentRepository defines the persistence operations for installment plans
type InstallmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Installment, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) (*Installment, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*Installment], error)
	FindByStatus(ctx context.Context, status Status, filter shared.Filter) (shared.Paginated[*Installment], error)
	Save(ctx context.Context, plan *Installment) error
	ExistsByOrder(ctx context.Context, orderID uuid.UUID) (bool, error)
}

package partner

import (
	"context"

	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByID finds a client by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindByPhone finds a client by its unique phone number
	FindByPhone(ctx context.Context, phone string) (*Client, error)

	// FindAll finds all clients matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)

	// Save creates or updates a client
	Save(ctx context.Context, client *Client) error

	// Delete deletes a client
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts clients matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByPhone checks if a client with the given phone exists
	ExistsByPhone(ctx context.Context, phone string) (bool, error)

	// ExistsByID checks if a client with the given ID exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

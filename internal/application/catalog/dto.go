package catalog

import (
	"time"

	"github.com/bookshop/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name            string          `json:"name" binding:"required,min=1,max=200"`
	Category        string          `json:"category" binding:"required"`
	UnitPrice       decimal.Decimal `json:"unit_price" binding:"required"`
	InitialQuantity int             `json:"initial_quantity" binding:"gte=0"`
}

// UpdateProductRequest represents a request to update a product's
// descriptive fields. Stock changes go through UpdateStockRequest.
type UpdateProductRequest struct {
	Name      *string          `json:"name"`
	Category  *string          `json:"category"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// UpdateStockRequest represents a stock movement to apply to a product
type UpdateStockRequest struct {
	MovementType string `json:"movement_type" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required"`
	Reason       string `json:"reason" binding:"max=500"`
}

// ProductListFilter represents filtering options for product lists
type ProductListFilter struct {
	Category *string `form:"category"`
	Status   *string `form:"status"`
	Page     int     `form:"page"`
	PageSize *int    `form:"page_size"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	AvailableQuantity int             `json:"available_quantity"`
	ReservedQuantity  int             `json:"reserved_quantity"`
	TotalQuantity     int             `json:"total_quantity"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// StockMovementResponse represents a stock movement in API responses
type StockMovementResponse struct {
	ID               uuid.UUID `json:"id"`
	ProductID        uuid.UUID `json:"product_id"`
	Type             string    `json:"type"`
	Quantity         int       `json:"quantity"`
	PreviousQuantity int       `json:"previous_quantity"`
	NewQuantity      int       `json:"new_quantity"`
	Reason           string    `json:"reason,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Category:          p.Category.String(),
		UnitPrice:         p.UnitPrice,
		AvailableQuantity: p.AvailableQuantity,
		ReservedQuantity:  p.ReservedQuantity,
		TotalQuantity:     p.TotalQuantity,
		Status:            p.Status.String(),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// ToStockMovementResponse converts a domain movement to a response DTO
func ToStockMovementResponse(m *catalog.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		Type:             m.Type.String(),
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		Reason:           m.Reason,
		CreatedAt:        m.CreatedAt,
	}
}

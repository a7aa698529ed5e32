package catalog

import (
	"github.com/bookshop/backend/internal/domain/shared"
)

const AggregateTypeProduct = "Product"

// ProductCreatedEvent is emitted when a product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// NewProductCreatedEvent creates a new product created event
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("product.created", AggregateTypeProduct, product.ID),
		Name:            product.Name,
		Category:        product.Category,
	}
}

// StockReservedEvent is emitted when stock is reserved for an order
type StockReservedEvent struct {
	shared.BaseDomainEvent
	Quantity          int         `json:"quantity"`
	AvailableQuantity int         `json:"available_quantity"`
	Status            StockStatus `json:"status"`
}

// NewStockReservedEvent creates a new stock reserved event
func NewStockReservedEvent(product *Product, quantity int) *StockReservedEvent {
	return &StockReservedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent("product.stock_reserved", AggregateTypeProduct, product.ID),
		Quantity:          quantity,
		AvailableQuantity: product.AvailableQuantity,
		Status:            product.Status,
	}
}

// StockReleasedEvent is emitted when a reservation is released back to available
type StockReleasedEvent struct {
	shared.BaseDomainEvent
	Quantity          int         `json:"quantity"`
	AvailableQuantity int         `json:"available_quantity"`
	Status            StockStatus `json:"status"`
}

// NewStockReleasedEvent creates a new stock released event
func NewStockReleasedEvent(product *Product, quantity int) *StockReleasedEvent {
	return &StockReleasedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent("product.stock_released", AggregateTypeProduct, product.ID),
		Quantity:          quantity,
		AvailableQuantity: product.AvailableQuantity,
		Status:            product.Status,
	}
}

// StockMovedEvent is emitted when a stock movement is applied
type StockMovedEvent struct {
	shared.BaseDomainEvent
	MovementType     MovementType `json:"movement_type"`
	Quantity         int          `json:"quantity"`
	PreviousQuantity int          `json:"previous_quantity"`
	NewQuantity      int          `json:"new_quantity"`
	Status           StockStatus  `json:"status"`
}

// NewStockMovedEvent creates a new stock moved event
func NewStockMovedEvent(product *Product, movement *StockMovement) *StockMovedEvent {
	return &StockMovedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent("product.stock_moved", AggregateTypeProduct, product.ID),
		MovementType:     movement.Type,
		Quantity:         movement.Quantity,
		PreviousQuantity: movement.PreviousQuantity,
		NewQuantity:      movement.NewQuantity,
		Status:           product.Status,
	}
}

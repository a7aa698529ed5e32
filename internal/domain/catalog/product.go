package catalog

import (
	"strings"
	"time"

	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/bookshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Category represents the product category
type Category string

const (
	CategoryBooks      Category = "BOOKS"
	CategoryTextbooks  Category = "TEXTBOOKS"
	CategoryStationery Category = "STATIONERY"
	CategoryMagazines  Category = "MAGAZINES"
	CategoryOther      Category = "OTHER"
)

// IsValid checks if the category is a valid Category
func (c Category) IsValid() bool {
	switch c {
	case CategoryBooks, CategoryTextbooks, CategoryStationery, CategoryMagazines, CategoryOther:
		return true
	}
	return false
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// StockStatus represents the derived availability status of a product
type StockStatus string

const (
	StockStatusAvailable  StockStatus = "AVAILABLE"
	StockStatusLowStock   StockStatus = "LOW_STOCK"
	StockStatusOutOfStock StockStatus = "OUT_OF_STOCK"
)

// IsValid checks if the status is a valid StockStatus
func (s StockStatus) IsValid() bool {
	switch s {
	case StockStatusAvailable, StockStatusLowStock, StockStatusOutOfStock:
		return true
	}
	return false
}

// String returns the string representation of StockStatus
func (s StockStatus) String() string {
	return string(s)
}

// LowStockThreshold is the available quantity at or below which a product
// is considered low on stock.
const LowStockThreshold = 10

// DeriveStockStatus derives the stock status from an available quantity.
// It is total over all integers and applied after every quantity mutation,
// never lazily at read time.
func DeriveStockStatus(availableQuantity int) StockStatus {
	switch {
	case availableQuantity <= 0:
		return StockStatusOutOfStock
	case availableQuantity <= LowStockThreshold:
		return StockStatusLowStock
	default:
		return StockStatusAvailable
	}
}

// Product represents a sellable item and its stock position.
// It is the aggregate root for catalog and inventory operations.
// Invariant: AvailableQuantity + ReservedQuantity == TotalQuantity.
type Product struct {
	shared.BaseAggregateRoot
	Name              string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	Category          Category        `gorm:"type:varchar(20);not null"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	AvailableQuantity int             `gorm:"not null;default:0"` // Available for sale
	ReservedQuantity  int             `gorm:"not null;default:0"` // Allocated to in-progress orders
	TotalQuantity     int             `gorm:"not null;default:0"` // Available + reserved
	Status            StockStatus     `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with an initial available quantity
func NewProduct(name string, category Category, unitPrice valueobject.Money, initialQuantity int) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown product category")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if initialQuantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Initial quantity cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Category:          category,
		UnitPrice:         unitPrice.Amount(),
		AvailableQuantity: initialQuantity,
		ReservedQuantity:  0,
		TotalQuantity:     initialQuantity,
		Status:            DeriveStockStatus(initialQuantity),
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's descriptive fields
func (p *Product) Update(name string, category Category) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Unknown product category")
	}

	p.Name = strings.TrimSpace(name)
	p.Category = category
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// UpdatePrice updates the unit price. Existing order items keep the
// price snapshotted at order time.
func (p *Product) UpdatePrice(unitPrice valueobject.Money) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	p.UnitPrice = unitPrice.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// CanFulfill returns true if the available quantity covers the requested quantity
func (p *Product) CanFulfill(quantity int) bool {
	return quantity > 0 && p.AvailableQuantity >= quantity
}

// Reserve moves quantity from available to reserved for an in-progress order
func (p *Product) Reserve(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Reserve quantity must be positive")
	}
	if p.AvailableQuantity < quantity {
		return shared.ErrInsufficientStock
	}

	p.AvailableQuantity -= quantity
	p.ReservedQuantity += quantity
	p.recomputeStatus()

	p.AddDomainEvent(NewStockReservedEvent(p, quantity))

	return nil
}

// ReleaseReservation moves quantity back from reserved to available,
// used when an order holding the reservation is cancelled.
func (p *Product) ReleaseReservation(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Release quantity must be positive")
	}
	if p.ReservedQuantity < quantity {
		return shared.NewDomainError("INVALID_QUANTITY", "Release quantity exceeds reserved stock")
	}

	p.ReservedQuantity -= quantity
	p.AvailableQuantity += quantity
	p.recomputeStatus()

	p.AddDomainEvent(NewStockReleasedEvent(p, quantity))

	return nil
}

// ApplyMovement applies a stock movement to the available quantity and
// returns the audit record capturing previous and new quantity.
//
// Movement rules: STOCK_IN and RETURN add, STOCK_OUT subtracts, ADJUSTMENT
// sets the available quantity to an absolute value. The resulting quantity
// must not be negative.
func (p *Product) ApplyMovement(movementType MovementType, quantity int, reason string) (*StockMovement, error) {
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT", "Unknown stock movement type")
	}

	previous := p.AvailableQuantity

	var next int
	switch movementType {
	case MovementTypeStockIn, MovementTypeReturn:
		if quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity must be positive")
		}
		next = previous + quantity
	case MovementTypeStockOut:
		if quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity must be positive")
		}
		next = previous - quantity
	case MovementTypeAdjustment:
		if quantity < 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Adjusted quantity cannot be negative")
		}
		next = quantity
	}

	if next < 0 {
		return nil, shared.ErrInsufficientStock
	}

	p.AvailableQuantity = next
	p.recomputeStatus()

	movement := NewStockMovement(p.ID, movementType, quantity, previous, next, reason)

	p.AddDomainEvent(NewStockMovedEvent(p, movement))

	return movement, nil
}

// recomputeStatus re-derives the stored status and keeps the total in step
// with available + reserved.
func (p *Product) recomputeStatus() {
	p.TotalQuantity = p.AvailableQuantity + p.ReservedQuantity
	p.Status = DeriveStockStatus(p.AvailableQuantity)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// GetUnitPriceMoney returns the unit price as Money value object
func (p *Product) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.UnitPrice)
}

// IsOutOfStock returns true if no stock is available
func (p *Product) IsOutOfStock() bool {
	return p.Status == StockStatusOutOfStock
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

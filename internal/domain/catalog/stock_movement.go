package catalog

import (
	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MovementType represents the kind of stock movement
type MovementType string

const (
	MovementTypeStockIn    MovementType = "STOCK_IN"
	MovementTypeStockOut   MovementType = "STOCK_OUT"
	MovementTypeAdjustment MovementType = "ADJUSTMENT"
	MovementTypeReturn     MovementType = "RETURN"
)

// IsValid checks if the movement type is a valid MovementType
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeStockIn, MovementTypeStockOut, MovementTypeAdjustment, MovementTypeReturn:
		return true
	}
	return false
}

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// StockMovement is the audit record for a change to a product's available
// quantity. Movements are append-only; corrections are new ADJUSTMENT rows.
type StockMovement struct {
	shared.BaseEntity
	ProductID        uuid.UUID    `gorm:"type:uuid;not null;index"`
	Type             MovementType `gorm:"type:varchar(20);not null"`
	Quantity         int          `gorm:"not null"`
	PreviousQuantity int          `gorm:"not null"`
	NewQuantity      int          `gorm:"not null"`
	Reason           string       `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a stock movement audit record
func NewStockMovement(productID uuid.UUID, movementType MovementType, quantity, previous, next int, reason string) *StockMovement {
	return &StockMovement{
		BaseEntity:       shared.NewBaseEntity(),
		ProductID:        productID,
		Type:             movementType,
		Quantity:         quantity,
		PreviousQuantity: previous,
		NewQuantity:      next,
		Reason:           reason,
	}
}

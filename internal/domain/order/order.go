package order

import (
	"time"

	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/bookshop/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status of an order
type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusPaid       Status = "PAID"
	StatusPending    Status = "PENDING"
	StatusCancelled  Status = "CANCELLED"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusInProgress, StatusPaid, StatusPending, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	transitions := map[Status][]Status{
		StatusInProgress: {StatusPaid, StatusPending, StatusCancelled},
		StatusPending:    {StatusInProgress, StatusPaid, StatusCancelled},
		StatusPaid:       {},
		StatusCancelled:  {},
	}

	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// PaymentMethod represents how an order is paid
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodInstallments PaymentMethod = "INSTALLMENTS"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodTransfer     PaymentMethod = "TRANSFER"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodInstallments, PaymentMethodCard, PaymentMethodTransfer:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// Order represents a sales order and is the aggregate root for the
// order lifecycle. Items are created with the order and never mutated.
type Order struct {
	shared.BaseAggregateRoot
	ClientID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status        Status          `gorm:"type:varchar(20);not null"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Notes         string          `gorm:"type:text"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID"`
	Payments      []Payment       `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line of an order. ProductName and UnitPrice are
// snapshots taken at order creation; later catalog changes do not
// affect existing orders.
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates an order line with the line total computed from
// the snapshotted unit price.
func NewOrderItem(productID uuid.UUID, productName string, quantity int, unitPrice valueobject.Money) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	lineTotal := unitPrice.Amount().Mul(decimal.NewFromInt(int64(quantity)))

	return &OrderItem{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		LineTotal:   lineTotal,
	}, nil
}

// NewOrder creates a new order from its items. The total amount is the
// sum of line totals and is immutable afterwards.
func NewOrder(clientID uuid.UUID, items []OrderItem, method PaymentMethod, notes string) (*Order, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal)
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		Status:            StatusInProgress,
		PaymentMethod:     method,
		TotalAmount:       total,
		Notes:             notes,
		Items:             items,
	}

	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// UpdateStatus transitions the order to the target status following the
// transition table. Automatic PAID transitions go through MarkPaid.
func (o *Order) UpdateStatus(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATE", "Unknown order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot transition order from "+o.Status.String()+" to "+target.String())
	}

	previous := o.Status
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))

	return nil
}

// MarkPaid transitions the order to PAID when the completed payments
// cover the total. The transition happens at most once; a PAID order
// stays PAID.
func (o *Order) MarkPaid() error {
	if o.Status == StatusPaid {
		return nil
	}
	return o.UpdateStatus(StatusPaid)
}

// Cancel transitions the order to CANCELLED
func (o *Order) Cancel() error {
	return o.UpdateStatus(StatusCancelled)
}

// IsCancelled returns true if the order has been cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == StatusCancelled
}

// IsPaid returns true if the order is fully paid
func (o *Order) IsPaid() bool {
	return o.Status == StatusPaid
}

// GetTotalMoney returns the order total as Money value object
func (o *Order) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalAmount)
}

// ItemCount returns the number of lines in the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

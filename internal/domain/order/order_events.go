package order

import (
	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const AggregateTypeOrder = "Order"

// OrderCreatedEvent is emitted when a new order is composed
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	ClientID      uuid.UUID       `json:"client_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	ItemCount     int             `json:"item_count"`
}

// NewOrderCreatedEvent creates a new order created event
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("order.created", AggregateTypeOrder, o.ID),
		ClientID:        o.ClientID,
		TotalAmount:     o.TotalAmount,
		PaymentMethod:   o.PaymentMethod,
		ItemCount:       len(o.Items),
	}
}

// OrderStatusChangedEvent is emitted on every order status transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	PreviousStatus Status `json:"previous_status"`
	NewStatus      Status `json:"new_status"`
}

// NewOrderStatusChangedEvent creates a new status changed event
func NewOrderStatusChangedEvent(o *Order, previous Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("order.status_changed", AggregateTypeOrder, o.ID),
		PreviousStatus:  previous,
		NewStatus:       o.Status,
	}
}

// PaymentRecordedEvent is emitted when a payment is recorded against an order
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	PaymentID uuid.UUID       `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	Type      PaymentType     `json:"type"`
}

// NewPaymentRecordedEvent creates a new payment recorded event
func NewPaymentRecordedEvent(o *Order, p *Payment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("order.payment_recorded", AggregateTypeOrder, o.ID),
		PaymentID:       p.ID,
		Amount:          p.Amount,
		Type:            p.Type,
	}
}

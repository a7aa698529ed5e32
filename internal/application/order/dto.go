package order

import (
	"time"

	"github.com/bookshop/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest represents a request to compose a new order
type CreateOrderRequest struct {
	ClientID      uuid.UUID              `json:"client_id" binding:"required"`
	Items         []CreateOrderItemInput `json:"items" binding:"required,min=1"`
	PaymentMethod string                 `json:"payment_method" binding:"required"`
	Notes         string                 `json:"notes"`
}

// CreateOrderItemInput represents one requested line of a new order.
// Price and product name are not accepted from the caller; they are
// snapshotted from the catalog at composition time.
type CreateOrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// UpdateOrderStatusRequest represents an explicit status update
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AddPaymentRequest represents a request to record a payment against an order
type AddPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
}

// OrderListFilter represents filtering options for order lists
type OrderListFilter struct {
	ClientID *uuid.UUID `form:"client_id"`
	Status   *string    `form:"status"`
	DateFrom *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"date_to" time_format:"2006-01-02"`
	Page     int        `form:"page"`
	PageSize *int       `form:"page_size"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Type      string          `json:"type"`
	Status    string          `json:"status"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	PaidAt    time.Time       `json:"paid_at"`
}

// OrderResponse represents a full order in API responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	ClientID      uuid.UUID           `json:"client_id"`
	Status        string              `json:"status"`
	PaymentMethod string              `json:"payment_method"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Notes         string              `json:"notes,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	Payments      []PaymentResponse   `json:"payments"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// OrderListItemResponse represents an order in list responses, without
// item and payment details.
type OrderListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	ClientID      uuid.UUID       `json:"client_id"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	ItemCount     int             `json:"item_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ValidationResponse represents the outcome of an aggregated validation pass
type ValidationResponse struct {
	Valid    bool     `json:"valid"`
	Messages []string `json:"messages"`
}

// ToOrderItemResponse converts a domain order item to a response DTO
func ToOrderItemResponse(item order.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:          item.ID,
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		LineTotal:   item.LineTotal,
	}
}

// ToPaymentResponse converts a domain payment to a response DTO
func ToPaymentResponse(p *order.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Amount:    p.Amount,
		Method:    p.Method.String(),
		Type:      p.Type.String(),
		Status:    p.Status.String(),
		Reference: p.Reference,
		Notes:     p.Notes,
		PaidAt:    p.PaidAt,
	}
}

// ToOrderResponse converts a domain order to a full response DTO
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, ToOrderItemResponse(item))
	}

	payments := make([]PaymentResponse, 0, len(o.Payments))
	for idx := range o.Payments {
		payments = append(payments, ToPaymentResponse(&o.Payments[idx]))
	}

	return OrderResponse{
		ID:            o.ID,
		ClientID:      o.ClientID,
		Status:        o.Status.String(),
		PaymentMethod: o.PaymentMethod.String(),
		TotalAmount:   o.TotalAmount,
		Notes:         o.Notes,
		Items:         items,
		Payments:      payments,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// ToOrderListItemResponse converts a domain order to a list item DTO
func ToOrderListItemResponse(o *order.Order) OrderListItemResponse {
	return OrderListItemResponse{
		ID:            o.ID,
		ClientID:      o.ClientID,
		Status:        o.Status.String(),
		PaymentMethod: o.PaymentMethod.String(),
		TotalAmount:   o.TotalAmount,
		ItemCount:     len(o.Items),
		CreatedAt:     o.CreatedAt,
	}
}

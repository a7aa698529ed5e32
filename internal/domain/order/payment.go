package order

import (
	"time"

	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/bookshop/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentType represents the kind of payment recorded against an order
type PaymentType string

const (
	PaymentTypeRegular     PaymentType = "REGULAR_PAYMENT"
	PaymentTypeInstallment PaymentType = "INSTALLMENT_PAYMENT"
	PaymentTypeRefund      PaymentType = "REFUND"
	PaymentTypePartial     PaymentType = "PARTIAL_PAYMENT"
)

// IsValid checks if the type is a valid PaymentType
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentTypeRegular, PaymentTypeInstallment, PaymentTypeRefund, PaymentTypePartial:
		return true
	}
	return false
}

// String returns the string representation of PaymentType
func (t PaymentType) String() string {
	return string(t)
}

// PaymentStatus represents the processing status of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// Payment is a money receipt recorded against an order. Only COMPLETED
// payments count toward the order total.
type Payment struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Method    PaymentMethod   `gorm:"type:varchar(20);not null"`
	Type      PaymentType     `gorm:"type:varchar(30);not null"`
	Status    PaymentStatus   `gorm:"type:varchar(20);not null"`
	Reference string          `gorm:"type:varchar(200)"` // External receipt or transfer reference
	Notes     string          `gorm:"type:text"`
	PaidAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a completed payment against an order
func NewPayment(orderID uuid.UUID, amount valueobject.Money, method PaymentMethod, paymentType PaymentType, reference, notes string) (*Payment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if !paymentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", "Unknown payment type")
	}

	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		Amount:     amount.Amount(),
		Method:     method,
		Type:       paymentType,
		Status:     PaymentStatusCompleted,
		Reference:  reference,
		Notes:      notes,
		PaidAt:     time.Now(),
	}, nil
}

// GetAmountMoney returns the payment amount as Money value object
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Amount)
}

// IsCompleted returns true if the payment counts toward the order total
func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentStatusCompleted
}

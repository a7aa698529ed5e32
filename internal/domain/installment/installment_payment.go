package installment

import (
	"time"

	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the status of a single schedule row
type PaymentStatus string

const (
	PaymentStatusPending       PaymentStatus = "PENDING"
	PaymentStatusPaid          PaymentStatus = "PAID"
	PaymentStatusOverdue       PaymentStatus = "OVERDUE"
	PaymentStatusCancelled     PaymentStatus = "CANCELLED"
	PaymentStatusPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusOverdue,
		PaymentStatusCancelled, PaymentStatusPartiallyPaid:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// InstallmentPayment is one row of an installment schedule. Number 0 is
// the initial payment, numbers 1..N follow at the plan's interval.
type InstallmentPayment struct {
	shared.BaseEntity
	InstallmentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Number        int             `gorm:"not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DueDate       time.Time       `gorm:"not null"`
	PaidAt        *time.Time      `gorm:""`
	Status        PaymentStatus   `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (InstallmentPayment) TableName() string {
	return "installment_payments"
}

func newScheduleRow(installmentID uuid.UUID, number int, amount decimal.Decimal, dueDate time.Time) InstallmentPayment {
	return InstallmentPayment{
		BaseEntity:    shared.NewBaseEntity(),
		InstallmentID: installmentID,
		Number:        number,
		Amount:        amount,
		PaidAmount:    decimal.Zero,
		DueDate:       dueDate,
		Status:        PaymentStatusPending,
	}
}

// IsOpen returns true if the row can still receive money
func (p *InstallmentPayment) IsOpen() bool {
	switch p.Status {
	case PaymentStatusPending, PaymentStatusOverdue, PaymentStatusPartiallyPaid:
		return true
	}
	return false
}

// RemainingAmount returns the unpaid remainder of this row
func (p *InstallmentPayment) RemainingAmount() decimal.Decimal {
	return p.Amount.Sub(p.PaidAmount)
}

// apply puts up to `available` toward this row and returns the amount
// actually applied. Full coverage marks the row PAID, anything less
// marks it PARTIALLY_PAID.
func (p *InstallmentPayment) apply(available decimal.Decimal, paidAt time.Time) decimal.Decimal {
	remaining := p.RemainingAmount()

	applied := available
	if applied.GreaterThan(remaining) {
		applied = remaining
	}

	p.PaidAmount = p.PaidAmount.Add(applied)
	p.UpdatedAt = time.Now()

	if p.PaidAmount.GreaterThanOrEqual(p.Amount) {
		p.Status = PaymentStatusPaid
		at := paidAt
		p.PaidAt = &at
	} else if p.PaidAmount.IsPositive() {
		p.Status = PaymentStatusPartiallyPaid
	}

	return applied
}

package installment

import (
	"time"

	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status of an installment plan
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusOverdue   Status = "OVERDUE"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled, StatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// Config holds the parameters of an installment plan. The plan must be
// balanced: InitialPayment + NumberOfInstallments x InstallmentAmount
// equals TotalAmount exactly.
type Config struct {
	TotalAmount          decimal.Decimal
	InitialPayment       decimal.Decimal
	NumberOfInstallments int
	InstallmentAmount    decimal.Decimal
	PaymentIntervalDays  int
	StartDate            time.Time
}

// Installment is the aggregate root for an order's installment plan.
// One plan per order; the schedule is generated once at creation and
// rows are only ever marked, never regenerated.
type Installment struct {
	shared.BaseAggregateRoot
	OrderID              uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex"`
	TotalAmount          decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	InitialPayment       decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	NumberOfInstallments int                  `gorm:"not null"`
	InstallmentAmount    decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	PaymentIntervalDays  int                  `gorm:"not null"`
	StartDate            time.Time            `gorm:"not null"`
	Status               Status               `gorm:"type:varchar(20);not null"`
	Payments             []InstallmentPayment `gorm:"foreignKey:InstallmentID"`
}

// TableName returns the table name for GORM
func (Installment) TableName() string {
	return "installments"
}

// NewInstallment creates an installment plan and its full schedule.
// Schedule generation is deterministic: the same config always yields
// the same rows.
func NewInstallment(orderID uuid.UUID, config Config) (*Installment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID is required")
	}
	if !config.TotalAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Plan total must be positive")
	}
	if config.InitialPayment.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Initial payment cannot be negative")
	}
	if config.NumberOfInstallments <= 0 {
		return nil, shared.NewDomainError("INVALID_PLAN", "Number of installments must be positive")
	}
	if !config.InstallmentAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Installment amount must be positive")
	}
	if config.PaymentIntervalDays <= 0 {
		return nil, shared.NewDomainError("INVALID_PLAN", "Payment interval must be positive")
	}
	if config.StartDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_PLAN", "Start date is required")
	}

	scheduled := config.InitialPayment.Add(
		config.InstallmentAmount.Mul(decimal.NewFromInt(int64(config.NumberOfInstallments))))
	if !scheduled.Equal(config.TotalAmount) {
		return nil, shared.NewDomainError("UNBALANCED_PLAN",
			"Initial payment plus installments must equal the plan total exactly")
	}

	plan := &Installment{
		BaseAggregateRoot:    shared.NewBaseAggregateRoot(),
		OrderID:              orderID,
		TotalAmount:          config.TotalAmount,
		InitialPayment:       config.InitialPayment,
		NumberOfInstallments: config.NumberOfInstallments,
		InstallmentAmount:    config.InstallmentAmount,
		PaymentIntervalDays:  config.PaymentIntervalDays,
		StartDate:            normalizeDate(config.StartDate),
		Status:               StatusActive,
	}

	plan.Payments = plan.buildSchedule()

	plan.AddDomainEvent(NewInstallmentCreatedEvent(plan))

	return plan, nil
}

// buildSchedule generates the schedule rows: row 0 is the initial
// payment due on the start date (omitted when the plan has no initial
// payment), rows 1..n are due at fixed interval steps after it.
func (i *Installment) buildSchedule() []InstallmentPayment {
	rows := make([]InstallmentPayment, 0, i.NumberOfInstallments+1)

	if i.InitialPayment.IsPositive() {
		rows = append(rows, newScheduleRow(i.ID, 0, i.InitialPayment, i.StartDate))
	}

	for n := 1; n <= i.NumberOfInstallments; n++ {
		dueDate := i.StartDate.AddDate(0, 0, n*i.PaymentIntervalDays)
		rows = append(rows, newScheduleRow(i.ID, n, i.InstallmentAmount, dueDate))
	}

	return rows
}

// ApplyPayment applies an amount to the plan's open rows oldest-first.
// A fully covered row becomes PAID; a partially covered row becomes
// PARTIALLY_PAID with the accumulated amount. When no open row remains
// the plan transitions to COMPLETED.
func (i *Installment) ApplyPayment(amount decimal.Decimal, paidAt time.Time) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if i.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot record a payment on a cancelled plan")
	}
	if i.Status == StatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Installment plan is already completed")
	}

	remaining := amount
	for idx := range i.Payments {
		if remaining.IsZero() {
			break
		}
		row := &i.Payments[idx]
		if !row.IsOpen() {
			continue
		}

		applied := row.apply(remaining, paidAt)
		remaining = remaining.Sub(applied)
	}

	if i.openRowCount() == 0 {
		i.Status = StatusCompleted
		i.AddDomainEvent(NewInstallmentCompletedEvent(i))
	}

	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// Cancel cancels the plan and every row that is still open
func (i *Installment) Cancel() error {
	if i.Status == StatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel a completed plan")
	}
	if i.Status == StatusCancelled {
		return nil
	}

	i.Status = StatusCancelled
	for idx := range i.Payments {
		if i.Payments[idx].IsOpen() {
			i.Payments[idx].Status = PaymentStatusCancelled
		}
	}
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// OverdueRows returns the open rows whose due date has passed as of the
// given time. Pure query, no state change.
func (i *Installment) OverdueRows(asOf time.Time) []InstallmentPayment {
	var overdue []InstallmentPayment
	for _, row := range i.Payments {
		if row.IsOpen() && row.DueDate.Before(normalizeDate(asOf)) {
			overdue = append(overdue, row)
		}
	}
	return overdue
}

// PaidAmount returns the total amount applied to the schedule so far
func (i *Installment) PaidAmount() decimal.Decimal {
	total := decimal.Zero
	for _, row := range i.Payments {
		total = total.Add(row.PaidAmount)
	}
	return total
}

// RemainingAmount returns the unpaid remainder of the plan
func (i *Installment) RemainingAmount() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount())
}

func (i *Installment) openRowCount() int {
	count := 0
	for _, row := range i.Payments {
		if row.IsOpen() {
			count++
		}
	}
	return count
}

// normalizeDate truncates a timestamp to UTC midnight so schedules do
// not depend on the time of day or zone the plan was created in.
func normalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

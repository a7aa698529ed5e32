package installment

import (
	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const AggregateTypeInstallment = "Installment"

// InstallmentCreatedEvent is emitted when a plan and its schedule are generated
type InstallmentCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID              uuid.UUID       `json:"order_id"`
	TotalAmount          decimal.Decimal `json:"total_amount"`
	NumberOfInstallments int             `json:"number_of_installments"`
	ScheduleRows         int             `json:"schedule_rows"`
}

// NewInstallmentCreatedEvent creates a new plan created event
func NewInstallmentCreatedEvent(plan *Installment) *InstallmentCreatedEvent {
	return &InstallmentCreatedEvent{
		BaseDomainEvent:      shared.NewBaseDomainEvent("installment.created", AggregateTypeInstallment, plan.ID),
		OrderID:              plan.OrderID,
		TotalAmount:          plan.TotalAmount,
		NumberOfInstallments: plan.NumberOfInstallments,
		ScheduleRows:         len(plan.Payments),
	}
}

// InstallmentCompletedEvent is emitted when the last open row is paid off
type InstallmentCompletedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
}

// NewInstallmentCompletedEvent creates a new plan completed event
func NewInstallmentCompletedEvent(plan *Installment) *InstallmentCompletedEvent {
	return &InstallmentCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("installment.completed", AggregateTypeInstallment, plan.ID),
		OrderID:         plan.OrderID,
	}
}

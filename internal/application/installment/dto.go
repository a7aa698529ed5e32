package installment

import (
	"time"

	"github.com/bookshop/backend/internal/domain/installment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInstallmentPlanRequest represents a request to create a plan for an order
type CreateInstallmentPlanRequest struct {
	TotalAmount          decimal.Decimal `json:"total_amount" binding:"required"`
	InitialPayment       decimal.Decimal `json:"initial_payment"`
	NumberOfInstallments int             `json:"number_of_installments" binding:"required,gt=0"`
	InstallmentAmount    decimal.Decimal `json:"installment_amount" binding:"required"`
	PaymentIntervalDays  int             `json:"payment_interval_days" binding:"required,gt=0"`
	StartDate            time.Time       `json:"start_date" binding:"required" time_format:"2006-01-02"`
}

// InstallmentPaymentResponse represents one schedule row in API responses
type InstallmentPaymentResponse struct {
	ID         uuid.UUID       `json:"id"`
	Number     int             `json:"number"`
	Amount     decimal.Decimal `json:"amount"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
	DueDate    time.Time       `json:"due_date"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
	Status     string          `json:"status"`
}

// InstallmentResponse represents a plan with its schedule in API responses
type InstallmentResponse struct {
	ID                   uuid.UUID                    `json:"id"`
	OrderID              uuid.UUID                    `json:"order_id"`
	TotalAmount          decimal.Decimal              `json:"total_amount"`
	InitialPayment       decimal.Decimal              `json:"initial_payment"`
	NumberOfInstallments int                          `json:"number_of_installments"`
	InstallmentAmount    decimal.Decimal              `json:"installment_amount"`
	PaymentIntervalDays  int                          `json:"payment_interval_days"`
	StartDate            time.Time                    `json:"start_date"`
	Status               string                       `json:"status"`
	PaidAmount           decimal.Decimal              `json:"paid_amount"`
	RemainingAmount      decimal.Decimal              `json:"remaining_amount"`
	Payments             []InstallmentPaymentResponse `json:"payments"`
}

// ToInstallmentPaymentResponse converts a schedule row to a response DTO
func ToInstallmentPaymentResponse(row installment.InstallmentPayment) InstallmentPaymentResponse {
	return InstallmentPaymentResponse{
		ID:         row.ID,
		Number:     row.Number,
		Amount:     row.Amount,
		PaidAmount: row.PaidAmount,
		DueDate:    row.DueDate,
		PaidAt:     row.PaidAt,
		Status:     row.Status.String(),
	}
}

// ToInstallmentResponse converts a plan to a response DTO
func ToInstallmentResponse(plan *installment.Installment) InstallmentResponse {
	rows := make([]InstallmentPaymentResponse, 0, len(plan.Payments))
	for _, row := range plan.Payments {
		rows = append(rows, ToInstallmentPaymentResponse(row))
	}

	return InstallmentResponse{
		ID:                   plan.ID,
		OrderID:              plan.OrderID,
		TotalAmount:          plan.TotalAmount,
		InitialPayment:       plan.InitialPayment,
		NumberOfInstallments: plan.NumberOfInstallments,
		InstallmentAmount:    plan.InstallmentAmount,
		PaymentIntervalDays:  plan.PaymentIntervalDays,
		StartDate:            plan.StartDate,
		Status:               plan.Status.String(),
		PaidAmount:           plan.PaidAmount(),
		RemainingAmount:      plan.RemainingAmount(),
		Payments:             rows,
	}
}

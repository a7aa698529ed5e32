package order

import (
	"context"
	"fmt"
	"time"

	"github.com/bookshop/backend/internal/domain/installment"
	"github.com/bookshop/backend/internal/domain/order"
	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/bookshop/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentService records payments against orders and keeps the order and
// its installment plan in step with the money received.
type PaymentService struct {
	txScope        TransactionScope
	paymentRepo    order.PaymentRepository
	eventPublisher shared.EventPublisher
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(txScope TransactionScope, paymentRepo order.PaymentRepository) *PaymentService {
	return &PaymentService{
		txScope:     txScope,
		paymentRepo: paymentRepo,
	}
}

// SetEventPublisher sets the publisher that receives domain events after
// each committed operation
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// AddPaymentToOrder records a completed payment against an order. The
// cumulative completed total can never exceed the order total; reaching
// it exactly transitions the order to PAID. When the order pays by
// installments the amount is also applied to the plan's open schedule
// rows oldest-first. Returns the new payment's ID.
func (s *PaymentService) AddPaymentToOrder(ctx context.Context, orderID uuid.UUID, req AddPaymentRequest) (uuid.UUID, error) {
	amount := valueobject.NewMoneyUSD(req.Amount)
	if !amount.IsPositive() {
		return uuid.Nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	method := order.PaymentMethod(req.Method)
	if !method.IsValid() {
		return uuid.Nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}

	var (
		paymentID uuid.UUID
		paidOrder *order.Order
		paidPlan  *installment.Installment
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o.IsCancelled() {
			return shared.NewDomainError("INVALID_STATE", "Cannot record a payment on a cancelled order")
		}

		paid, err := repos.PaymentRepo().SumCompletedByOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("summing payments for order %s: %w", orderID, err)
		}

		newTotal := paid.Add(req.Amount)
		if newTotal.GreaterThan(o.TotalAmount) {
			return shared.NewDomainError("PAYMENT_EXCEEDS_TOTAL",
				fmt.Sprintf("Payment of %s would exceed the order total: %s already paid of %s",
					req.Amount, paid, o.TotalAmount))
		}

		paymentType := order.PaymentTypeRegular
		if o.PaymentMethod == order.PaymentMethodInstallments {
			paymentType = order.PaymentTypeInstallment
		}

		payment, err := order.NewPayment(orderID, amount, method, paymentType, req.Reference, req.Notes)
		if err != nil {
			return err
		}
		if err := repos.PaymentRepo().Save(ctx, payment); err != nil {
			return fmt.Errorf("saving payment: %w", err)
		}

		if o.PaymentMethod == order.PaymentMethodInstallments {
			plan, err := s.applyToInstallmentPlan(ctx, repos, o.ID, payment.Amount, payment.PaidAt)
			if err != nil {
				return err
			}
			paidPlan = plan
		}

		if newTotal.Equal(o.TotalAmount) {
			if err := o.MarkPaid(); err != nil {
				return err
			}
		}

		o.AddDomainEvent(order.NewPaymentRecordedEvent(o, payment))
		if err := repos.OrderRepo().Save(ctx, o); err != nil {
			return fmt.Errorf("saving order: %w", err)
		}

		paymentID = payment.ID
		paidOrder = o
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	if paidPlan != nil {
		PublishEvents(ctx, s.eventPublisher, paidOrder, paidPlan)
	} else {
		PublishEvents(ctx, s.eventPublisher, paidOrder)
	}
	return paymentID, nil
}

// applyToInstallmentPlan forwards a payment to the order's plan if one
// exists. An installments order without a plan yet is fine; the payment
// simply counts toward the order total.
func (s *PaymentService) applyToInstallmentPlan(ctx context.Context, repos TransactionalRepositories, orderID uuid.UUID, amount decimal.Decimal, paidAt time.Time) (*installment.Installment, error) {
	plan, err := repos.InstallmentRepo().FindByOrder(ctx, orderID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("looking up installment plan for order %s: %w", orderID, err)
	}

	if err := plan.ApplyPayment(amount, paidAt); err != nil {
		return nil, err
	}
	if err := repos.InstallmentRepo().Save(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// ListByOrder returns all payments recorded against an order
func (s *PaymentService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, ToPaymentResponse(p))
	}
	return responses, nil
}

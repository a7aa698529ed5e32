package installment

import (
	"context"
	"fmt"
	"time"

	appord "github.com/bookshop/backend/internal/application/order"
	"github.com/bookshop/backend/internal/domain/installment"
	"github.com/bookshop/backend/internal/domain/order"
	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InstallmentService creates and queries installment plans. Plan creation
// is all-or-nothing: the plan and its full schedule persist together or
// not at all.
type InstallmentService struct {
	txScope         appord.TransactionScope
	installmentRepo installment.InstallmentRepository
	eventPublisher  shared.EventPublisher
}

// NewInstallmentService creates a new InstallmentService
func NewInstallmentService(txScope appord.TransactionScope, installmentRepo installment.InstallmentRepository) *InstallmentService {
	return &InstallmentService{
		txScope:         txScope,
		installmentRepo: installmentRepo,
	}
}

// SetEventPublisher sets the publisher that receives domain events after
// each committed operation
func (s *InstallmentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateInstallmentPlan creates the plan for an order. The order must pay
// by installments, have no existing plan, and the configuration must be
// balanced against the order total.
func (s *InstallmentService) CreateInstallmentPlan(ctx context.Context, orderID uuid.UUID, req CreateInstallmentPlanRequest) (uuid.UUID, error) {
	var created *installment.Installment
	err := s.txScope.Execute(ctx, func(repos appord.TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o.PaymentMethod != order.PaymentMethodInstallments {
			return shared.NewDomainError("INVALID_STATE",
				"Installment plans are only allowed on orders paying by installments")
		}
		if o.IsCancelled() {
			return shared.NewDomainError("INVALID_STATE", "Cannot create a plan for a cancelled order")
		}

		exists, err := repos.InstallmentRepo().ExistsByOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("checking existing plan for order %s: %w", orderID, err)
		}
		if exists {
			return shared.NewDomainError("DUPLICATE_PLAN", "Order already has an installment plan")
		}

		if !req.TotalAmount.Equal(o.TotalAmount) {
			return shared.NewDomainError("UNBALANCED_PLAN",
				fmt.Sprintf("Plan total %s does not match the order total %s", req.TotalAmount, o.TotalAmount))
		}

		plan, err := installment.NewInstallment(orderID, installment.Config{
			TotalAmount:          req.TotalAmount,
			InitialPayment:       req.InitialPayment,
			NumberOfInstallments: req.NumberOfInstallments,
			InstallmentAmount:    req.InstallmentAmount,
			PaymentIntervalDays:  req.PaymentIntervalDays,
			StartDate:            req.StartDate,
		})
		if err != nil {
			return err
		}

		if err := repos.InstallmentRepo().Save(ctx, plan); err != nil {
			return fmt.Errorf("saving installment plan: %w", err)
		}

		created = plan
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	appord.PublishEvents(ctx, s.eventPublisher, created)
	return created.ID, nil
}

// GetByOrder retrieves the plan for an order, schedule included
func (s *InstallmentService) GetByOrder(ctx context.Context, orderID uuid.UUID) (*InstallmentResponse, error) {
	plan, err := s.installmentRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToInstallmentResponse(plan)
	return &response, nil
}

// ListSchedule returns the schedule rows of an order's plan
func (s *InstallmentService) ListSchedule(ctx context.Context, orderID uuid.UUID) ([]InstallmentPaymentResponse, error) {
	plan, err := s.installmentRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	rows := make([]InstallmentPaymentResponse, 0, len(plan.Payments))
	for _, row := range plan.Payments {
		rows = append(rows, ToInstallmentPaymentResponse(row))
	}
	return rows, nil
}

// ListOverdue returns the schedule rows of an order's plan that are past
// due as of the given time.
func (s *InstallmentService) ListOverdue(ctx context.Context, orderID uuid.UUID, asOf time.Time) ([]InstallmentPaymentResponse, error) {
	plan, err := s.installmentRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	overdue := plan.OverdueRows(asOf)
	rows := make([]InstallmentPaymentResponse, 0, len(overdue))
	for _, row := range overdue {
		rows = append(rows, ToInstallmentPaymentResponse(row))
	}
	return rows, nil
}

// CancelPlan cancels an order's plan together with its open rows
func (s *InstallmentService) CancelPlan(ctx context.Context, orderID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos appord.TransactionalRepositories) error {
		plan, err := repos.InstallmentRepo().FindByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if err := plan.Cancel(); err != nil {
			return err
		}
		return repos.InstallmentRepo().Save(ctx, plan)
	})
}

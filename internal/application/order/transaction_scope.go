package order

import (
	"context"

	"github.com/bookshop/backend/internal/domain/catalog"
	"github.com/bookshop/backend/internal/domain/installment"
	"github.com/bookshop/backend/internal/domain/order"
)

// TransactionScope provides transactional access to the repositories the
// order lifecycle touches. When a function is executed within a scope, all
// repository operations are part of the same database transaction and are
// committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories involved in
// order composition, payment reconciliation, and stock movements. All
// repositories returned share the same underlying database transaction.
//
// Aggregate boundary notes:
//   - OrderRepo persists the Order aggregate; items and payments are saved
//     via GORM association handling when the root is saved.
//   - ProductRepo carries the stock side of order composition so that the
//     reservation and the order commit or roll back together.
//   - InstallmentRepo is only touched by the payment path, when a payment
//     lands on an order with an installment plan.
type TransactionalRepositories interface {
	OrderRepo() order.OrderRepository
	PaymentRepo() order.PaymentRepository
	ProductRepo() catalog.ProductRepository
	MovementRepo() catalog.StockMovementRepository
	InstallmentRepo() installment.InstallmentRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests.
type NoOpTransactionScope struct {
	orderRepo       order.OrderRepository
	paymentRepo     order.PaymentRepository
	productRepo     catalog.ProductRepository
	movementRepo    catalog.StockMovementRepository
	installmentRepo installment.InstallmentRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	orderRepo order.OrderRepository,
	paymentRepo order.PaymentRepository,
	productRepo catalog.ProductRepository,
	movementRepo catalog.StockMovementRepository,
	installmentRepo installment.InstallmentRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:       orderRepo,
		paymentRepo:     paymentRepo,
		productRepo:     productRepo,
		movementRepo:    movementRepo,
		installmentRepo: installmentRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() order.OrderRepository {
	return s.orderRepo
}

// PaymentRepo returns the payment repository.
func (s *NoOpTransactionScope) PaymentRepo() order.PaymentRepository {
	return s.paymentRepo
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// MovementRepo returns the stock movement repository.
func (s *NoOpTransactionScope) MovementRepo() catalog.StockMovementRepository {
	return s.movementRepo
}

// InstallmentRepo returns the installment plan repository.
func (s *NoOpTransactionScope) InstallmentRepo() installment.InstallmentRepository {
	return s.installmentRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)

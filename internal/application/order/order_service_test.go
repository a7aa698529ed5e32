package order

import (
	"context"
	"testing"

	"github.com/bookshop/backend/internal/domain/catalog"
	"github.com/bookshop/backend/internal/domain/order"
	"github.com/bookshop/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderServiceFixture struct {
	clientRepo      *MockClientRepository
	productRepo     *MockProductRepository
	orderRepo       *MockOrderRepository
	paymentRepo     *MockPaymentRepository
	movementRepo    *MockStockMovementRepository
	installmentRepo *MockInstallmentRepository
	service         *OrderService
}

func newOrderServiceFixture() *orderServiceFixture {
	f := &orderServiceFixture{
		clientRepo:      new(MockClientRepository),
		productRepo:     new(MockProductRepository),
		orderRepo:       new(MockOrderRepository),
		paymentRepo:     new(MockPaymentRepository),
		movementRepo:    new(MockStockMovementRepository),
		installmentRepo: new(MockInstallmentRepository),
	}
	scope := NewNoOpTransactionScope(f.orderRepo, f.paymentRepo, f.productRepo, f.movementRepo, f.installmentRepo)
	validator := NewValidationService(f.clientRepo, f.productRepo)
	f.service = NewOrderService(scope, validator, f.orderRepo)
	return f
}

func TestOrderService_CreateOrderWithItems(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the order and reserves stock per line", func(t *testing.T) {
		f := newOrderServiceFixture()
		clientID := uuid.New()
		product, err := catalog.NewProduct("Go in Practice", catalog.CategoryBooks,
			valueobject.NewMoneyUSDFromFloat(25.00), 20)
		require.NoError(t, err)

		f.clientRepo.On("ExistsByID", ctx, clientID).Return(true, nil)
		f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		f.productRepo.On("Save", ctx, product).Return(nil)
		f.orderRepo.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

		orderID, err := f.service.CreateOrderWithItems(ctx, CreateOrderRequest{
			ClientID:      clientID,
			Items:         []CreateOrderItemInput{{ProductID: product.ID, Quantity: 3}},
			PaymentMethod: "CASH",
		})
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, orderID)
		assert.Equal(t, 17, product.AvailableQuantity)
		assert.Equal(t, 3, product.ReservedQuantity)
		assert.Equal(t, 20, product.TotalQuantity)

		savedOrder := f.orderRepo.Calls[0].Arguments.Get(1).(*order.Order)
		assert.True(t, savedOrder.TotalAmount.Equal(decimal.NewFromInt(75)))
		require.Len(t, savedOrder.Items, 1)
		assert.Equal(t, "Go in Practice", savedOrder.Items[0].ProductName)
	})

	t.Run("publishes the composition events after commit", func(t *testing.T) {
		f := newOrderServiceFixture()
		publisher := new(RecordingEventPublisher)
		f.service.SetEventPublisher(publisher)

		clientID := uuid.New()
		product, err := catalog.NewProduct("Go in Practice", catalog.CategoryBooks,
			valueobject.NewMoneyUSDFromFloat(25.00), 20)
		require.NoError(t, err)

		f.clientRepo.On("ExistsByID", ctx, clientID).Return(true, nil)
		f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		f.productRepo.On("Save", ctx, product).Return(nil)
		f.orderRepo.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

		orderID, err := f.service.CreateOrderWithItems(ctx, CreateOrderRequest{
			ClientID:      clientID,
			Items:         []CreateOrderItemInput{{ProductID: product.ID, Quantity: 3}},
			PaymentMethod: "CASH",
		})
		require.NoError(t, err)

		require.NotEmpty(t, publisher.Events)
		assert.Equal(t, "order.created", publisher.Events[0].EventType())
		assert.Equal(t, orderID, publisher.Events[0].AggregateID())

		savedOrder := f.orderRepo.Calls[0].Arguments.Get(1).(*order.Order)
		assert.Empty(t, savedOrder.GetDomainEvents())
	})

	t.Run("a validation failure mutates nothing", func(t *testing.T) {
		f := newOrderServiceFixture()
		clientID := uuid.New()
		product, err := catalog.NewProduct("Algebra I", catalog.CategoryTextbooks,
			valueobject.NewMoneyUSDFromFloat(30.00), 2)
		require.NoError(t, err)

		f.clientRepo.On("ExistsByID", ctx, clientID).Return(true, nil)
		f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err = f.service.CreateOrderWithItems(ctx, CreateOrderRequest{
			ClientID:      clientID,
			Items:         []CreateOrderItemInput{{ProductID: product.ID, Quantity: 5}},
			PaymentMethod: "CASH",
		})
		require.Error(t, err)

		assert.Equal(t, 2, product.AvailableQuantity)
		assert.Equal(t, 0, product.ReservedQuantity)
		f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("reports every invalid line at once", func(t *testing.T) {
		f := newOrderServiceFixture()
		clientID := uuid.New()
		shortA, err := catalog.NewProduct("Algebra I", catalog.CategoryTextbooks,
			valueobject.NewMoneyUSDFromFloat(30.00), 1)
		require.NoError(t, err)
		shortB, err := catalog.NewProduct("Algebra II", catalog.CategoryTextbooks,
			valueobject.NewMoneyUSDFromFloat(32.00), 1)
		require.NoError(t, err)

		f.clientRepo.On("ExistsByID", ctx, clientID).Return(true, nil)
		f.productRepo.On("FindByID", ctx, shortA.ID).Return(shortA, nil)
		f.productRepo.On("FindByID", ctx, shortB.ID).Return(shortB, nil)

		_, err = f.service.CreateOrderWithItems(ctx, CreateOrderRequest{
			ClientID: clientID,
			Items: []CreateOrderItemInput{
				{ProductID: shortA.ID, Quantity: 3},
				{ProductID: shortB.ID, Quantity: 3},
			},
			PaymentMethod: "CASH",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Algebra I")
		assert.Contains(t, err.Error(), "Algebra II")
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	newInProgressOrder := func(t *testing.T, product *catalog.Product, quantity int) *order.Order {
		t.Helper()
		item, err := order.NewOrderItem(product.ID, product.Name, quantity,
			valueobject.NewMoneyUSD(product.UnitPrice))
		require.NoError(t, err)
		o, err := order.NewOrder(uuid.New(), []order.OrderItem{*item}, order.PaymentMethodCash, "")
		require.NoError(t, err)
		return o
	}

	t.Run("cancelling releases the reservations", func(t *testing.T) {
		f := newOrderServiceFixture()
		product, err := catalog.NewProduct("World Map", catalog.CategoryOther,
			valueobject.NewMoneyUSDFromFloat(8.00), 10)
		require.NoError(t, err)
		require.NoError(t, product.Reserve(4))

		o := newInProgressOrder(t, product, 4)
		f.orderRepo.On("FindByIDWithDetails", ctx, o.ID).Return(o, nil)
		f.orderRepo.On("Save", ctx, o).Return(nil)
		f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		f.productRepo.On("Save", ctx, product).Return(nil)

		require.NoError(t, f.service.UpdateStatus(ctx, o.ID, order.StatusCancelled))

		assert.Equal(t, order.StatusCancelled, o.Status)
		assert.Equal(t, 10, product.AvailableQuantity)
		assert.Equal(t, 0, product.ReservedQuantity)
	})

	t.Run("moving to pending keeps reservations", func(t *testing.T) {
		f := newOrderServiceFixture()
		product, err := catalog.NewProduct("City Map", catalog.CategoryOther,
			valueobject.NewMoneyUSDFromFloat(8.00), 10)
		require.NoError(t, err)
		require.NoError(t, product.Reserve(4))

		o := newInProgressOrder(t, product, 4)
		f.orderRepo.On("FindByIDWithDetails", ctx, o.ID).Return(o, nil)
		f.orderRepo.On("Save", ctx, o).Return(nil)

		require.NoError(t, f.service.UpdateStatus(ctx, o.ID, order.StatusPending))

		assert.Equal(t, 4, product.ReservedQuantity)
		f.productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an invalid transition", func(t *testing.T) {
		f := newOrderServiceFixture()
		product, err := catalog.NewProduct("Town Map", catalog.CategoryOther,
			valueobject.NewMoneyUSDFromFloat(8.00), 10)
		require.NoError(t, err)

		o := newInProgressOrder(t, product, 2)
		require.NoError(t, o.MarkPaid())
		f.orderRepo.On("FindByIDWithDetails", ctx, o.ID).Return(o, nil)

		assert.Error(t, f.service.UpdateStatus(ctx, o.ID, order.StatusCancelled))
	})
}

func TestOrderService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes a cancelled order", func(t *testing.T) {
		f := newOrderServiceFixture()
		product, _ := catalog.NewProduct("Old Atlas", catalog.CategoryBooks,
			valueobject.NewMoneyUSDFromFloat(5.00), 5)
		item, err := order.NewOrderItem(product.ID, product.Name, 1, valueobject.NewMoneyUSD(product.UnitPrice))
		require.NoError(t, err)
		o, err := order.NewOrder(uuid.New(), []order.OrderItem{*item}, order.PaymentMethodCash, "")
		require.NoError(t, err)
		require.NoError(t, o.Cancel())

		f.orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		f.orderRepo.On("Delete", ctx, o.ID).Return(nil)

		assert.NoError(t, f.service.Delete(ctx, o.ID))
	})

	t.Run("refuses to delete an active order", func(t *testing.T) {
		f := newOrderServiceFixture()
		product, _ := catalog.NewProduct("New Atlas", catalog.CategoryBooks,
			valueobject.NewMoneyUSDFromFloat(5.00), 5)
		item, err := order.NewOrderItem(product.ID, product.Name, 1, valueobject.NewMoneyUSD(product.UnitPrice))
		require.NoError(t, err)
		o, err := order.NewOrder(uuid.New(), []order.OrderItem{*item}, order.PaymentMethodCash, "")
		require.NoError(t, err)

		f.orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

		assert.Error(t, f.service.Delete(ctx, o.ID))
		f.orderRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

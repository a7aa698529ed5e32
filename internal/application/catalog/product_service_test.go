package catalog

import (
	"context"
	"testing"

	appord "github.com/bookshop/backend/internal/application/order"
	"github.com/bookshop/backend/internal/domain/catalog"
	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/bookshop/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByName(ctx context.Context, name string) (*catalog.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*catalog.Product]), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, category catalog.Category, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	args := m.Called(ctx, category, filter)
	return args.Get(0).(shared.Paginated[*catalog.Product]), args.Error(1)
}

func (m *MockProductRepository) FindByStatus(ctx context.Context, status catalog.StockStatus, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).(shared.Paginated[*catalog.Product]), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// MockStockMovementRepository is a mock implementation of catalog.StockMovementRepository
type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.StockMovement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (shared.Paginated[*catalog.StockMovement], error) {
	args := m.Called(ctx, productID, filter)
	return args.Get(0).(shared.Paginated[*catalog.StockMovement]), args.Error(1)
}

func (m *MockStockMovementRepository) Save(ctx context.Context, movement *catalog.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func newFixture() (*MockProductRepository, *MockStockMovementRepository, *ProductService) {
	productRepo := new(MockProductRepository)
	movementRepo := new(MockStockMovementRepository)
	scope := appord.NewNoOpTransactionScope(nil, nil, productRepo, movementRepo, nil)
	return productRepo, movementRepo, NewProductService(scope, productRepo, movementRepo)
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a product", func(t *testing.T) {
		productRepo, _, service := newFixture()
		productRepo.On("ExistsByName", ctx, "Go in Practice").Return(false, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		response, err := service.Create(ctx, CreateProductRequest{
			Name:            "Go in Practice",
			Category:        "BOOKS",
			UnitPrice:       decimal.NewFromFloat(25.50),
			InitialQuantity: 15,
		})
		require.NoError(t, err)

		assert.Equal(t, "AVAILABLE", response.Status)
		assert.Equal(t, 15, response.AvailableQuantity)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		productRepo, _, service := newFixture()
		productRepo.On("ExistsByName", ctx, "Go in Practice").Return(true, nil)

		_, err := service.Create(ctx, CreateProductRequest{
			Name:      "Go in Practice",
			Category:  "BOOKS",
			UnitPrice: decimal.NewFromFloat(25.50),
		})
		require.Error(t, err)
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductService_UpdateStock(t *testing.T) {
	ctx := context.Background()

	newProduct := func(t *testing.T, available int) *catalog.Product {
		t.Helper()
		product, err := catalog.NewProduct("Staplers", catalog.CategoryStationery,
			valueobject.NewMoneyUSDFromFloat(4.00), available)
		require.NoError(t, err)
		return product
	}

	t.Run("applies the movement and appends the audit record", func(t *testing.T) {
		productRepo, movementRepo, service := newFixture()
		product := newProduct(t, 5)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("Save", ctx, product).Return(nil)
		movementRepo.On("Save", ctx, mock.AnythingOfType("*catalog.StockMovement")).Return(nil)

		response, err := service.UpdateStock(ctx, product.ID, UpdateStockRequest{
			MovementType: "STOCK_IN",
			Quantity:     20,
			Reason:       "supplier delivery",
		})
		require.NoError(t, err)

		assert.Equal(t, 25, response.AvailableQuantity)
		assert.Equal(t, "AVAILABLE", response.Status)

		movement := movementRepo.Calls[0].Arguments.Get(1).(*catalog.StockMovement)
		assert.Equal(t, 5, movement.PreviousQuantity)
		assert.Equal(t, 25, movement.NewQuantity)
		assert.Equal(t, "supplier delivery", movement.Reason)
	})

	t.Run("a rejected movement writes nothing", func(t *testing.T) {
		productRepo, movementRepo, service := newFixture()
		product := newProduct(t, 3)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := service.UpdateStock(ctx, product.ID, UpdateStockRequest{
			MovementType: "STOCK_OUT",
			Quantity:     10,
		})
		require.Error(t, err)

		assert.Equal(t, 3, product.AvailableQuantity)
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		movementRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

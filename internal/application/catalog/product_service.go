package catalog

import (
	"context"
	"fmt"

	appord "github.com/bookshop/backend/internal/application/order"
	"github.com/bookshop/backend/internal/domain/catalog"
	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/bookshop/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ProductService handles catalog and stock operations
type ProductService struct {
	txScope        appord.TransactionScope
	productRepo    catalog.ProductRepository
	movementRepo   catalog.StockMovementRepository
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(txScope appord.TransactionScope, productRepo catalog.ProductRepository, movementRepo catalog.StockMovementRepository) *ProductService {
	return &ProductService{
		txScope:      txScope,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// SetEventPublisher sets the publisher that receives domain events after
// each committed operation
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("checking product name: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A product with this name already exists")
	}

	product, err := catalog.NewProduct(req.Name, catalog.Category(req.Category),
		valueobject.NewMoneyUSD(req.UnitPrice), req.InitialQuantity)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("saving product: %w", err)
	}

	appord.PublishEvents(ctx, s.eventPublisher, product)
	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	pagination := shared.DefaultFilter()
	if filter.Page > 0 {
		pagination.Page = filter.Page
	}
	if filter.PageSize != nil && *filter.PageSize > 0 {
		pagination.PageSize = *filter.PageSize
	}

	var (
		page shared.Paginated[*catalog.Product]
		err  error
	)
	switch {
	case filter.Category != nil:
		category := catalog.Category(*filter.Category)
		if !category.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_CATEGORY", "Unknown product category")
		}
		page, err = s.productRepo.FindByCategory(ctx, category, pagination)
	case filter.Status != nil:
		status := catalog.StockStatus(*filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATE", "Unknown stock status")
		}
		page, err = s.productRepo.FindByStatus(ctx, status, pagination)
	default:
		page, err = s.productRepo.FindAll(ctx, pagination)
	}
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, 0, len(page.Items))
	for _, product := range page.Items {
		responses = append(responses, ToProductResponse(product))
	}
	return responses, page.Total, nil
}

// Update updates a product's descriptive fields
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	category := product.Category
	if req.Category != nil {
		category = catalog.Category(*req.Category)
	}

	if req.Name != nil && name != product.Name {
		exists, err := s.productRepo.ExistsByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("checking product name: %w", err)
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A product with this name already exists")
		}
	}

	if err := product.Update(name, category); err != nil {
		return nil, err
	}
	if req.UnitPrice != nil {
		if err := product.UpdatePrice(valueobject.NewMoneyUSD(*req.UnitPrice)); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("saving product: %w", err)
	}

	response := ToProductResponse(product)
	return &response, nil
}

// UpdateStock applies a stock movement to a product and appends the audit
// record, both in one transaction.
func (s *ProductService) UpdateStock(ctx context.Context, id uuid.UUID, req UpdateStockRequest) (*ProductResponse, error) {
	var (
		response ProductResponse
		moved    *catalog.Product
	)
	err := s.txScope.Execute(ctx, func(repos appord.TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		movement, err := product.ApplyMovement(catalog.MovementType(req.MovementType), req.Quantity, req.Reason)
		if err != nil {
			return err
		}

		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return fmt.Errorf("saving product: %w", err)
		}
		if err := repos.MovementRepo().Save(ctx, movement); err != nil {
			return fmt.Errorf("saving stock movement: %w", err)
		}

		response = ToProductResponse(product)
		moved = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	appord.PublishEvents(ctx, s.eventPublisher, moved)
	return &response, nil
}

// ListMovements returns the movement history of a product
func (s *ProductService) ListMovements(ctx context.Context, productID uuid.UUID, page int) ([]StockMovementResponse, int64, error) {
	pagination := shared.DefaultFilter()
	if page > 0 {
		pagination.Page = page
	}

	movements, err := s.movementRepo.FindByProduct(ctx, productID, pagination)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]StockMovementResponse, 0, len(movements.Items))
	for _, movement := range movements.Items {
		responses = append(responses, ToStockMovementResponse(movement))
	}
	return responses, movements.Total, nil
}

// Delete removes a product. Products referenced by order items keep their
// snapshots; only the catalog row is removed.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

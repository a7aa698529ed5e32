package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookshop/backend/internal/domain/catalog"
	"github.com/bookshop/backend/internal/domain/order"
	"github.com/bookshop/backend/internal/domain/partner"
	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ValidationService aggregates stock and order-data validation. It only
// reads; all checks run to completion and failures accumulate so the
// caller sees every problem at once.
type ValidationService struct {
	clientRepo  partner.ClientRepository
	productRepo catalog.ProductRepository
}

// NewValidationService creates a new ValidationService
func NewValidationService(clientRepo partner.ClientRepository, productRepo catalog.ProductRepository) *ValidationService {
	return &ValidationService{
		clientRepo:  clientRepo,
		productRepo: productRepo,
	}
}

// ValidateStock checks every requested line against current availability.
// A missing product, a non-positive quantity, and insufficient stock each
// contribute their own message.
func (s *ValidationService) ValidateStock(ctx context.Context, items []CreateOrderItemInput) (*shared.ValidationResult, error) {
	result := shared.NewValidationResult()

	for _, item := range items {
		if item.Quantity <= 0 {
			result.AddError(fmt.Sprintf("Quantity for product %s must be positive", item.ProductID))
		}

		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if isNotFound(err) {
				result.AddError(fmt.Sprintf("Product %s does not exist", item.ProductID))
				continue
			}
			return nil, fmt.Errorf("looking up product %s: %w", item.ProductID, err)
		}

		if item.Quantity > 0 && !product.CanFulfill(item.Quantity) {
			result.AddError(fmt.Sprintf("Insufficient stock for %q: requested %d, available %d",
				product.Name, item.Quantity, product.AvailableQuantity))
		}
	}

	return result, nil
}

// ValidateOrderData runs the full pre-composition validation pass: client
// existence, non-empty items, a known payment method, then the stock pass.
func (s *ValidationService) ValidateOrderData(ctx context.Context, clientID uuid.UUID, items []CreateOrderItemInput, method order.PaymentMethod) (*shared.ValidationResult, error) {
	result := shared.NewValidationResult()

	if clientID == uuid.Nil {
		result.AddError("Client is required")
	} else {
		exists, err := s.clientRepo.ExistsByID(ctx, clientID)
		if err != nil {
			return nil, fmt.Errorf("looking up client %s: %w", clientID, err)
		}
		if !exists {
			result.AddError(fmt.Sprintf("Client %s does not exist", clientID))
		}
	}

	if len(items) == 0 {
		result.AddError("Order must contain at least one item")
	}

	if !method.IsValid() {
		result.AddError(fmt.Sprintf("Unknown payment method %q", method))
	}

	stockResult, err := s.ValidateStock(ctx, items)
	if err != nil {
		return nil, err
	}
	result.Merge(stockResult)

	return result, nil
}

func isNotFound(err error) bool {
	var domainErr *shared.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == shared.ErrNotFound.Code
}

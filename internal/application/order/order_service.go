package order

import (
	"context"
	"fmt"

	"github.com/bookshop/backend/internal/domain/order"
	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/bookshop/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// OrderService composes orders and handles the order lifecycle. Every
// multi-step write runs in a single transaction scope: either the order,
// its items, and the stock reservations all commit, or none do.
type OrderService struct {
	txScope        TransactionScope
	validator      *ValidationService
	orderRepo      order.OrderRepository
	eventPublisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(txScope TransactionScope, validator *ValidationService, orderRepo order.OrderRepository) *OrderService {
	return &OrderService{
		txScope:   txScope,
		validator: validator,
		orderRepo: orderRepo,
	}
}

// SetEventPublisher sets the publisher that receives domain events after
// each committed operation
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateOrderWithItems validates the request, snapshots product names and
// prices, persists the order with its items, and reserves stock for every
// line. Returns the new order's ID.
func (s *OrderService) CreateOrderWithItems(ctx context.Context, req CreateOrderRequest) (uuid.UUID, error) {
	method := order.PaymentMethod(req.PaymentMethod)

	result, err := s.validator.ValidateOrderData(ctx, req.ClientID, req.Items, method)
	if err != nil {
		return uuid.Nil, err
	}
	if err := result.AsError(); err != nil {
		return uuid.Nil, err
	}

	var created *order.Order
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		items := make([]order.OrderItem, 0, len(req.Items))
		for _, input := range req.Items {
			product, err := repos.ProductRepo().FindByID(ctx, input.ProductID)
			if err != nil {
				return err
			}

			item, err := order.NewOrderItem(product.ID, product.Name, input.Quantity,
				valueobject.NewMoneyUSD(product.UnitPrice))
			if err != nil {
				return err
			}
			items = append(items, *item)
		}

		newOrder, err := order.NewOrder(req.ClientID, items, method, req.Notes)
		if err != nil {
			return err
		}

		if err := repos.OrderRepo().Save(ctx, newOrder); err != nil {
			return fmt.Errorf("saving order: %w", err)
		}

		// Reserve after the order row exists so a reservation failure
		// rolls back the whole composition.
		for _, input := range req.Items {
			product, err := repos.ProductRepo().FindByID(ctx, input.ProductID)
			if err != nil {
				return err
			}
			if err := product.Reserve(input.Quantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().Save(ctx, product); err != nil {
				return fmt.Errorf("saving product %s: %w", product.ID, err)
			}
		}

		created = newOrder
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	PublishEvents(ctx, s.eventPublisher, created)
	return created.ID, nil
}

// GetByID retrieves an order with its items and payments
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByIDWithDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderListItemResponse, int64, error) {
	pagination := shared.DefaultFilter()
	if filter.Page > 0 {
		pagination.Page = filter.Page
	}
	if filter.PageSize != nil && *filter.PageSize > 0 {
		pagination.PageSize = *filter.PageSize
	}

	var (
		page shared.Paginated[*order.Order]
		err  error
	)
	switch {
	case filter.ClientID != nil:
		page, err = s.orderRepo.FindByClient(ctx, *filter.ClientID, pagination)
	case filter.Status != nil:
		status := order.Status(*filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATE", "Unknown order status")
		}
		page, err = s.orderRepo.FindByStatus(ctx, status, pagination)
	case filter.DateFrom != nil && filter.DateTo != nil:
		page, err = s.orderRepo.FindByDateRange(ctx, *filter.DateFrom, *filter.DateTo, pagination)
	default:
		page, err = s.orderRepo.FindAll(ctx, pagination)
	}
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderListItemResponse, 0, len(page.Items))
	for _, o := range page.Items {
		responses = append(responses, ToOrderListItemResponse(o))
	}
	return responses, page.Total, nil
}

// UpdateStatus applies an explicit status transition. Cancelling an order
// that still holds stock reservations releases them back to available.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, target order.Status) error {
	var updated *order.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByIDWithDetails(ctx, orderID)
		if err != nil {
			return err
		}

		wasHoldingStock := o.Status == order.StatusInProgress || o.Status == order.StatusPending

		if target == order.StatusCancelled {
			if err := o.Cancel(); err != nil {
				return err
			}
		} else {
			if err := o.UpdateStatus(target); err != nil {
				return err
			}
		}

		if target == order.StatusCancelled && wasHoldingStock {
			for _, item := range o.Items {
				product, err := repos.ProductRepo().FindByID(ctx, item.ProductID)
				if err != nil {
					return err
				}
				if err := product.ReleaseReservation(item.Quantity); err != nil {
					return err
				}
				if err := repos.ProductRepo().Save(ctx, product); err != nil {
					return fmt.Errorf("saving product %s: %w", product.ID, err)
				}
			}
		}

		if err := repos.OrderRepo().Save(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return err
	}

	PublishEvents(ctx, s.eventPublisher, updated)
	return nil
}

// Delete removes a cancelled order and its items. Orders in any other
// status cannot be deleted.
func (s *OrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !o.IsCancelled() {
			return shared.NewDomainError("INVALID_STATE", "Only cancelled orders can be deleted")
		}
		return repos.OrderRepo().Delete(ctx, orderID)
	})
}

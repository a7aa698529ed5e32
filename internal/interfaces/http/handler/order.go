package handler

import (
	orderapp "github.com/bookshop/backend/internal/application/order"
	"github.com/bookshop/backend/internal/domain/order"
	"github.com/bookshop/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles order lifecycle and payment API endpoints
type OrderHandler struct {
	BaseHandler
	orderService      *orderapp.OrderService
	paymentService    *orderapp.PaymentService
	validationService *orderapp.ValidationService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(
	orderService *orderapp.OrderService,
	paymentService *orderapp.PaymentService,
	validationService *orderapp.ValidationService,
) *OrderHandler {
	return &OrderHandler{
		orderService:      orderService,
		paymentService:    paymentService,
		validationService: validationService,
	}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.POST("/validate", h.Validate)
		orders.GET(":id", h.Get)
		orders.PUT(":id/status", h.UpdateStatus)
		orders.DELETE(":id", h.Delete)
		orders.POST(":id/payments", h.AddPayment)
		orders.GET(":id/payments", h.ListPayments)
	}
}

// Create composes a new order with stock reservation
func (h *OrderHandler) Create(c *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.FormatBindingError(err))
		return
	}

	orderID, err := h.orderService.CreateOrderWithItems(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	created, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, created)
}

// Validate runs the aggregated order validation without creating anything
func (h *OrderHandler) Validate(c *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.FormatBindingError(err))
		return
	}

	result, err := h.validationService.ValidateOrderData(
		c.Request.Context(), req.ClientID, req.Items, order.PaymentMethod(req.PaymentMethod))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orderapp.ValidationResponse{
		Valid:    result.Valid(),
		Messages: result.Messages,
	})
}

// Get returns a single order with items and payments
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	o, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, o)
}

// List returns a paginated list of orders
func (h *OrderHandler) List(c *gin.Context) {
	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, middleware.FormatBindingError(err))
		return
	}
	if filter.Page == 0 {
		filter.Page = 1
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	size := 20
	if filter.PageSize != nil {
		size = *filter.PageSize
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, size)
}

// UpdateStatus transitions an order to a new status. Cancelling an
// order releases its stock reservations.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req orderapp.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.FormatBindingError(err))
		return
	}

	target := order.Status(req.Status)
	if !target.IsValid() {
		h.BadRequest(c, "Invalid order status: "+req.Status)
		return
	}

	if err := h.orderService.UpdateStatus(c.Request.Context(), id, target); err != nil {
		h.HandleError(c, err)
		return
	}

	updated, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, updated)
}

// Delete removes a cancelled order
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddPayment records a payment against an order
func (h *OrderHandler) AddPayment(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req orderapp.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.FormatBindingError(err))
		return
	}

	if _, err := h.paymentService.AddPaymentToOrder(c.Request.Context(), id, req); err != nil {
		h.HandleError(c, err)
		return
	}

	updated, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, updated)
}

// ListPayments returns the payments recorded against an order
func (h *OrderHandler) ListPayments(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	payments, err := h.paymentService.ListByOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payments)
}

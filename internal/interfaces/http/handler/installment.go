package handler

import (
	"time"

	installmentapp "github.com/bookshop/backend/internal/application/installment"
	"github.com/bookshop/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// InstallmentHandler handles installment plan API endpoints
type InstallmentHandler struct {
	BaseHandler
	installmentService *installmentapp.InstallmentService
}

// NewInstallmentHandler creates a new InstallmentHandler
func NewInstallmentHandler(installmentService *installmentapp.InstallmentService) *InstallmentHandler {
	return &InstallmentHandler{installmentService: installmentService}
}

// RegisterRoutes registers installment plan routes under the order resource
func (h *InstallmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	plans := rg.Group("/orders/:id/installment-plan")
	{
		plans.POST("", h.Create)
		plans.GET("", h.Get)
		plans.GET("/schedule", h.Schedule)
		plans.GET("/overdue", h.Overdue)
		plans.DELETE("", h.Cancel)
	}
}

// Create creates an installment plan for an order
func (h *InstallmentHandler) Create(c *gin.Context) {
	orderID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req installmentapp.CreateInstallmentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.FormatBindingError(err))
		return
	}

	if _, err := h.installmentService.CreateInstallmentPlan(c.Request.Context(), orderID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	plan, err := h.installmentService.GetByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, plan)
}

// Get returns the installment plan of an order
func (h *InstallmentHandler) Get(c *gin.Context) {
	orderID, ok := h.parseID(c)
	if !ok {
		return
	}

	plan, err := h.installmentService.GetByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plan)
}

// Schedule returns the full payment schedule of an order's plan
func (h *InstallmentHandler) Schedule(c *gin.Context) {
	orderID, ok := h.parseID(c)
	if !ok {
		return
	}

	rows, err := h.installmentService.ListSchedule(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// Overdue returns the schedule rows overdue as of a given date.
// The as_of query parameter defaults to today.
func (h *InstallmentHandler) Overdue(c *gin.Context) {
	orderID, ok := h.parseID(c)
	if !ok {
		return
	}

	asOf := time.Now().UTC()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid as_of date, expected YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	rows, err := h.installmentService.ListOverdue(c.Request.Context(), orderID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// Cancel cancels the installment plan of an order
func (h *InstallmentHandler) Cancel(c *gin.Context) {
	orderID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.installmentService.CancelPlan(c.Request.Context(), orderID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

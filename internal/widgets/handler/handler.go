// Package handler exposes the admin HTTP endpoints for widget management.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quotewidget_backend/internal/widgets/service"
	"quotewidget_backend/internal/widgets/transport"
	"quotewidget_backend/platform/httpkit"
	"quotewidget_backend/platform/validator"
)

// Handler handles admin HTTP requests for widgets.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid widget ID"
)

// New creates a new widgets handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create creates a new widget in draft status.
// POST /api/v1/widgets
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateWidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	tenantID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	result, err := h.svc.Create(c.Request.Context(), tenantID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// List retrieves all widgets for the tenant.
// GET /api/v1/widgets
func (h *Handler) List(c *gin.Context) {
	tenantID, ok := mustGetTenantID(c)
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), tenantID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetByID retrieves one widget.
// GET /api/v1/widgets/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, tenantID, ok := mustGetWidgetScope(c)
	if !ok {
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), tenantID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Update updates the mutable widget fields.
// PUT /api/v1/widgets/:id
func (h *Handler) Update(c *gin.Context) {
	id, tenantID, ok := mustGetWidgetScope(c)
	if !ok {
		return
	}

	var req transport.UpdateWidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Update(c.Request.Context(), tenantID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SetStatus flips the widget lifecycle status.
// PATCH /api/v1/widgets/:id/status
func (h *Handler) SetStatus(c *gin.Context) {
	id, tenantID, ok := mustGetWidgetScope(c)
	if !ok {
		return
	}

	var req transport.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.SetStatus(c.Request.Context(), tenantID, id, req.Status)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete removes a widget and its dependent rows.
// DELETE /api/v1/widgets/:id
func (h *Handler) Delete(c *gin.Context) {
	id, tenantID, ok := mustGetWidgetScope(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), tenantID, id)) {
		return
	}
	httpkit.OK(c, gin.H{"deleted": true})
}

// ListSteps returns the explicit step rows.
// GET /api/v1/widgets/:id/steps
func (h *Handler) ListSteps(c *gin.Context) {
	id, tenantID, ok := mustGetWidgetScope(c)
	if !ok {
		return
	}

	result, err := h.svc.ListSteps(c.Request.Context(), tenantID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ReplaceSteps swaps the full explicit step set.
// PUT /api/v1/widgets/:id/steps
func (h *Handler) ReplaceSteps(c *gin.Context) {
	id, tenantID, ok := mustGetWidgetScope(c)
	if !ok {
		return
	}

	var req transport.ReplaceStepsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.ReplaceSteps(c.Request.Context(), tenantID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListPricingRules returns the pricing rules keyed per category.
// GET /api/v1/widgets/:id/pricing
func (h *Handler) ListPricingRules(c *gin.Context) {
	id, tenantID, ok := mustGetWidgetScope(c)
	if !ok {
		return
	}

	result, err := h.svc.ListPricingRules(c.Request.Context(), tenantID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpsertPricingRule writes the rules object for one category.
// PUT /api/v1/widgets/:id/pricing
func (h *Handler) UpsertPricingRule(c *gin.Context) {
	id, tenantID, ok := mustGetWidgetScope(c)
	if !ok {
		return
	}

	var req transport.UpsertPricingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpsertPricingRule(c.Request.Context(), tenantID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Preview assembles the configuration document regardless of status.
// GET /api/v1/widgets/:id/preview
func (h *Handler) Preview(c *gin.Context) {
	id, tenantID, ok := mustGetWidgetScope(c)
	if !ok {
		return
	}

	result, err := h.svc.Preview(c.Request.Context(), tenantID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func mustGetWidgetScope(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.UUID{}, uuid.UUID{}, false
	}
	tenantID, ok := mustGetTenantID(c)
	if !ok {
		return uuid.UUID{}, uuid.UUID{}, false
	}
	return id, tenantID, true
}

func mustGetTenantID(c *gin.Context) (uuid.UUID, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.UUID{}, false
	}
	tenantID := identity.TenantID()
	if tenantID == nil {
		httpkit.Error(c, http.StatusBadRequest, "tenant ID is required", nil)
		return uuid.UUID{}, false
	}
	return *tenantID, true
}

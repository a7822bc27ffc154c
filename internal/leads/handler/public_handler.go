// Package handler exposes the HTTP endpoints for lead capture and admin.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quotewidget_backend/internal/leads/service"
	"quotewidget_backend/internal/leads/transport"
	"quotewidget_backend/platform/httpkit"
	"quotewidget_backend/platform/validator"
)

// PublicHandler serves the unauthenticated lead-submission endpoint.
type PublicHandler struct {
	svc *service.Service
	val *validator.Validator
}

// NewPublic creates a new public leads handler.
func NewPublic(svc *service.Service, val *validator.Validator) *PublicHandler {
	return &PublicHandler{svc: svc, val: val}
}

// Submit captures a lead for a published widget.
// POST /api/v1/public/widgets/:key/leads
func (h *PublicHandler) Submit(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		httpkit.Error(c, http.StatusBadRequest, "widget key is required", nil)
		return
	}

	var req transport.SubmitLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.svc.Capture(c.Request.Context(), key, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

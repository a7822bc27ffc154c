package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quotewidget_backend/internal/widgets/service"
	"quotewidget_backend/platform/httpkit"
)

// PublicHandler serves the unauthenticated widget endpoints consumed by
// the embedded widget script.
type PublicHandler struct {
	svc *service.Service
}

// NewPublic creates a new public widgets handler.
func NewPublic(svc *service.Service) *PublicHandler {
	return &PublicHandler{svc: svc}
}

// GetConfiguration returns the full runtime configuration for a published widget.
// GET /api/v1/public/widgets/:key/config
func (h *PublicHandler) GetConfiguration(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		httpkit.Error(c, http.StatusBadRequest, "widget key is required", nil)
		return
	}

	result, err := h.svc.GetPublicConfiguration(c.Request.Context(), key)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

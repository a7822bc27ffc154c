package maps

import (
	"net/http"

	"quotewidget_backend/platform/apperr"
	"quotewidget_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the maps endpoints consumed by the widget renderer.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// LookupAddress handles GET /api/v1/public/maps/address-lookup?q=...
func (h *Handler) LookupAddress(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "query 'q' is required (min 3 chars)", nil)
		return
	}

	results, err := h.svc.SearchAddress(c.Request.Context(), req.Query)
	if err != nil {
		httpkit.Error(c, http.StatusBadGateway, "address lookup service unavailable", nil)
		return
	}

	httpkit.OK(c, results)
}

// EstimateDistance handles GET /api/v1/public/maps/distance?from=...&to=...
func (h *Handler) EstimateDistance(c *gin.Context) {
	var req DistanceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "'from' and 'to' are required (min 3 chars)", nil)
		return
	}

	estimate, err := h.svc.EstimateDistance(c.Request.Context(), req.From, req.To)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			httpkit.Error(c, http.StatusNotFound, "address could not be located", nil)
			return
		}
		httpkit.Error(c, http.StatusBadGateway, "distance service unavailable", nil)
		return
	}

	httpkit.OK(c, estimate)
}

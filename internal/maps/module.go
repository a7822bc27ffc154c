package maps

import (
	apphttp "quotewidget_backend/internal/http"
	"quotewidget_backend/platform/logger"
)

// Module wires the address lookup and distance estimate HTTP routes.
// These back the widget's address and distance-calculation steps, so
// they sit on the public group.
type Module struct {
	handler *Handler
}

func NewModule(log *logger.Logger) *Module {
	svc := NewService(log)
	h := NewHandler(svc)
	return &Module{handler: h}
}

func (m *Module) Name() string {
	return "maps"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Public.Group("/maps")
	group.GET("/address-lookup", m.handler.LookupAddress)
	group.GET("/distance", m.handler.EstimateDistance)
}

var _ apphttp.Module = (*Module)(nil)

// Package widgets wires the widget bounded context: builder CRUD for
// admins plus the public configuration endpoint the embed script loads.
package widgets

import (
	internalhttp "quotewidget_backend/internal/http"
	"quotewidget_backend/internal/widgets/handler"
	"quotewidget_backend/internal/widgets/repository"
	"quotewidget_backend/internal/widgets/service"
	"quotewidget_backend/platform/events"
	"quotewidget_backend/platform/logger"
	"quotewidget_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module bundles the widgets feature for registration with the HTTP server.
type Module struct {
	svc           *service.Service
	handler       *handler.Handler
	publicHandler *handler.PublicHandler
}

// NewModule constructs the widgets module with its full dependency chain.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)

	return &Module{
		svc:           svc,
		handler:       handler.New(svc, val),
		publicHandler: handler.NewPublic(svc),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "widgets" }

// Service exposes the widget service for modules that resolve widgets by
// key, such as lead capture.
func (m *Module) Service() *service.Service { return m.svc }

// RegisterRoutes mounts the widget routes.
func (m *Module) RegisterRoutes(ctx *internalhttp.RouterContext) {
	// Embed script endpoint. No auth; published widgets only.
	ctx.Public.GET("/widgets/:key/config", m.publicHandler.GetConfiguration)

	admin := ctx.Protected.Group("/widgets")
	{
		admin.POST("", m.handler.Create)
		admin.GET("", m.handler.List)
		admin.GET("/:id", m.handler.GetByID)
		admin.PUT("/:id", m.handler.Update)
		admin.PATCH("/:id/status", m.handler.SetStatus)
		admin.DELETE("/:id", m.handler.Delete)
		admin.GET("/:id/steps", m.handler.ListSteps)
		admin.PUT("/:id/steps", m.handler.ReplaceSteps)
		admin.GET("/:id/pricing", m.handler.ListPricingRules)
		admin.PUT("/:id/pricing", m.handler.UpsertPricingRule)
		admin.GET("/:id/preview", m.handler.Preview)
	}
}

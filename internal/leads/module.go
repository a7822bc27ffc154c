// Package leads wires the lead bounded context: the public capture
// endpoint plus the admin pipeline views.
package leads

import (
	"quotewidget_backend/internal/events"
	internalhttp "quotewidget_backend/internal/http"
	"quotewidget_backend/internal/leads/handler"
	"quotewidget_backend/internal/leads/repository"
	"quotewidget_backend/internal/leads/service"
	"quotewidget_backend/platform/logger"
	"quotewidget_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module bundles the leads feature for registration with the HTTP server.
type Module struct {
	svc           *service.Service
	handler       *handler.Handler
	publicHandler *handler.PublicHandler
}

// NewModule constructs the leads module. The forwarders slice carries only
// the configured adapters, in the order they should be called.
func NewModule(
	pool *pgxpool.Pool,
	widgets service.WidgetResolver,
	notifier service.Notifier,
	forwarders []service.Forwarder,
	bus events.Bus,
	val *validator.Validator,
	log *logger.Logger,
) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, widgets, notifier, forwarders, bus, log)

	return &Module{
		svc:           svc,
		handler:       handler.New(svc, val),
		publicHandler: handler.NewPublic(svc, val),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "leads" }

// RegisterRoutes mounts the lead routes.
func (m *Module) RegisterRoutes(ctx *internalhttp.RouterContext) {
	// End-user submissions get the stricter per-IP limiter on top of the
	// public group's baseline.
	ctx.Public.POST("/widgets/:key/leads", ctx.SubmitRateLimiter.RateLimit(), m.publicHandler.Submit)

	admin := ctx.Protected.Group("/leads")
	{
		admin.GET("", m.handler.List)
		admin.GET("/:id", m.handler.GetByID)
		admin.PATCH("/:id/status", m.handler.SetStatus)
		admin.DELETE("/:id", m.handler.Delete)
	}
}

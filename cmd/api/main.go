package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quotewidget_backend/internal/email"
	"quotewidget_backend/internal/events"
	apphttp "quotewidget_backend/internal/http"
	"quotewidget_backend/internal/http/router"
	"quotewidget_backend/internal/integrations/gravityforms"
	"quotewidget_backend/internal/integrations/smartmoving"
	"quotewidget_backend/internal/leads"
	leadsvc "quotewidget_backend/internal/leads/service"
	"quotewidget_backend/internal/maps"
	"quotewidget_backend/internal/widgets"
	"quotewidget_backend/platform/config"
	"quotewidget_backend/platform/db"
	"quotewidget_backend/platform/logger"
	"quotewidget_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	widgetsModule := widgets.NewModule(pool, eventBus, val, log)

	// Forwarding adapters are wired only when configured; order is the
	// order they are called per capture.
	var forwarders []leadsvc.Forwarder
	if cfg.IsGravityFormsEnabled() {
		forwarders = append(forwarders, gravityforms.NewClient(cfg, log))
		log.Info("forwarding adapter enabled", "adapter", gravityforms.AdapterName)
	}
	if cfg.IsSmartMovingEnabled() {
		forwarders = append(forwarders, smartmoving.NewClient(cfg, log))
		log.Info("forwarding adapter enabled", "adapter", smartmoving.AdapterName)
	}

	var notifier leadsvc.Notifier
	if leadNotifier := email.NewLeadNotifier(sender, cfg); leadNotifier != nil {
		notifier = leadNotifier
	} else {
		log.Warn("LEAD_NOTIFY_ADDRESS not configured; lead notification disabled")
	}

	leadsModule := leads.NewModule(pool, widgetsModule.Service(), notifier, forwarders, eventBus, val, log)
	mapsModule := maps.NewModule(log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			widgetsModule,
			leadsModule,
			mapsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}

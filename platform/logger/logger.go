// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Context key types for storing values in context
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// WidgetKeyKey is the context key for the public widget key
	WidgetKeyKey contextKey = "widget_key"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContext returns a logger with context values extracted.
// Supports request_id and widget_key from context.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	newLogger := l

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		newLogger = &Logger{
			Logger: newLogger.With(slog.String("request_id", requestID)),
		}
	}

	if widgetKey, ok := ctx.Value(WidgetKeyKey).(string); ok && widgetKey != "" {
		newLogger = &Logger{
			Logger: newLogger.With(slog.String("widget_key", widgetKey)),
		}
	}

	return newLogger
}

// WithWidget returns a logger bound to a public widget key.
func (l *Logger) WithWidget(widgetKey string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("widget_key", widgetKey)),
	}
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// HTTPError logs an HTTP error
func (l *Logger) HTTPError(method, path string, status int, err error, clientIP string) {
	l.Error("http_error",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.String("error", err.Error()),
		slog.String("client_ip", clientIP),
	)
}

// ForwardingEvent logs the outcome of a lead-forwarding adapter call.
// Failed forwards carry the full reason so the payload can be replayed by hand.
func (l *Logger) ForwardingEvent(adapter, widgetKey string, submitted bool, reason string) {
	if submitted {
		l.Info("lead_forwarding",
			slog.String("adapter", adapter),
			slog.String("widget_key", widgetKey),
			slog.Bool("submitted", true),
		)
		return
	}
	l.Warn("lead_forwarding",
		slog.String("adapter", adapter),
		slog.String("widget_key", widgetKey),
		slog.Bool("submitted", false),
		slog.String("reason", reason),
	)
}

// DatabaseError logs database errors
func (l *Logger) DatabaseError(operation string, err error) {
	l.Error("database_error",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// RateLimitExceeded logs rate limit events
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}

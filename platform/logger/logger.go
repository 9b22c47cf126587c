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
// Supports request_id from context.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		return l.WithRequestID(requestID)
	}

	return l
}

// WithRequestID returns a logger with request ID
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("request_id", requestID)),
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

// ValidationFailure logs a discarded trade row. Only failure kinds that
// represent upstream data-quality problems (missing fields, bad dates) are
// routed here; high-volume kinds are counted, not logged.
func (l *Logger) ValidationFailure(kind string, missingFields []string, row string) {
	attrs := []any{
		slog.String("kind", kind),
		slog.String("row", row),
	}
	if len(missingFields) > 0 {
		attrs = append(attrs, slog.Any("missing_fields", missingFields))
	}
	l.Error("trade_discarded", attrs...)
}

// MissingProduct logs a product id that has no catalog entry.
// Callers are responsible for deduplication; this emits unconditionally.
func (l *Logger) MissingProduct(productID int64, row string) {
	l.Warn("missing_product_mapping",
		slog.Int64("product_id", productID),
		slog.String("row", row),
	)
}

// CatalogEvent logs catalog lifecycle events (load, reload, swap).
func (l *Logger) CatalogEvent(event string, size int, args ...any) {
	attrs := append([]any{slog.Int("size", size)}, args...)
	l.Info("catalog_"+event, attrs...)
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

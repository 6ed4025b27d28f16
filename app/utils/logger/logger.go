// Package logger builds the slog loggers used across the service.
// Production gets JSON on stdout, development gets the text handler,
// and every logger carries the service name so aggregated logs stay
// attributable.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

const serviceName = "session-service"

// New returns a logger writing to stdout at the given level.
func New(level string) (*slog.Logger, error) {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter returns a logger writing to w. Tests pass a buffer here
// to assert on output.
func NewWithWriter(level string, w io.Writer) (*slog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level: lvl,
		// Source locations are only worth the cost when debugging.
		AddSource:   lvl == slog.LevelDebug,
		ReplaceAttr: rfc3339Time,
	}

	var handler slog.Handler
	if isProduction() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("service", serviceName), nil
}

// WithComponent tags a logger with the subsystem emitting the records.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}

// WithUser tags a logger with the acting identity.
func WithUser(logger *slog.Logger, identityID string) *slog.Logger {
	return logger.With("identity_id", identityID)
}

// WithTenant tags a logger with the tenant a request is scoped to.
func WithTenant(logger *slog.Logger, tenantID string) *slog.Logger {
	return logger.With("tenant_id", tenantID)
}

// WithRequest tags a logger with the request it serves.
func WithRequest(logger *slog.Logger, requestID, method, path string) *slog.Logger {
	return logger.With(
		"request_id", requestID,
		"method", method,
		"path", path,
	)
}

// LogError records err under the conventional "error" key.
func LogError(logger *slog.Logger, err error, msg string, keysAndValues ...interface{}) {
	args := append([]interface{}{"error", err}, keysAndValues...)
	logger.Error(msg, args...)
}

// LogDuration records how long an operation took, measured from start.
func LogDuration(logger *slog.Logger, start time.Time, operation string, keysAndValues ...interface{}) {
	args := append([]interface{}{
		"operation", operation,
		"duration_ms", time.Since(start).Milliseconds(),
	}, keysAndValues...)
	logger.Info("operation completed", args...)
}

func rfc3339Time(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		if t, ok := a.Value.Any().(time.Time); ok {
			a.Value = slog.StringValue(t.Format(time.RFC3339))
		}
	}
	return a
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %q", level)
	}
}

func isProduction() bool {
	env := strings.ToLower(os.Getenv("GO_ENV"))
	return env == "production" || env == "prod"
}

package validation

import (
	"context"

	"github.com/CentsibleLabs/lib-validation/validation/log"
)

type loggerContextKey string

// LoggerContextKey is the context key used to store the injected logger.
var LoggerContextKey = loggerContextKey("logger_context")

// NewLoggerFromContext extracts the Logger carried by the context.
// It falls back to a no-op logger so callers never need a nil check.
//
//nolint:ireturn
func NewLoggerFromContext(ctx context.Context) log.Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(log.Logger); ok && logger != nil {
		return logger
	}

	return &log.NopLogger{}
}

// ContextWithLogger returns a context carrying the given logger.
func ContextWithLogger(ctx context.Context, logger log.Logger) context.Context {
	return context.WithValue(ctx, LoggerContextKey, logger)
}

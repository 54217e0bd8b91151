package logger

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is a private type to avoid collisions with other packages' context keys.
type contextKey struct{}

// loggerKey is the context key under which the scoped logger is stored.
//
//nolint:gochecknoglobals // Context key must be a package-level singleton.
var loggerKey = contextKey{}

// ToContext returns a context carrying the provided logger.
func ToContext(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the scoped logger from the context,
// falling back to the global logger if none is set.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if l, ok := ctx.Value(loggerKey).(*zap.SugaredLogger); ok {
		return l
	}

	return global
}

// WithName returns a context whose logger is named after the provided component.
func WithName(ctx context.Context, name string) context.Context {
	return ToContext(ctx, FromContext(ctx).Named(name))
}

// WithKV returns a context whose logger carries the provided key-value pair.
func WithKV(ctx context.Context, key string, value any) context.Context {
	return ToContext(ctx, FromContext(ctx).With(key, value))
}

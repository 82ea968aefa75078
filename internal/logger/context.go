package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// NewContext returns a context carrying the logger.
func NewContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext extracts the logger stored in the context.
// Returns zap.NewNop() if none is present.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

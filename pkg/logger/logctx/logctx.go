// Package logctx logs through the root logger with key-values carried by the context.
package logctx

import (
	"context"

	"github.com/nguyentranbao-ct/storefront/pkg/logger"
)

type ctxKey struct{}

var defKey = ctxKey{}

// base is resolved per call so it follows logger.Init.
func base() *logger.Logger {
	return logger.MustNamed("ctx")
}

// WithFields returns a context whose log lines carry the given key-values.
func WithFields(ctx context.Context, keysAndValues ...any) context.Context {
	fields := append(Fields(ctx), keysAndValues...)
	return context.WithValue(ctx, defKey, fields)
}

func Fields(ctx context.Context) []any {
	fields, _ := ctx.Value(defKey).([]any)
	out := make([]any, len(fields))
	copy(out, fields)
	return out
}

func Debugw(ctx context.Context, msg string, keysAndValues ...any) {
	base().Debugw(msg, append(Fields(ctx), keysAndValues...)...)
}

func Infow(ctx context.Context, msg string, keysAndValues ...any) {
	base().Infow(msg, append(Fields(ctx), keysAndValues...)...)
}

func Warnw(ctx context.Context, msg string, keysAndValues ...any) {
	base().Warnw(msg, append(Fields(ctx), keysAndValues...)...)
}

func Errorw(ctx context.Context, msg string, keysAndValues ...any) {
	base().Errorw(msg, append(Fields(ctx), keysAndValues...)...)
}

func Errorf(ctx context.Context, template string, args ...any) {
	base().With(Fields(ctx)...).Errorf(template, args...)
}

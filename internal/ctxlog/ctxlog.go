// Package ctxlog carries the run's *slog.Logger through context.Context, so
// the literal loader and its translators log with the attributes the app and
// the loader attach (the file being read, the record being translated)
// without threading a logger through every call.
package ctxlog

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// WithLogger returns a copy of ctx that carries logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger carried by ctx, or slog.Default() when there
// is none. Library code such as the loader may run without an app around it.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// With returns a copy of ctx whose logger adds args to every record, e.g.
// ctxlog.With(ctx, "file", path) while one literal file is loaded.
func With(ctx context.Context, args ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(args...))
}

package logging

import (
	"context"
	"errors"
	"log/slog"
)

// MultiHandler tees records to the console handler and the rolling file.
// Each sink filters by its own level; a failing sink does not stop the rest.
type MultiHandler []slog.Handler

// NewMultiHandler tees to every non-nil handler.
func NewMultiHandler(handlers ...slog.Handler) MultiHandler {
	sinks := make(MultiHandler, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			sinks = append(sinks, h)
		}
	}

	return sinks
}

func (m MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m {
		if h.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (m MultiHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler passes records by value
	var errs []error

	for _, h := range m {
		if !h.Enabled(ctx, r.Level) {
			continue
		}

		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (m MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (m MultiHandler) WithGroup(name string) slog.Handler {
	return m.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (m MultiHandler) each(fn func(slog.Handler) slog.Handler) MultiHandler {
	out := make(MultiHandler, len(m))
	for i, h := range m {
		out[i] = fn(h)
	}

	return out
}

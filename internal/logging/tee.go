package logging

import (
	"context"
	"log/slog"

	"github.com/thoreinstein/mcpsync/internal/errors"
)

// Tee fans records out to several handlers, e.g. the terminal and the
// --log-file JSON handler.
type Tee struct {
	handlers []slog.Handler
}

// NewTee returns a handler writing to every h. Each handler keeps its own
// level.
func NewTee(h ...slog.Handler) *Tee {
	return &Tee{handlers: h}
}

// Enabled reports whether any handler wants level.
func (t *Tee) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle passes a copy of r to each enabled handler and joins their errors.
func (t *Tee) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithAttrs applies attrs to every handler.
func (t *Tee) WithAttrs(attrs []slog.Attr) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

// WithGroup applies name to every handler.
func (t *Tee) WithGroup(name string) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (t *Tee) each(fn func(slog.Handler) slog.Handler) *Tee {
	hs := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		hs[i] = fn(h)
	}
	return &Tee{handlers: hs}
}

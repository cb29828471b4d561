// Package logging provides a slog handler that mirrors WARN and ERROR
// records into the store-backed event log so operational problems survive
// process restarts.
package logging

import (
	"context"
	"log/slog"

	"github.com/azure-estates/estates-go/internal/model"
	"github.com/azure-estates/estates-go/internal/store"
)

// EventLogHandler wraps another handler and also appends records at or
// above its threshold to the persisted event log.
type EventLogHandler struct {
	inner slog.Handler
	store *store.Store
	level slog.Level
}

// NewEventLogHandler creates a handler that mirrors WARN and above.
func NewEventLogHandler(inner slog.Handler, st *store.Store) *EventLogHandler {
	return &EventLogHandler{
		inner: inner,
		store: st,
		level: slog.LevelWarn,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.appendEvent(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{
		inner: h.inner.WithAttrs(attrs),
		store: h.store,
		level: h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{
		inner: h.inner.WithGroup(name),
		store: h.store,
		level: h.level,
	}
}

func (h *EventLogHandler) appendEvent(r slog.Record) {
	level := model.EventLevelWarning
	if r.Level >= slog.LevelError {
		level = model.EventLevelError
	}

	var path string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "path" {
			path = a.Value.String()
			return false
		}
		return true
	})

	// Background context so the event lands even when the request
	// context is already cancelled. AppendEvent never logs, which keeps
	// this handler from recursing into itself.
	_ = h.store.AppendEvent(context.Background(), model.Event{
		Level:     level,
		Message:   r.Message,
		Path:      path,
		Timestamp: r.Time.UnixMilli(),
	})
}

var _ slog.Handler = (*EventLogHandler)(nil)

package trace

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see tree changes in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("kind", event.Kind.String()),
		slog.String("event", event.Name),
	}

	if len(event.Path) > 0 {
		attrs = append(attrs, slog.String("path", event.Path.String()))
	}
	if event.Key != "" {
		attrs = append(attrs, slog.String("key", event.Key))
	}
	if event.NewKey != "" {
		attrs = append(attrs, slog.String("new_key", event.NewKey))
	}
	if len(event.Keys) > 0 {
		attrs = append(attrs, slog.Any("keys", event.Keys))
	}
	if event.Position != nil {
		attrs = append(attrs, slog.Int("position", *event.Position))
	}
	if event.Value != nil {
		attrs = append(attrs, slog.Any("value", event.Value))
	}
	if event.Previous != nil {
		attrs = append(attrs, slog.Any("previous", event.Previous))
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "trace", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)

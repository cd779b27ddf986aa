package trace

import (
	"github.com/rs/zerolog"
)

// ZerologAdapter writes trace events to a zerolog.Logger at Debug level.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter creates a ZerologAdapter.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// Log writes the event.
func (a *ZerologAdapter) Log(event Event) {
	e := a.logger.Debug().
		Time("ts", event.Timestamp).
		Str("session_id", event.SessionID).
		Str("kind", event.Kind.String()).
		Str("event", event.Name)

	if len(event.Path) > 0 {
		e = e.Str("path", event.Path.String())
	}
	if event.Key != "" {
		e = e.Str("key", event.Key)
	}
	if event.NewKey != "" {
		e = e.Str("new_key", event.NewKey)
	}
	if len(event.Keys) > 0 {
		e = e.Strs("keys", event.Keys)
	}
	if event.Position != nil {
		e = e.Int("position", *event.Position)
	}
	if event.Value != nil {
		e = e.Interface("value", event.Value)
	}
	if event.Previous != nil {
		e = e.Interface("previous", event.Previous)
	}

	e.Msg("trace")
}

// Compile-time interface satisfaction check.
var _ Logger = (*ZerologAdapter)(nil)

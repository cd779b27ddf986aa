package trace

import (
	"testing"
	"time"
)

// mockLogger records events for testing
type mockLogger struct {
	events []Event
}

func (m *mockLogger) Log(event Event) {
	m.events = append(m.events, event)
}

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	logger := NoopLogger{}

	pos := 2
	logger.Log(Event{
		Timestamp: time.Now(),
		SessionID: "session",
		Kind:      "object",
		Name:      "add",
		Path:      []string{"a"},
		Value:     map[string]any{"b": 1.0},
		Position:  &pos,
	})
}

func TestNoopLoggerIsZeroValue(t *testing.T) {
	var logger NoopLogger
	logger.Log(Event{})
}

func TestMultiLoggerCallsAll(t *testing.T) {
	mock1 := &mockLogger{}
	mock2 := &mockLogger{}
	mock3 := &mockLogger{}

	multi := NewMultiLogger(mock1, mock2, mock3)

	multi.Log(Event{Timestamp: time.Now(), SessionID: "session-123", Name: "change"})

	for i, mock := range []*mockLogger{mock1, mock2, mock3} {
		if len(mock.events) != 1 {
			t.Errorf("logger %d: got %d events, want 1", i, len(mock.events))
			continue
		}
		if mock.events[0].SessionID != "session-123" {
			t.Errorf("logger %d: SessionID = %q, want %q", i, mock.events[0].SessionID, "session-123")
		}
	}
}

func TestMultiLoggerSkipsNil(t *testing.T) {
	mock := &mockLogger{}
	multi := NewMultiLogger(nil, mock, nil)

	multi.Log(Event{Name: "add"})

	if len(mock.events) != 1 {
		t.Fatalf("got %d events, want 1", len(mock.events))
	}
}

func TestMultiLoggerEmptyList(t *testing.T) {
	multi := NewMultiLogger()

	// Should not panic with empty logger list
	multi.Log(Event{Timestamp: time.Now(), Name: "add"})
}

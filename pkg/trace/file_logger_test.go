package trace

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestFileLoggerCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.atrace")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("trace file was not created")
	}
}

func TestFileLoggerWritesCBOR(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.atrace")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	event := Event{
		Timestamp: time.Now(),
		SessionID: "session-123",
		Kind:      "object",
		Name:      "add",
		Path:      []string{"x2"},
		Value:     5.0,
	}

	logger.Log(event)
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read trace file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("trace file is empty")
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}

	if decoded.SessionID != event.SessionID {
		t.Errorf("SessionID: got %q, want %q", decoded.SessionID, event.SessionID)
	}
	if decoded.Value != 5.0 {
		t.Errorf("Value: got %v, want %v", decoded.Value, 5.0)
	}
}

func TestFileLoggerAppends(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.atrace")

	logger1, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger1.Log(Event{Timestamp: time.Now(), SessionID: "session-1", Name: "add"})
	logger1.Close()

	logger2, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger second open failed: %v", err)
	}
	logger2.Log(Event{Timestamp: time.Now(), SessionID: "session-2", Name: "remove"})
	logger2.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	events, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].SessionID != "session-1" {
		t.Errorf("first event SessionID: got %q, want %q", events[0].SessionID, "session-1")
	}
	if events[1].SessionID != "session-2" {
		t.Errorf("second event SessionID: got %q, want %q", events[1].SessionID, "session-2")
	}
}

func TestFileLoggerThreadSafe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.atrace")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	const numGoroutines = 10
	const eventsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < eventsPerGoroutine; j++ {
				logger.Log(Event{
					Timestamp: time.Now(),
					SessionID: "session-" + string(rune('A'+id)),
					Name:      "change",
				})
			}
		}(i)
	}

	wg.Wait()
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	events, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	if want := numGoroutines * eventsPerGoroutine; len(events) != want {
		t.Errorf("event count: got %d, want %d", len(events), want)
	}
}

func TestFileLoggerClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.atrace")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	logger.Log(Event{Timestamp: time.Now(), Name: "add"})

	if err := logger.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	// Double close should not panic or error
	if err := logger.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	// Logging after close should not panic
	logger.Log(Event{Timestamp: time.Now(), Name: "remove"})
}

func TestFileLoggerInvalidPath(t *testing.T) {
	_, err := NewFileLogger(filepath.Join(t.TempDir(), "missing", "test.atrace"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestFileLoggerCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counts"+FileExtension)

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	if logger.Path() != path {
		t.Errorf("Path: got %q, want %q", logger.Path(), path)
	}

	logger.Log(Event{Timestamp: time.Now(), Name: "add"})
	logger.Log(Event{Timestamp: time.Now(), Name: "change", Value: make(chan int)})
	logger.Close()
	logger.Log(Event{Timestamp: time.Now(), Name: "remove"})

	written, dropped := logger.Counts()
	if written != 1 || dropped != 2 {
		t.Errorf("Counts: got (%d, %d), want (1, 2)", written, dropped)
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	events, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("unencodable event corrupted the file: %v", err)
	}
	if len(events) != 1 || events[0].Name != "add" {
		t.Errorf("events: got %+v", events)
	}
}

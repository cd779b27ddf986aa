package trace

import (
	"errors"
	"os"
	"sync"
)

// FileExtension is the conventional suffix of trace files.
const FileExtension = ".atrace"

// FileLogger appends Events to a trace file. A trace file is a CBOR
// sequence: one encoded Event after another with no framing, so a file
// written by several sessions is still read back in order by Reader.
type FileLogger struct {
	path string

	mu      sync.Mutex
	file    *os.File
	closed  bool
	written uint64
	dropped uint64
}

// NewFileLogger opens the trace file at path, creating it if needed.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{path: path, file: f}, nil
}

// Path returns the trace file path.
func (l *FileLogger) Path() string {
	return l.path
}

// Log appends event. An event that cannot be encoded or written, or that
// arrives after Close, is counted as dropped; the mutation that produced it
// is never affected.
func (l *FileLogger) Log(event Event) {
	data, err := EncodeEvent(event)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err != nil || l.closed {
		l.dropped++
		return
	}
	// Each event is written whole so a failed write cannot split an item.
	if _, err := l.file.Write(data); err != nil {
		l.dropped++
		return
	}
	l.written++
}

// Counts returns the number of events written and dropped so far.
func (l *FileLogger) Counts() (written, dropped uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.written, l.dropped
}

// Close flushes the file to disk and closes it. Further calls return nil.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	return errors.Join(l.file.Sync(), l.file.Close())
}

var _ Logger = (*FileLogger)(nil)

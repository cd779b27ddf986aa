package trace

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/anore/anore-go/pkg/model"
	"github.com/fxamacker/cbor/v2"
)

// Filter specifies criteria for selecting trace events.
// Empty/nil fields match all events for that criterion.
type Filter struct {
	// SessionID filters by exact session ID match.
	SessionID string

	// Kind filters by the type of the emitting node.
	Kind model.Type

	// Name filters by event name.
	Name string

	// PathPrefix keeps events whose Path starts with the prefix.
	PathPrefix model.Path

	// TimeStart filters events at or after this time.
	TimeStart *time.Time

	// TimeEnd filters events before this time.
	TimeEnd *time.Time
}

// Matches reports whether event satisfies every criterion.
func (f *Filter) Matches(event Event) bool {
	if f.SessionID != "" && event.SessionID != f.SessionID {
		return false
	}
	if f.Kind != "" && event.Kind != f.Kind {
		return false
	}
	if f.Name != "" && event.Name != f.Name {
		return false
	}
	if len(f.PathPrefix) > 0 && !event.Path.HasPrefix(f.PathPrefix) {
		return false
	}
	if f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart) {
		return false
	}
	if f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd) {
		return false
	}
	return true
}

// Reader streams trace events from a CBOR-encoded file.
type Reader struct {
	file    *os.File
	decoder *cbor.Decoder
	filter  Filter
}

// NewReader creates a Reader that reads all events from path.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader creates a Reader that returns only events matching
// filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		file:    f,
		decoder: NewDecoder(f),
		filter:  filter,
	}, nil
}

// Next returns the next matching event, or io.EOF when none remain.
func (r *Reader) Next() (Event, error) {
	for {
		var event Event
		if err := r.decoder.Decode(&event); err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, io.EOF
			}
			return Event{}, err
		}

		if r.filter.Matches(event) {
			return event, nil
		}
	}
}

// ReadAll returns the remaining matching events.
func (r *Reader) ReadAll() ([]Event, error) {
	var events []Event
	for {
		event, err := r.Next()
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, event)
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

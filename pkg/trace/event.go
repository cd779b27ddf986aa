package trace

import (
	"time"

	"github.com/anore/anore-go/pkg/model"
)

// Event is one structural event observed on a node.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the recording session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Kind is the type of the node the event was emitted on.
	Kind model.Type `cbor:"3,keyasint"`

	// Name is the event name, e.g. "change" or "add".
	Name string `cbor:"4,keyasint"`

	// Path locates the affected node below a Mapping. Bubbled events carry
	// the full path from the recorded node.
	Path model.Path `cbor:"5,keyasint,omitempty"`

	// Key is the removed key for remove, or the old key for move.
	Key string `cbor:"6,keyasint,omitempty"`

	// NewKey is the destination key for move.
	NewKey string `cbor:"7,keyasint,omitempty"`

	// Keys lists the input keys of a multiSet.
	Keys []string `cbor:"8,keyasint,omitempty"`

	// Value is the plain form of the new or added node.
	Value any `cbor:"9,keyasint,omitempty"`

	// Previous is the plain form of the replaced or removed node.
	Previous any `cbor:"10,keyasint,omitempty"`

	// Position is the element index for Sequence add and remove.
	Position *int `cbor:"11,keyasint,omitempty"`
}

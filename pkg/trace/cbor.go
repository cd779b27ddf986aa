package trace

import (
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// Events are written canonically so identical events encode to identical
// bytes, with timestamps as RFC 3339 text to keep nanoseconds and the zone.
var traceEncOptions = cbor.EncOptions{
	Sort:          cbor.SortCanonical,
	IndefLength:   cbor.IndefLengthForbidden,
	NilContainers: cbor.NilContainerAsNull,
	Time:          cbor.TimeRFC3339Nano,
}

// Values and Previous are unboxed node trees, so every nested map decodes
// with string keys.
var traceDecOptions = cbor.DecOptions{
	DupMapKey:         cbor.DupMapKeyQuiet,
	IndefLength:       cbor.IndefLengthAllowed,
	ExtraReturnErrors: cbor.ExtraDecErrorNone,
	DefaultMapType:    reflect.TypeOf(map[string]any(nil)),
}

var (
	traceEncMode = mustMode(traceEncOptions.EncMode())
	traceDecMode = mustMode(traceDecOptions.DecMode())
)

func mustMode[M any](mode M, err error) M {
	if err != nil {
		panic(fmt.Sprintf("trace: invalid CBOR options: %v", err))
	}
	return mode
}

// EncodeEvent returns the CBOR form of event as stored in trace files.
func EncodeEvent(event Event) ([]byte, error) {
	data, err := traceEncMode.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encoding trace event %q: %w", event.Name, err)
	}
	return data, nil
}

// DecodeEvent decodes one Event from data.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := traceDecMode.Unmarshal(data, &event); err != nil {
		return Event{}, fmt.Errorf("decoding trace event: %w", err)
	}
	return event, nil
}

// NewEncoder returns an encoder writing Events to w in trace file form.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return traceEncMode.NewEncoder(w)
}

// NewDecoder returns a decoder reading consecutive Events from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return traceDecMode.NewDecoder(r)
}

package model

import (
	"fmt"
	"math/big"
	"reflect"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// literalDecMode decodes values that were round-tripped through CBOR to turn
// arbitrary Go values into plain literals.
var literalDecMode cbor.DecMode

func init() {
	var err error

	decOpts := cbor.DecOptions{
		DupMapKey:            cbor.DupMapKeyQuiet,
		UnrecognizedTagToAny: cbor.UnrecognizedTagContentToAny,
	}
	literalDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create literal CBOR decoder mode: %v", err))
	}
}

// Box converts a raw Go value into a Node:
//   - a Node is returned as is
//   - nil, booleans, strings and numbers become a *Primitive
//   - maps become a *Mapping (non-string keys are formatted with fmt)
//   - slices and arrays become a *Sequence ([]byte becomes a string)
//   - structs are converted to a plain literal through CBOR and boxed
//
// Values that have no literal form (funcs, channels, complex numbers) box to
// an empty *Mapping.
func Box(raw any) Node {
	switch v := raw.(type) {
	case nil:
		return NewPrimitive(nil)
	case Node:
		if isNilPointer(v) {
			return NewPrimitive(nil)
		}
		return v
	case bool, string, float64:
		return NewPrimitive(v)
	case []byte:
		return NewPrimitive(string(v))
	case time.Time:
		return NewPrimitive(v.Format(time.RFC3339Nano))
	case big.Int:
		return NewPrimitive(bigFloat(&v))
	case *big.Int:
		if v == nil {
			return NewPrimitive(nil)
		}
		return NewPrimitive(bigFloat(v))
	case cbor.Tag:
		return Box(v.Content)
	case map[string]any:
		return NewMapping(v)
	case []any:
		return NewSequence(v)
	}

	if scalar, ok := normalize(raw); ok {
		return NewPrimitive(scalar)
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Map:
		attrs, _ := plainMap(raw)
		return NewMapping(attrs)
	case reflect.Slice, reflect.Array:
		return NewSequence(plainSlice(rv))
	case reflect.Pointer:
		if rv.IsNil() {
			return NewPrimitive(nil)
		}
		return Box(rv.Elem().Interface())
	case reflect.Struct:
		return boxLiteral(raw)
	}

	return NewMapping(nil)
}

// boxLiteral boxes a struct by encoding it to CBOR and decoding the result
// into plain maps, slices and scalars.
func boxLiteral(raw any) Node {
	data, err := cbor.Marshal(raw)
	if err != nil {
		return NewMapping(nil)
	}

	var literal any
	if err := literalDecMode.Unmarshal(data, &literal); err != nil {
		return NewMapping(nil)
	}

	switch literal.(type) {
	case time.Time, big.Int:
	default:
		if reflect.ValueOf(literal).Kind() == reflect.Struct {
			return NewMapping(nil)
		}
	}

	return Box(literal)
}

// normalize maps a scalar Go value onto the canonical Primitive
// representation: nil, bool, string or float64.
func normalize(v any) (any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, true
	case bool, string, float64:
		return x, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), true
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}

	return nil, false
}

// plainMap returns raw as a map[string]any if it is a map.
func plainMap(raw any) (map[string]any, bool) {
	if m, ok := raw.(map[string]any); ok {
		return m, true
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Map {
		return nil, false
	}

	attrs := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key()
		var key string
		if k.Kind() == reflect.String {
			key = k.String()
		} else {
			key = fmt.Sprint(k.Interface())
		}
		attrs[key] = iter.Value().Interface()
	}
	return attrs, true
}

// plainList returns raw as a []any if it is a slice or array other than
// []byte.
func plainList(raw any) ([]any, bool) {
	if list, ok := raw.([]any); ok {
		return list, true
	}
	if _, ok := raw.([]byte); ok {
		return nil, false
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	return plainSlice(rv), true
}

// plainSlice copies the elements of a slice or array value.
func plainSlice(rv reflect.Value) []any {
	elements := make([]any, rv.Len())
	for i := range elements {
		elements[i] = rv.Index(i).Interface()
	}
	return elements
}

func isNilPointer(n Node) bool {
	rv := reflect.ValueOf(n)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func bigFloat(v *big.Int) float64 {
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}

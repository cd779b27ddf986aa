package model

import (
	"fmt"
	"math"
	"strconv"

	"github.com/anore/anore-go/pkg/emitter"
)

// Primitive is a leaf node holding one scalar: nil, bool, float64 or string.
type Primitive struct {
	emitter.Emitter
	value any
}

// NewPrimitive creates a Primitive holding v. Numbers of any Go numeric kind
// are stored as float64. Values that are not scalars are stored as their fmt
// representation.
func NewPrimitive(v any) *Primitive {
	return &Primitive{value: scalarOf(v)}
}

// Type classifies the held value. A number with no fractional part is an
// integer.
func (p *Primitive) Type() Type {
	switch v := p.value.(type) {
	case nil:
		return TypeNull
	case bool:
		return TypeBoolean
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) || math.Trunc(v) != v {
			return TypeNumber
		}
		return TypeInteger
	default:
		return TypeString
	}
}

// Get returns the held value.
func (p *Primitive) Get() any {
	return p.value
}

// Unbox returns the held value.
func (p *Primitive) Unbox() any {
	return p.value
}

// String formats the held value.
func (p *Primitive) String() string {
	switch v := p.value.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatNumber(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Set stores v and emits change(new, old). Setting the current value is a
// no-op. A *Primitive argument is unboxed first.
func (p *Primitive) Set(v any, opts ...Option) *Primitive {
	o := applyOptions(opts)

	if other, ok := v.(*Primitive); ok {
		v = other.Get()
	}
	value := scalarOf(v)

	if value == p.value {
		return p
	}

	previous := p.value
	p.value = value

	if !o.suppressOwn() {
		p.Emit(EventChange, value, previous)
	}

	return p
}

// Match reports whether q is a literal equal to the held value.
func (p *Primitive) Match(q Query) bool {
	if !q.IsLiteral() {
		return false
	}
	literal, ok := normalize(q.Value())
	if !ok {
		return false
	}
	return literal == p.value
}

// Bool returns the value if it is a boolean.
func (p *Primitive) Bool() (bool, bool) {
	v, ok := p.value.(bool)
	return v, ok
}

// Float returns the value if it is a number.
func (p *Primitive) Float() (float64, bool) {
	v, ok := p.value.(float64)
	return v, ok
}

// Int returns the value if it is an integer.
func (p *Primitive) Int() (int64, bool) {
	if p.Type() != TypeInteger {
		return 0, false
	}
	return int64(p.value.(float64)), true
}

// Str returns the value if it is a string.
func (p *Primitive) Str() (string, bool) {
	v, ok := p.value.(string)
	return v, ok
}

// IsNull reports whether the value is null.
func (p *Primitive) IsNull() bool {
	return p.value == nil
}

func scalarOf(v any) any {
	if scalar, ok := normalize(v); ok {
		return scalar
	}
	return fmt.Sprint(v)
}

func formatNumber(f float64) string {
	if math.Abs(f) >= 1e21 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

package model

import (
	"maps"
	"slices"
)

// Query is a match pattern: either a literal scalar, compared against a
// Primitive, or a set of field sub-queries, each matched against the
// Mapping attribute at that key.
type Query struct {
	literal any
	fields  map[string]Query
}

// Literal creates a literal query. A *Primitive is unboxed.
func Literal(v any) Query {
	if p, ok := v.(*Primitive); ok {
		v = p.Get()
	}
	if scalar, ok := normalize(v); ok {
		v = scalar
	}
	return Query{literal: v}
}

// Fields creates a field query.
func Fields(fields map[string]Query) Query {
	if fields == nil {
		fields = map[string]Query{}
	}
	return Query{fields: fields}
}

// NewQuery builds a Query from plain data: maps become field queries
// (recursively), a *Mapping is used through its unboxed form and anything
// else becomes a literal.
func NewQuery(raw any) Query {
	switch v := raw.(type) {
	case Query:
		return v
	case *Mapping:
		return NewQuery(v.Unbox())
	case *Primitive:
		return Literal(v)
	}

	if attrs, ok := plainMap(raw); ok {
		fields := make(map[string]Query, len(attrs))
		for k, v := range attrs {
			fields[k] = NewQuery(v)
		}
		return Fields(fields)
	}

	return Literal(raw)
}

// IsLiteral reports whether q is a literal query.
func (q Query) IsLiteral() bool {
	return q.fields == nil
}

// Value returns the literal of a literal query.
func (q Query) Value() any {
	return q.literal
}

// Keys returns the field names of a field query in sorted order.
func (q Query) Keys() []string {
	return slices.Sorted(maps.Keys(q.fields))
}

// Field returns the sub-query for key.
func (q Query) Field(key string) (Query, bool) {
	sub, ok := q.fields[key]
	return sub, ok
}

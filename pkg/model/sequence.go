package model

import (
	"fmt"
	"slices"

	"github.com/anore/anore-go/pkg/emitter"
)

// DefaultIDField is the attribute that identifies Mapping elements of a
// Sequence unless WithIDField is given.
const DefaultIDField = "id"

// Sequence is an ordered collection of Nodes. An element is present at most
// once: by reference, or for Mapping elements by the value of the id field.
type Sequence struct {
	emitter.Emitter
	idField  string
	elements []Node
}

// NewSequence creates a Sequence and adds each element in order.
func NewSequence(elements []any, opts ...SequenceOption) *Sequence {
	s := &Sequence{idField: DefaultIDField}
	for _, opt := range opts {
		opt(s)
	}

	for _, e := range elements {
		s.Add(e)
	}

	return s
}

// Type returns TypeArray.
func (s *Sequence) Type() Type {
	return TypeArray
}

// IDField returns the name of the id attribute.
func (s *Sequence) IDField() string {
	if s.idField == "" {
		return DefaultIDField
	}
	return s.idField
}

// Len returns the number of elements.
func (s *Sequence) Len() int {
	return len(s.elements)
}

// IndexOf returns the position of element: by reference, or for a Mapping
// by the value of its id attribute. It returns -1 if absent.
func (s *Sequence) IndexOf(element Node) int {
	if i := slices.Index(s.elements, element); i != -1 {
		return i
	}

	mapping, ok := element.(*Mapping)
	if !ok {
		return -1
	}
	id := mapping.Get(s.IDField())
	if id == nil {
		return -1
	}
	return s.indexOfID(NewQuery(id))
}

// indexOfID returns the position of the first Mapping element whose id
// attribute matches id, or -1. Other element kinds are never compared.
func (s *Sequence) indexOfID(id Query) int {
	if !id.IsLiteral() {
		return -1
	}
	field := s.IDField()
	return slices.IndexFunc(s.elements, func(e Node) bool {
		m, ok := e.(*Mapping)
		if !ok {
			return false
		}
		v, ok := m.attributes[field]
		return ok && v.Match(id)
	})
}

// Add boxes element and inserts it at the At position, or at the end. An
// element already present is not added again. Emits add(element, Position)
// unless Quiet or Silent is given.
func (s *Sequence) Add(element any, opts ...Option) *Sequence {
	o := applyOptions(opts)

	node := Box(element)
	if s.IndexOf(node) != -1 {
		return s
	}

	pos := len(s.elements)
	if o.hasAt {
		pos = clampPosition(o.at, len(s.elements))
	}

	s.elements = slices.Insert(s.elements, pos, node)

	if !o.suppressOwn() {
		s.Emit(EventAdd, node, Position{At: pos})
	}

	return s
}

// Remove removes element, located as by IndexOf. A raw value is boxed
// first, so a map carrying an id removes the element with that id. Emits
// remove(element, Position) on s and removeFrom(s) on the element.
func (s *Sequence) Remove(element any, opts ...Option) *Sequence {
	o := applyOptions(opts)

	pos := s.IndexOf(Box(element))
	if pos == -1 {
		return s
	}

	removed := s.elements[pos]
	s.elements = slices.Delete(s.elements, pos, pos+1)

	if !o.suppressOwn() {
		s.Emit(EventRemove, removed, Position{At: pos})
	}

	if !o.silent {
		removed.Emit(EventRemoveFrom, s)
	}

	return s
}

// At returns the element at index, or nil if out of range.
func (s *Sequence) At(index int) Node {
	if index < 0 || index >= len(s.elements) {
		return nil
	}
	return s.elements[index]
}

// Elements returns a copy of the element list.
func (s *Sequence) Elements() []Node {
	return slices.Clone(s.elements)
}

// Each calls fn for every element in order.
func (s *Sequence) Each(fn func(element Node, index int)) *Sequence {
	for i, e := range s.elements {
		fn(e, i)
	}
	return s
}

// Map returns fn applied to every element.
func (s *Sequence) Map(fn func(element Node, index int) any) []any {
	out := make([]any, len(s.elements))
	for i, e := range s.elements {
		out[i] = fn(e, i)
	}
	return out
}

// Filter returns the elements for which fn returns true.
func (s *Sequence) Filter(fn func(element Node, index int) bool) []Node {
	var out []Node
	for i, e := range s.elements {
		if fn(e, i) {
			out = append(out, e)
		}
	}
	return out
}

// Where returns the elements that match q.
func (s *Sequence) Where(q Query) []Node {
	return s.Filter(func(e Node, _ int) bool {
		return e.Match(q)
	})
}

// Match reports whether any element matches q.
func (s *Sequence) Match(q Query) bool {
	for _, e := range s.elements {
		if e.Match(q) {
			return true
		}
	}
	return false
}

// Get returns the first Mapping element whose id attribute equals id, or
// nil.
func (s *Sequence) Get(id any) Node {
	i := s.indexOfID(NewQuery(id))
	if i == -1 {
		return nil
	}
	return s.elements[i]
}

// Create boxes data as a Mapping, adds it and returns it.
func (s *Sequence) Create(data map[string]any, opts ...Option) *Mapping {
	m := NewMapping(data)
	s.Add(m, opts...)
	return m
}

// Empty removes the first element until none remain, so every removal emits
// its own events.
func (s *Sequence) Empty(opts ...Option) *Sequence {
	for len(s.elements) > 0 {
		before := len(s.elements)
		s.Remove(s.elements[0], opts...)
		if len(s.elements) == before {
			// a listener re-added the element
			break
		}
	}
	return s
}

// SetElements empties s and adds every element in order.
func (s *Sequence) SetElements(elements []any, opts ...Option) *Sequence {
	s.Empty(opts...)
	for _, e := range elements {
		s.Add(e, opts...)
	}
	return s
}

// Unbox returns the elements as a slice of plain values.
func (s *Sequence) Unbox() any {
	out := make([]any, len(s.elements))
	for i, e := range s.elements {
		out[i] = e.Unbox()
	}
	return out
}

// String formats the unboxed elements.
func (s *Sequence) String() string {
	return fmt.Sprint(s.Unbox())
}

func clampPosition(at, length int) int {
	if at < 0 {
		at += length
	}
	return max(0, min(at, length))
}

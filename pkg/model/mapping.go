package model

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/anore/anore-go/pkg/emitter"
)

// Mapping errors.
var (
	ErrInvalidKey = errors.New("key must be a string or a Primitive-wrapped string")
)

// Mapping is a keyed collection of Nodes.
type Mapping struct {
	emitter.Emitter

	// noBubble disables re-emission of child change events, so the zero
	// value bubbles.
	noBubble bool

	attributes map[string]Node

	// wirings holds the bubbling subscriptions, one per key.
	wirings map[string]*wiring
}

// NewMapping creates a Mapping from raw attributes. Each value is boxed.
func NewMapping(attrs map[string]any, opts ...MappingOption) *Mapping {
	m := &Mapping{
		attributes: make(map[string]Node),
		wirings:    make(map[string]*wiring),
	}
	for _, opt := range opts {
		opt(m)
	}

	if attrs != nil {
		m.MultiSet(attrs)
	}

	return m
}

// Type returns TypeObject.
func (m *Mapping) Type() Type {
	return TypeObject
}

// Bubbles reports whether descendant change events are re-emitted.
func (m *Mapping) Bubbles() bool {
	return !m.noBubble
}

// Get returns the node at a dotted path, or nil.
func (m *Mapping) Get(path string) Node {
	return m.GetPath(ParsePath(path))
}

// GetPath returns the node at p, or nil. Every segment but the last must
// resolve to a Mapping.
func (m *Mapping) GetPath(p Path) Node {
	current := m
	for i, key := range p {
		value, ok := current.attributes[key]
		if !ok {
			return nil
		}
		if i == len(p)-1 {
			return value
		}

		next, ok := value.(*Mapping)
		if !ok {
			return nil
		}
		current = next
	}
	return nil
}

// Lookup returns the node at a path given in any form PathOf accepts.
func (m *Mapping) Lookup(path any) Node {
	p, ok := PathOf(path)
	if !ok {
		return nil
	}
	return m.GetPath(p)
}

// Has reports whether a node exists at the dotted path.
func (m *Mapping) Has(path string) bool {
	return m.Get(path) != nil
}

// HasPath reports whether a node exists at p.
func (m *Mapping) HasPath(p Path) bool {
	return m.GetPath(p) != nil
}

// Set boxes value and stores it at key. key must be a string or a *Primitive
// holding a string. Storing the node already held at key is a no-op.
//
// Events, in order: change and change:<key> on m; replacedBy and removedFrom
// on the previous value; add and add:<key> on m when key was absent;
// addedTo and replaced on the new value.
func (m *Mapping) Set(key any, value any, opts ...Option) error {
	k, err := keyOf(key)
	if err != nil {
		return err
	}
	o := applyOptions(opts)

	node := Box(value)

	previous, had := m.attributes[k]
	if had && previous == node {
		return nil
	}

	if !m.noBubble {
		m.unwire(k)
		m.wire(k, node)
	}

	if m.attributes == nil {
		m.attributes = make(map[string]Node)
	}
	m.attributes[k] = node

	if !o.suppressOwn() {
		m.Emit(EventChange, Path{k}, node, previous)
		m.Emit(KeyEvent(EventChange, k), node, previous)
	}

	if had && !o.silent {
		previous.Emit(EventReplacedBy, m, k, node)
		previous.Emit(EventRemovedFrom, m, k)
	}

	if !had && !o.suppressOwn() {
		m.Emit(EventAdd, Path{k}, node)
		m.Emit(KeyEvent(EventAdd, k), node)
	}

	if !o.silent {
		node.Emit(EventAddedTo, m, k)
	}

	if had && !o.silent {
		node.Emit(EventReplaced, m, k, previous)
	}

	return nil
}

// Remove deletes key. Removing an absent key is a no-op.
func (m *Mapping) Remove(key string, opts ...Option) *Mapping {
	o := applyOptions(opts)

	previous, ok := m.attributes[key]
	if !ok {
		return m
	}

	m.unwire(key)
	delete(m.attributes, key)

	if !o.suppressOwn() {
		m.Emit(EventRemove, key, previous)
		m.Emit(KeyEvent(EventRemove, key), previous)
	}

	if !o.silent {
		previous.Emit(EventRemovedFrom, m, key)
	}

	return m
}

// MultiSet sets every attribute in attrs, in key order, using the WithAdd
// options. With Absolute, keys missing from attrs are removed first using
// the WithRemove options. A single multiSet event listing the input keys
// follows.
func (m *Mapping) MultiSet(attrs map[string]any, opts ...Option) *Mapping {
	o := applyOptions(opts)

	newKeys := slices.Sorted(maps.Keys(attrs))

	if o.absolute {
		for _, k := range m.Keys() {
			if _, keep := attrs[k]; !keep {
				m.Remove(k, o.remove...)
			}
		}
	}

	for _, k := range newKeys {
		// string keys cannot fail
		_ = m.Set(k, attrs[k], o.add...)
	}

	if !o.suppressOwn() {
		m.Emit(EventMultiSet, newKeys)
	}

	return m
}

// Merge updates the tree in place: a nested map is merged into the Mapping
// already at that key, a scalar is written into the Primitive already at
// that key and a list replaces the elements of the Sequence already at that
// key. Everything else is Set. Existing nodes keep their identity.
func (m *Mapping) Merge(attrs map[string]any, opts ...Option) *Mapping {
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		raw := attrs[k]

		if _, isNode := raw.(Node); !isNode {
			switch existing := m.attributes[k].(type) {
			case *Mapping:
				if sub, ok := plainMap(raw); ok {
					existing.Merge(sub, opts...)
					continue
				}
			case *Primitive:
				if scalar, ok := normalize(raw); ok {
					existing.Set(scalar, opts...)
					continue
				}
			case *Sequence:
				if list, ok := plainList(raw); ok {
					existing.SetElements(list, opts...)
					continue
				}
			}
		}

		_ = m.Set(k, raw, opts...)
	}

	return m
}

// Move re-homes the node at oldKey under newKey. The bubbling subscription
// follows the node, so later changes report newKey. A node previously held
// at newKey is detached and receives removedFrom unless Silent is given.
// Emits move(oldKey, newKey) unless Silent is given.
func (m *Mapping) Move(oldKey, newKey string, opts ...Option) *Mapping {
	o := applyOptions(opts)

	if oldKey == newKey {
		return m
	}

	node, ok := m.attributes[oldKey]
	if !ok {
		return m
	}

	displaced, hadDisplaced := m.attributes[newKey]

	m.unwire(oldKey)
	m.unwire(newKey)
	delete(m.attributes, oldKey)
	m.attributes[newKey] = node
	if !m.noBubble {
		m.wire(newKey, node)
	}

	if hadDisplaced && displaced != node && !o.silent {
		displaced.Emit(EventRemovedFrom, m, newKey)
	}

	if !o.silent {
		m.Emit(EventMove, oldKey, newKey)
	}

	return m
}

// Keys returns the attribute keys in sorted order.
func (m *Mapping) Keys() []string {
	return slices.Sorted(maps.Keys(m.attributes))
}

// Len returns the number of attributes.
func (m *Mapping) Len() int {
	return len(m.attributes)
}

// Each calls fn for every attribute in key order.
func (m *Mapping) Each(fn func(value Node, key string)) *Mapping {
	for _, k := range m.Keys() {
		fn(m.attributes[k], k)
	}
	return m
}

// Match reports whether every field of q is present in m and matched by the
// node there. Field names are paths. Literal queries never match a Mapping.
// A field holding a Sequence matches when any of its elements matches the
// field's query.
func (m *Mapping) Match(q Query) bool {
	if q.IsLiteral() {
		return false
	}
	for _, k := range q.Keys() {
		value := m.Get(k)
		if value == nil {
			return false
		}
		sub, _ := q.Field(k)
		if !value.Match(sub) {
			return false
		}
	}
	return true
}

// Unbox returns the attributes as a map of plain values.
func (m *Mapping) Unbox() any {
	out := make(map[string]any, len(m.attributes))
	for k, v := range m.attributes {
		out[k] = v.Unbox()
	}
	return out
}

// String formats the unboxed attributes.
func (m *Mapping) String() string {
	return fmt.Sprint(m.Unbox())
}

// OnChange registers fn for change events, own and bubbled.
func (m *Mapping) OnChange(fn func(path Path, value Node)) *emitter.Listener {
	return m.OnFunc(EventChange, func(args ...any) {
		fn(pathArg(args, 0), nodeArg(args, 1))
	})
}

// OnAdd registers fn for add events.
func (m *Mapping) OnAdd(fn func(path Path, value Node)) *emitter.Listener {
	return m.OnFunc(EventAdd, func(args ...any) {
		fn(pathArg(args, 0), nodeArg(args, 1))
	})
}

// OnRemove registers fn for remove events.
func (m *Mapping) OnRemove(fn func(key string, previous Node)) *emitter.Listener {
	return m.OnFunc(EventRemove, func(args ...any) {
		key, _ := arg(args, 0).(string)
		fn(key, nodeArg(args, 1))
	})
}

func keyOf(key any) (string, error) {
	switch k := key.(type) {
	case string:
		return k, nil
	case *Primitive:
		if s, ok := k.Str(); ok {
			return s, nil
		}
		return "", fmt.Errorf("%w: got Primitive of type %s", ErrInvalidKey, k.Type())
	}
	return "", fmt.Errorf("%w: got %T", ErrInvalidKey, key)
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}

func pathArg(args []any, i int) Path {
	p, _ := PathOf(arg(args, i))
	return p
}

func nodeArg(args []any, i int) Node {
	n, _ := arg(args, i).(Node)
	return n
}

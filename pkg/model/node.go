package model

import (
	"github.com/anore/anore-go/pkg/emitter"
)

// Type classifies a Node.
type Type string

const (
	TypeNull    Type = "null"
	TypeBoolean Type = "boolean"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeString  Type = "string"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
)

// String returns the type name.
func (t Type) String() string { return string(t) }

// Event names emitted by nodes.
const (
	EventAdd      = "add"
	EventChange   = "change"
	EventRemove   = "remove"
	EventMultiSet = "multiSet"
	EventMove     = "move"

	// Reciprocal notifications emitted on the child involved in a mutation.
	EventAddedTo     = "addedTo"
	EventRemovedFrom = "removedFrom"
	EventReplaced    = "replaced"
	EventReplacedBy  = "replacedBy"
	EventRemoveFrom  = "removeFrom"
)

// KeyEvent returns the per-key variant of a Mapping event, e.g. "change:name".
func KeyEvent(name, key string) string {
	return name + ":" + key
}

// Node is any value stored in the tree: *Primitive, *Mapping or *Sequence.
type Node interface {
	emitter.Source

	// Type classifies the node.
	Type() Type

	// Unbox returns the node as plain Go data: scalars, map[string]any and
	// []any, recursively.
	Unbox() any

	// Match reports whether the node satisfies q.
	Match(q Query) bool

	String() string

	node()
}

// Position is the payload of Sequence add and remove events.
type Position struct {
	At int
}

func (*Primitive) node() {}
func (*Mapping) node()   {}
func (*Sequence) node()  {}

// Compile-time interface satisfaction checks.
var (
	_ Node = (*Primitive)(nil)
	_ Node = (*Mapping)(nil)
	_ Node = (*Sequence)(nil)
)

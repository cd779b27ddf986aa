// Package model implements the observable tree data model.
//
// # Node Kinds
//
// Every value stored in the tree is a Node of one of three kinds:
//
//	Primitive  scalar value (null, boolean, number, string)
//	Mapping    keyed collection of Nodes, addressable by dotted path
//	Sequence   ordered collection of Nodes, deduplicated by identity or id
//
// Raw Go values passed to Mapping.Set, Sequence.Add and the constructors are
// boxed on entry by Box, so Get, At and iteration only ever return Nodes:
//
//	m := model.NewMapping(map[string]any{
//	    "name": "evse-1",
//	    "limits": map[string]any{"max": 11000},
//	    "sessions": []any{map[string]any{"id": 1}},
//	})
//	m.Get("limits.max").Type() // "integer"
//
// Numbers of every Go numeric kind are stored as float64.
//
// # Events
//
// Each Node embeds an emitter.Emitter. Mutations emit events synchronously
// before returning:
//
//	Primitive  change(new, old)
//	Mapping    add, add:<key>, change, change:<key>, remove, remove:<key>,
//	           multiSet, move
//	Sequence   add(element, Position), remove(element, Position)
//
// and send reciprocal notifications to the child involved: addedTo,
// removedFrom, replaced, replacedBy (Mapping) and removeFrom (Sequence).
//
// # Bubbling
//
// Unless created WithoutBubbling, a Mapping re-emits the "change" events of
// its children with the child's key prepended to the path, so a change deep
// in the tree reaches the root with its full path:
//
//	root.OnChange(func(path model.Path, value model.Node) {
//	    fmt.Println(path) // limits.max
//	})
//	root.Get("limits.max").(*model.Primitive).Set(7400)
//
// The subscriptions that implement bubbling are kept in a per-key table and
// torn down whenever the child is replaced, removed or moved.
//
// # Suppression
//
// Quiet suppresses a node's own structural events. Silent suppresses those
// and the reciprocal notifications sent to the affected child.
//
// # Concurrency
//
// The model is single-threaded. Listeners may mutate the tree re-entrantly;
// such calls run to completion before the outer dispatch continues. A tree
// that contains itself recurses without bound on the first bubbled change.
package model

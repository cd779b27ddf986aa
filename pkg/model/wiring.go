package model

import (
	"github.com/anore/anore-go/pkg/emitter"
)

// wiring is the bubbling subscription a Mapping holds on one child: forward
// re-emits the child's change events on the Mapping, teardown removes both
// listeners when the child reports removedFrom for this Mapping and key.
type wiring struct {
	key      string
	child    Node
	forward  *emitter.Listener
	teardown *emitter.Listener
}

// wire installs the bubbling subscription for child at key. Callers tear
// down any existing wiring for key first.
func (m *Mapping) wire(key string, child Node) {
	w := &wiring{key: key, child: child}

	if _, scalar := child.(*Primitive); scalar {
		w.forward = emitter.NewListener(func(...any) {
			m.Emit(EventChange, Path{w.key}, child)
		})
	} else {
		w.forward = emitter.NewListener(func(args ...any) {
			out := make([]any, 0, len(args)+1)
			out = append(out, pathArg(args, 0).Prepend(w.key))
			if len(args) > 1 {
				out = append(out, args[1:]...)
			}
			m.Emit(EventChange, out...)
		})
	}

	w.teardown = emitter.NewListener(func(args ...any) {
		parent, _ := arg(args, 0).(*Mapping)
		key, _ := arg(args, 1).(string)
		if parent == m && key == w.key && m.wirings[key] == w {
			m.unwire(key)
		}
	})

	child.On(EventChange, w.forward)
	child.On(EventRemovedFrom, w.teardown)

	if m.wirings == nil {
		m.wirings = make(map[string]*wiring)
	}
	m.wirings[key] = w
}

// unwire removes the bubbling subscription for key, if any.
func (m *Mapping) unwire(key string) {
	w, ok := m.wirings[key]
	if !ok {
		return
	}
	delete(m.wirings, key)

	w.child.Off(EventChange, w.forward)
	w.child.Off(EventRemovedFrom, w.teardown)
}

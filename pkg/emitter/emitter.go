package emitter

// Meta-event names emitted by the Emitter itself.
const (
	EventAddListener        = "addListener"
	EventRemoveListener     = "removeListener"
	EventRemoveAllListeners = "removeAllListeners"
)

// Func is the signature of an event callback.
type Func func(args ...any)

// Listener is a registered callback. Its pointer is its identity.
type Listener struct {
	fn Func
}

// NewListener wraps fn in a Listener.
func NewListener(fn Func) *Listener {
	return &Listener{fn: fn}
}

// Call invokes the listener with args.
func (l *Listener) Call(args ...any) {
	if l == nil || l.fn == nil {
		return
	}
	l.fn(args...)
}

// Source is the emitter capability exposed by every node.
type Source interface {
	On(name string, l *Listener, opts ...Option) *Listener
	OnFunc(name string, fn Func, opts ...Option) *Listener
	Once(name string, fn Func) *Listener
	HasListener(name string, l *Listener) bool
	Off(name string, l *Listener, opts ...Option)
	OffAll(name string, opts ...Option)
	Emit(name string, args ...any)
	ListenerCount(name string) int
}

// Emitter is a synchronous event emitter. The zero value is ready to use.
type Emitter struct {
	events map[string][]*Listener
}

// New creates an Emitter.
func New() *Emitter {
	return &Emitter{}
}

// On registers l for name and returns it as the subscription handle.
// Registration is skipped if l is already registered for name, unless
// AllowDuplicates is given.
func (e *Emitter) On(name string, l *Listener, opts ...Option) *Listener {
	o := apply(opts)

	if !o.allowDuplicates && e.HasListener(name, l) {
		return l
	}

	if e.events == nil {
		e.events = make(map[string][]*Listener)
	}
	e.events[name] = append(e.events[name], l)

	if !o.silent && !o.quiet {
		e.Emit(EventAddListener, name, l)
	}

	return l
}

// OnFunc registers fn under a new Listener and returns it.
func (e *Emitter) OnFunc(name string, fn Func, opts ...Option) *Listener {
	return e.On(name, NewListener(fn), opts...)
}

// Once registers fn to run on the next emission of name only. The listener
// is removed quietly before fn runs.
func (e *Emitter) Once(name string, fn Func) *Listener {
	var l *Listener
	l = NewListener(func(args ...any) {
		e.Off(name, l, Quiet())
		fn(args...)
	})
	return e.On(name, l)
}

// HasListener reports whether l is currently registered for name.
func (e *Emitter) HasListener(name string, l *Listener) bool {
	for _, registered := range e.events[name] {
		if registered == l {
			return true
		}
	}
	return false
}

// Off removes every registration of l under name.
func (e *Emitter) Off(name string, l *Listener, opts ...Option) {
	o := apply(opts)

	for {
		listeners := e.events[name]
		pos := indexOf(listeners, l)
		if pos == -1 {
			break
		}

		e.events[name] = append(listeners[:pos:pos], listeners[pos+1:]...)
		if len(e.events[name]) == 0 {
			delete(e.events, name)
		}

		if !o.silent && !o.quiet {
			e.Emit(EventRemoveListener, name, l)
		}
	}
}

// OffAll removes all listeners for name.
func (e *Emitter) OffAll(name string, opts ...Option) {
	o := apply(opts)

	if _, ok := e.events[name]; !ok {
		return
	}
	delete(e.events, name)

	if !o.silent && !o.quiet {
		e.Emit(EventRemoveAllListeners, name)
	}
}

// Emit synchronously calls the listeners registered for name, in
// registration order, with args.
func (e *Emitter) Emit(name string, args ...any) {
	listeners := e.events[name]
	if len(listeners) == 0 {
		return
	}

	snapshot := make([]*Listener, len(listeners))
	copy(snapshot, listeners)

	for _, l := range snapshot {
		l.Call(args...)
	}
}

// ListenerCount returns the number of registrations for name.
func (e *Emitter) ListenerCount(name string) int {
	return len(e.events[name])
}

func indexOf(listeners []*Listener, l *Listener) int {
	for i, registered := range listeners {
		if registered == l {
			return i
		}
	}
	return -1
}

// Compile-time interface satisfaction check.
var _ Source = (*Emitter)(nil)

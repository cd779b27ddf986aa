// Package emitter implements the synchronous publish/subscribe primitive
// embedded in every node of the data model.
//
// # Listeners
//
// Go functions are not comparable, so a callback is registered through a
// *Listener. The pointer is the listener's identity: registering the same
// *Listener twice for one event is a no-op unless AllowDuplicates is given,
// and Off removes every registration of that pointer.
//
//	l := e.OnFunc("change", func(args ...any) {
//	    fmt.Println("changed:", args...)
//	})
//	defer e.Off("change", l)
//
// # Dispatch
//
// Emit calls a snapshot of the listener list taken before the first listener
// runs. Listeners added or removed during an Emit do not affect that
// dispatch. A panic raised by a listener is not recovered; it unwinds through
// Emit to the code that triggered the event, and the listeners after it in
// that dispatch are not called.
//
// # Meta-events
//
// Unless Silent or Quiet is given, On emits "addListener", Off emits
// "removeListener" for each removed registration, and OffAll emits
// "removeAllListeners".
//
// An Emitter is not safe for concurrent use.
package emitter

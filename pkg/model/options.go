package model

// Option configures a single mutating call.
type Option func(*options)

type options struct {
	silent   bool
	quiet    bool
	at       int
	hasAt    bool
	absolute bool
	add      []Option
	remove   []Option
}

// Silent suppresses the receiver's own events and the reciprocal
// notifications sent to the child involved.
func Silent() Option {
	return func(o *options) { o.silent = true }
}

// Quiet suppresses the receiver's own structural events.
func Quiet() Option {
	return func(o *options) { o.quiet = true }
}

// At sets the insertion position for Sequence.Add. Negative positions count
// from the end.
func At(i int) Option {
	return func(o *options) {
		o.at = i
		o.hasAt = true
	}
}

// Absolute makes Mapping.MultiSet remove keys missing from its input.
func Absolute() Option {
	return func(o *options) { o.absolute = true }
}

// WithAdd sets the options MultiSet passes to each Set.
func WithAdd(opts ...Option) Option {
	return func(o *options) { o.add = opts }
}

// WithRemove sets the options MultiSet passes to each Remove.
func WithRemove(opts ...Option) Option {
	return func(o *options) { o.remove = opts }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) suppressOwn() bool {
	return o.silent || o.quiet
}

// MappingOption configures NewMapping.
type MappingOption func(*Mapping)

// WithoutBubbling disables re-emission of descendant change events.
func WithoutBubbling() MappingOption {
	return BubbleEvents(false)
}

// BubbleEvents sets whether descendant change events are re-emitted.
// Bubbling is on by default, including for the zero value.
func BubbleEvents(enabled bool) MappingOption {
	return func(m *Mapping) { m.noBubble = !enabled }
}

// SequenceOption configures NewSequence.
type SequenceOption func(*Sequence)

// WithIDField sets the attribute used to identify Mapping elements.
// The default is "id".
func WithIDField(name string) SequenceOption {
	return func(s *Sequence) {
		if name != "" {
			s.idField = name
		}
	}
}

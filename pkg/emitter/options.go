package emitter

// Option configures a single On, Off or OffAll call.
type Option func(*options)

type options struct {
	allowDuplicates bool
	silent          bool
	quiet           bool
}

// AllowDuplicates lets On register a listener that is already registered.
func AllowDuplicates() Option {
	return func(o *options) { o.allowDuplicates = true }
}

// Silent suppresses the meta-event for the call.
func Silent() Option {
	return func(o *options) { o.silent = true }
}

// Quiet suppresses the meta-event for the call.
func Quiet() Option {
	return func(o *options) { o.quiet = true }
}

func apply(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

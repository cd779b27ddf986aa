// Package trace records node events as a machine-readable event stream.
//
// A Recorder subscribes to the structural events of a model node and turns
// each one into an Event handed to a Logger. This is separate from
// operational logging (slog): a trace is a complete record of how a tree
// changed, suitable for replay, debugging and analysis.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	rec := trace.Attach(root, trace.NewSlogAdapter(slog.Default()), trace.DefaultConfig())
//	defer rec.Detach()
//
//	// For production: write to binary file
//	file, _ := trace.NewFileLogger("/var/lib/anore/session.atrace")
//
//	// Both, plus counters: use MultiLogger
//	logger := trace.NewMultiLogger(
//	    trace.NewSlogAdapter(slog.Default()),
//	    file,
//	    trace.NewMetricsLogger(prometheus.DefaultRegisterer),
//	)
//
// # File Format
//
// Trace files are a plain sequence of CBOR-encoded Events with integer keys.
// Reader streams them back, optionally through a Filter.
package trace

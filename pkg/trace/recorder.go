package trace

import (
	"slices"
	"time"

	"github.com/anore/anore-go/pkg/emitter"
	"github.com/anore/anore-go/pkg/model"
	"github.com/google/uuid"
)

// Config holds recorder configuration.
type Config struct {
	// SessionID is stamped on every event. Empty means a new UUID.
	SessionID string

	// Events restricts recording to these event names. Empty records all
	// structural events of the node.
	Events []string

	// IncludeValues adds the plain form of the nodes involved to each event.
	IncludeValues bool

	// Clock supplies event timestamps. Nil means time.Now.
	Clock func() time.Time
}

// DefaultConfig returns a configuration with a fresh session ID that
// records every event with values.
func DefaultConfig() Config {
	return Config{
		SessionID:     uuid.NewString(),
		IncludeValues: true,
		Clock:         time.Now,
	}
}

func (c Config) wants(name string) bool {
	return len(c.Events) == 0 || slices.Contains(c.Events, name)
}

// Recorder turns the events of one node into trace Events.
type Recorder struct {
	node      model.Node
	logger    Logger
	config    Config
	listeners map[string]*emitter.Listener
}

// Attach subscribes to the structural events of node and logs each as an
// Event: add, change, remove, multiSet and move for a Mapping (bubbled
// changes included), add and remove for a Sequence, change for a Primitive.
func Attach(node model.Node, logger Logger, cfg Config) *Recorder {
	if logger == nil {
		logger = NoopLogger{}
	}
	if cfg.SessionID == "" {
		cfg.SessionID = uuid.NewString()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	r := &Recorder{
		node:      node,
		logger:    logger,
		config:    cfg,
		listeners: make(map[string]*emitter.Listener),
	}

	for _, name := range structuralEvents(node) {
		if !cfg.wants(name) {
			continue
		}
		r.listeners[name] = node.OnFunc(name, func(args ...any) {
			r.logger.Log(r.event(name, args))
		})
	}

	return r
}

// SessionID returns the session ID stamped on recorded events.
func (r *Recorder) SessionID() string {
	return r.config.SessionID
}

// Detach removes every listener Attach installed. It is safe to call more
// than once.
func (r *Recorder) Detach() {
	for name, l := range r.listeners {
		r.node.Off(name, l)
	}
	clear(r.listeners)
}

func structuralEvents(node model.Node) []string {
	switch node.(type) {
	case *model.Mapping:
		return []string{model.EventAdd, model.EventChange, model.EventRemove, model.EventMultiSet, model.EventMove}
	case *model.Sequence:
		return []string{model.EventAdd, model.EventRemove}
	default:
		return []string{model.EventChange}
	}
}

func (r *Recorder) event(name string, args []any) Event {
	event := Event{
		Timestamp: r.config.Clock(),
		SessionID: r.config.SessionID,
		Kind:      r.node.Type(),
		Name:      name,
	}

	switch r.node.(type) {
	case *model.Mapping:
		switch name {
		case model.EventAdd, model.EventChange:
			if p, ok := model.PathOf(arg(args, 0)); ok {
				event.Path = slices.Clone(p)
			}
			event.Value = r.plain(arg(args, 1))
			event.Previous = r.plain(arg(args, 2))
		case model.EventRemove:
			event.Key, _ = arg(args, 0).(string)
			event.Previous = r.plain(arg(args, 1))
		case model.EventMultiSet:
			keys, _ := arg(args, 0).([]string)
			event.Keys = slices.Clone(keys)
		case model.EventMove:
			event.Key, _ = arg(args, 0).(string)
			event.NewKey, _ = arg(args, 1).(string)
		}

	case *model.Sequence:
		if pos, ok := arg(args, 1).(model.Position); ok {
			at := pos.At
			event.Position = &at
		}
		if name == model.EventRemove {
			event.Previous = r.plain(arg(args, 0))
		} else {
			event.Value = r.plain(arg(args, 0))
		}

	case *model.Primitive:
		event.Value = r.plain(arg(args, 0))
		event.Previous = r.plain(arg(args, 1))
	}

	return event
}

// plain returns the unboxed form of v, or nil when values are excluded.
func (r *Recorder) plain(v any) any {
	if !r.config.IncludeValues {
		return nil
	}
	if n, ok := v.(model.Node); ok {
		return n.Unbox()
	}
	return v
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}

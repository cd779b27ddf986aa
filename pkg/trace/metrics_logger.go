package trace

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsLogger counts trace events by node kind and event name.
// It is safe for concurrent use.
type MetricsLogger struct {
	events *prometheus.CounterVec
}

// NewMetricsLogger creates a MetricsLogger and registers its counter with
// reg. A nil reg leaves the counter unregistered. If an identical counter
// is already registered, that counter is reused.
func NewMetricsLogger(reg prometheus.Registerer) *MetricsLogger {
	events := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "anore",
			Subsystem: "trace",
			Name:      "events_total",
			Help:      "Total number of node events recorded",
		},
		[]string{"kind", "name"},
	)

	if reg != nil {
		if err := reg.Register(events); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
					events = existing
				}
			}
		}
	}

	return &MetricsLogger{events: events}
}

// Log increments the counter for the event's kind and name.
func (m *MetricsLogger) Log(event Event) {
	m.events.WithLabelValues(event.Kind.String(), event.Name).Inc()
}

// Counter returns the underlying counter vector.
func (m *MetricsLogger) Counter() *prometheus.CounterVec {
	return m.events
}

// Compile-time interface satisfaction check.
var _ Logger = (*MetricsLogger)(nil)

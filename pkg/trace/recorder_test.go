package trace

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/anore/anore-go/pkg/model"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	ts := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.SessionID = "session-test"
	cfg.Clock = fixedClock()
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	_, err := uuid.Parse(cfg.SessionID)
	assert.NoError(t, err)
	assert.True(t, cfg.IncludeValues)
	assert.NotNil(t, cfg.Clock)
	assert.Empty(t, cfg.Events)
}

func TestRecorderMappingAdd(t *testing.T) {
	m := model.NewMapping(map[string]any{"x": "y"})
	mock := &mockLogger{}

	rec := Attach(m, mock, testConfig())
	defer rec.Detach()

	require.NoError(t, m.Set("x2", 5))

	require.Len(t, mock.events, 2)

	change := mock.events[0]
	assert.Equal(t, model.EventChange, change.Name)
	assert.Equal(t, model.Path{"x2"}, change.Path)
	assert.Equal(t, float64(5), change.Value)
	assert.Nil(t, change.Previous)

	add := mock.events[1]
	assert.Equal(t, model.EventAdd, add.Name)
	assert.Equal(t, model.TypeObject, add.Kind)
	assert.Equal(t, "session-test", add.SessionID)
	assert.Equal(t, fixedClock()(), add.Timestamp)
}

func TestRecorderMappingBubbledChange(t *testing.T) {
	m := model.NewMapping(map[string]any{
		"meter": map[string]any{"power": 100},
	})
	mock := &mockLogger{}

	rec := Attach(m, mock, testConfig())
	defer rec.Detach()

	m.Get("meter.power").(*model.Primitive).Set(250)

	require.Len(t, mock.events, 1)
	assert.Equal(t, model.Path{"meter", "power"}, mock.events[0].Path)
	assert.Equal(t, float64(250), mock.events[0].Value)
}

func TestRecorderMappingRemoveMoveMultiSet(t *testing.T) {
	m := model.NewMapping(map[string]any{"a": 1, "b": 2})
	mock := &mockLogger{}

	cfg := testConfig()
	cfg.Events = []string{model.EventRemove, model.EventMove, model.EventMultiSet}
	rec := Attach(m, mock, cfg)
	defer rec.Detach()

	m.Remove("a")
	m.Move("b", "c")
	m.MultiSet(map[string]any{"d": 4})

	require.Len(t, mock.events, 3)

	assert.Equal(t, model.EventRemove, mock.events[0].Name)
	assert.Equal(t, "a", mock.events[0].Key)
	assert.Equal(t, float64(1), mock.events[0].Previous)

	assert.Equal(t, model.EventMove, mock.events[1].Name)
	assert.Equal(t, "b", mock.events[1].Key)
	assert.Equal(t, "c", mock.events[1].NewKey)

	assert.Equal(t, model.EventMultiSet, mock.events[2].Name)
	assert.Equal(t, []string{"d"}, mock.events[2].Keys)
}

func TestRecorderSequence(t *testing.T) {
	s := model.NewSequence([]any{"a"})
	mock := &mockLogger{}

	rec := Attach(s, mock, testConfig())
	defer rec.Detach()

	s.Add(map[string]any{"id": 1}, model.At(0))
	s.Remove("missing")
	s.Remove(s.At(1))

	require.Len(t, mock.events, 2)

	add := mock.events[0]
	assert.Equal(t, model.TypeArray, add.Kind)
	assert.Equal(t, model.EventAdd, add.Name)
	assert.Equal(t, map[string]any{"id": float64(1)}, add.Value)
	require.NotNil(t, add.Position)
	assert.Equal(t, 0, *add.Position)

	remove := mock.events[1]
	assert.Equal(t, model.EventRemove, remove.Name)
	assert.Equal(t, "a", remove.Previous)
	require.NotNil(t, remove.Position)
	assert.Equal(t, 1, *remove.Position)
}

func TestRecorderPrimitive(t *testing.T) {
	p := model.NewPrimitive("old")
	mock := &mockLogger{}

	rec := Attach(p, mock, testConfig())
	defer rec.Detach()

	p.Set("new")

	require.Len(t, mock.events, 1)
	assert.Equal(t, model.TypeString, mock.events[0].Kind)
	assert.Equal(t, "new", mock.events[0].Value)
	assert.Equal(t, "old", mock.events[0].Previous)
}

func TestRecorderWithoutValues(t *testing.T) {
	m := model.NewMapping(nil)
	mock := &mockLogger{}

	cfg := testConfig()
	cfg.IncludeValues = false
	rec := Attach(m, mock, cfg)
	defer rec.Detach()

	require.NoError(t, m.Set("k", map[string]any{"secret": "v"}))

	require.NotEmpty(t, mock.events)
	for _, e := range mock.events {
		assert.Nil(t, e.Value)
		assert.Nil(t, e.Previous)
		assert.Equal(t, model.Path{"k"}, e.Path)
	}
}

func TestRecorderDetachLeavesNoListeners(t *testing.T) {
	m := model.NewMapping(map[string]any{"k": 1})
	before := map[string]int{}
	for _, name := range structuralEvents(m) {
		before[name] = m.ListenerCount(name)
	}

	mock := &mockLogger{}
	rec := Attach(m, mock, testConfig())
	rec.Detach()
	rec.Detach()

	for name, count := range before {
		assert.Equal(t, count, m.ListenerCount(name), name)
	}

	require.NoError(t, m.Set("k", 2))
	assert.Empty(t, mock.events)
}

func TestRecorderDefaults(t *testing.T) {
	p := model.NewPrimitive(1)

	rec := Attach(p, nil, Config{})
	defer rec.Detach()

	_, err := uuid.Parse(rec.SessionID())
	assert.NoError(t, err)

	// nil logger falls back to NoopLogger
	p.Set(2)
}

func TestRecorderToFileAndMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.atrace")
	file, err := NewFileLogger(path)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	metrics := NewMetricsLogger(reg)

	root := model.NewMapping(map[string]any{"devices": map[string]any{}})
	rec := Attach(root, NewMultiLogger(file, metrics), testConfig())

	devices := root.Get("devices").(*model.Mapping)
	require.NoError(t, devices.Set("evse", map[string]any{"power": 0}))
	root.Get("devices.evse.power").(*model.Primitive).Set(11000)
	root.Remove("devices")

	rec.Detach()
	require.NoError(t, file.Close())

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.Counter().WithLabelValues("object", "change")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Counter().WithLabelValues("object", "remove")))

	reader, err := NewFilteredReader(path, Filter{PathPrefix: model.Path{"devices", "evse"}})
	require.NoError(t, err)
	defer reader.Close()

	events, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, map[string]any{"power": float64(0)}, events[0].Value)
	assert.Equal(t, model.Path{"devices", "evse", "power"}, events[1].Path)
	assert.Equal(t, float64(11000), events[1].Value)
}

package load

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/anore/anore-go/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siteYAML = `
name: garage
devices:
  - id: evse-1
    power: 11000
    enabled: true
  - id: battery-1
    capacity: 9.6
limits:
  max: 16
  ids: {1: one, 2: two}
`

func TestParseYAML(t *testing.T) {
	n, err := ParseYAML([]byte(siteYAML))
	require.NoError(t, err)

	m, ok := n.(*model.Mapping)
	require.True(t, ok, "got %T", n)

	assert.Equal(t, "garage", m.Get("name").Unbox())
	assert.Equal(t, float64(16), m.Get("limits.max").Unbox())
	assert.Equal(t, "one", m.Get("limits.ids.1").Unbox())

	devices, ok := m.Get("devices").(*model.Sequence)
	require.True(t, ok)
	assert.Equal(t, 2, devices.Len())

	evse := devices.Get("evse-1")
	require.NotNil(t, evse)
	assert.Equal(t, model.TypeInteger, evse.(*model.Mapping).Get("power").Type())

	battery := devices.Get("battery-1").(*model.Mapping)
	assert.Equal(t, model.TypeNumber, battery.Get("capacity").Type())
}

func TestParseYAMLScalarAndEmpty(t *testing.T) {
	n, err := ParseYAML([]byte("42"))
	require.NoError(t, err)
	assert.Equal(t, model.TypeInteger, n.Type())

	n, err = ParseYAML(nil)
	require.NoError(t, err)
	assert.Equal(t, model.TypeNull, n.Type())
}

func TestParseYAMLInvalid(t *testing.T) {
	_, err := ParseYAML([]byte("a: [1, 2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing yaml")
}

func TestParseYAMLAll(t *testing.T) {
	nodes, err := ParseYAMLAll([]byte("a: 1\n---\n- x\n- y\n---\nhello\n"))
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	assert.Equal(t, model.TypeObject, nodes[0].Type())
	assert.Equal(t, model.TypeArray, nodes[1].Type())
	assert.Equal(t, "hello", nodes[2].Unbox())
}

func TestParseMapping(t *testing.T) {
	m, err := ParseMapping([]byte(siteYAML))
	require.NoError(t, err)
	assert.True(t, m.Has("devices"))
	assert.True(t, m.Bubbles())

	m, err = ParseMapping([]byte("1: a\n2: b\n"), model.WithoutBubbling())
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, m.Keys())
	assert.False(t, m.Bubbles())

	m, err = ParseMapping([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestParseMappingRejectsOtherRoots(t *testing.T) {
	for _, doc := range []string{"- a\n- b\n", "scalar", "3.5"} {
		_, err := ParseMapping([]byte(doc))
		assert.ErrorIs(t, err, ErrNotMapping, doc)
	}
}

func TestMergeYAML(t *testing.T) {
	m, err := ParseMapping([]byte(siteYAML))
	require.NoError(t, err)

	limits := m.Get("limits")
	maxNode := m.Get("limits.max")

	var paths []string
	m.OnChange(func(path model.Path, _ model.Node) { paths = append(paths, path.String()) })

	require.NoError(t, MergeYAML(m, []byte("limits:\n  max: 32\n")))

	assert.Same(t, limits, m.Get("limits"))
	assert.Same(t, maxNode, m.Get("limits.max"))
	assert.Equal(t, float64(32), m.Get("limits.max").Unbox())
	assert.Equal(t, []string{"limits.max"}, paths)

	assert.Error(t, MergeYAML(m, []byte("- not a mapping")))
}

func TestEncodeYAMLRoundTrip(t *testing.T) {
	m, err := ParseMapping([]byte(siteYAML))
	require.NoError(t, err)

	data, err := EncodeYAML(m)
	require.NoError(t, err)

	again, err := ParseMapping(data)
	require.NoError(t, err)
	assert.Equal(t, m.Unbox(), again.Unbox())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(siteYAML), 0644))

	n, err := LoadYAML(path)
	require.NoError(t, err)
	assert.Equal(t, model.TypeObject, n.Type())

	m, err := LoadMapping(path)
	require.NoError(t, err)
	assert.Equal(t, "garage", m.Get("name").Unbox())

	_, err = LoadYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadMapping(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

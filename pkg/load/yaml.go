package load

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/anore/anore-go/pkg/model"
	"gopkg.in/yaml.v3"
)

// Load errors.
var (
	ErrNotMapping = errors.New("document root is not a mapping")
)

// ParseYAML decodes a single YAML document into a node tree. An empty
// document yields a null Primitive.
func ParseYAML(data []byte) (model.Node, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	return model.Box(doc), nil
}

// ParseYAMLAll decodes every document of a multi-document YAML stream.
func ParseYAMLAll(data []byte) ([]model.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var nodes []model.Node
	for i := 0; ; i++ {
		var doc any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return nodes, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parsing yaml document %d: %w", i, err)
		}
		nodes = append(nodes, model.Box(doc))
	}
}

// ParseMapping decodes a YAML document whose root must be a mapping. An
// empty document yields an empty Mapping.
func ParseMapping(data []byte, opts ...model.MappingOption) (*model.Mapping, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if doc == nil {
		return model.NewMapping(nil, opts...), nil
	}

	switch root := doc.(type) {
	case map[string]any:
		return model.NewMapping(root, opts...), nil
	case map[any]any:
		attrs := make(map[string]any, len(root))
		for k, v := range root {
			attrs[fmt.Sprint(k)] = v
		}
		return model.NewMapping(attrs, opts...), nil
	}
	return nil, fmt.Errorf("%w: got %T", ErrNotMapping, doc)
}

// MergeYAML decodes a YAML mapping and merges it into m in place.
func MergeYAML(m *model.Mapping, data []byte, opts ...model.Option) error {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing yaml: %w", err)
	}
	m.Merge(doc, opts...)
	return nil
}

// EncodeYAML writes the plain form of n as YAML.
func EncodeYAML(n model.Node) ([]byte, error) {
	data, err := yaml.Marshal(n.Unbox())
	if err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return data, nil
}

// LoadYAML reads and parses a YAML file.
func LoadYAML(path string) (model.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseYAML(data)
}

// LoadMapping reads a YAML file whose root must be a mapping.
func LoadMapping(path string, opts ...model.MappingOption) (*model.Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseMapping(data, opts...)
}

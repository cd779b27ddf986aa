// Package commands implements the anore-trace CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/anore/anore-go/pkg/filter"
	"github.com/anore/anore-go/pkg/model"
	"github.com/anore/anore-go/pkg/trace"
)

// Selection holds the event selection flags shared by all commands.
// Empty fields select everything.
type Selection struct {
	SessionID string
	Kind      string
	Event     string
	Path      string
	TimeStart string
	TimeEnd   string

	// Where is an expression evaluated against the event value.
	Where string
}

// selector applies a Selection to events.
type selector struct {
	filter trace.Filter
	where  *filter.Filter
}

func (s Selection) compile() (*selector, error) {
	sel := &selector{
		filter: trace.Filter{
			SessionID: s.SessionID,
			Name:      s.Event,
		},
	}

	if s.Kind != "" {
		k, err := parseKind(s.Kind)
		if err != nil {
			return nil, err
		}
		sel.filter.Kind = k
	}

	if s.Path != "" {
		sel.filter.PathPrefix = model.ParsePath(s.Path)
	}

	if s.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, s.TimeStart)
		if err != nil {
			return nil, fmt.Errorf("invalid time-start format: %w", err)
		}
		sel.filter.TimeStart = &t
	}

	if s.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, s.TimeEnd)
		if err != nil {
			return nil, fmt.Errorf("invalid time-end format: %w", err)
		}
		sel.filter.TimeEnd = &t
	}

	if s.Where != "" {
		f, err := filter.Compile(s.Where)
		if err != nil {
			return nil, err
		}
		sel.where = f
	}

	return sel, nil
}

func (s *selector) matches(event trace.Event) bool {
	if !s.filter.Matches(event) {
		return false
	}
	if s.where != nil && !s.where.Match(model.Box(event.Value)) {
		return false
	}
	return true
}

// each opens path and calls fn for every selected event.
func each(path string, sel Selection, fn func(trace.Event) error) error {
	s, err := sel.compile()
	if err != nil {
		return err
	}

	reader, err := trace.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if !s.matches(event) {
			continue
		}
		if err := fn(event); err != nil {
			return err
		}
	}
}

var kinds = []model.Type{
	model.TypeNull,
	model.TypeBoolean,
	model.TypeInteger,
	model.TypeNumber,
	model.TypeString,
	model.TypeObject,
	model.TypeArray,
}

// parseKind parses a node type name (case-insensitive).
func parseKind(s string) (model.Type, error) {
	for _, k := range kinds {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid kind: %s (must be null, boolean, integer, number, string, object, or array)", s)
}

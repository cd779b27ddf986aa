package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/anore/anore-go/pkg/model"
	"github.com/anore/anore-go/pkg/trace"
)

func TestFormatSequenceEvent(t *testing.T) {
	pos := 2
	event := trace.Event{
		Timestamp: time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC),
		SessionID: "feed0000-1111",
		Kind:      model.TypeArray,
		Name:      model.EventAdd,
		Value:     map[string]any{"id": "d2"},
		Position:  &pos,
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	for _, want := range []string{
		"2026-01-28T10:15:32.000000Z [session:feed0000] ARRAY   add",
		"Position: 2",
		`Value: {"id":"d2"}`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
	if strings.Contains(output, "Previous") {
		t.Errorf("unexpected Previous line:\n%s", output)
	}
}

func TestFormatMultiSetEvent(t *testing.T) {
	event := trace.Event{
		Timestamp: time.Now(),
		SessionID: "short",
		Kind:      model.TypeObject,
		Name:      model.EventMultiSet,
		Keys:      []string{"a", "b"},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)

	if !strings.Contains(buf.String(), "[session:short]") {
		t.Errorf("short session IDs are printed whole:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "Keys: a, b") {
		t.Errorf("expected keys line:\n%s", buf.String())
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"text", `"text"`},
		{float64(1.5), "1.5"},
		{true, "true"},
		{[]any{float64(1), "x"}, `[1,"x"]`},
		{map[any]any{1: "x"}, "map[1:x]"},
	}

	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/anore/anore-go/pkg/trace"
)

// jsonEvent is the JSON form of an Event.
type jsonEvent struct {
	Timestamp string   `json:"timestamp"`
	SessionID string   `json:"session_id"`
	Kind      string   `json:"kind"`
	Event     string   `json:"event"`
	Path      []string `json:"path,omitempty"`
	Key       string   `json:"key,omitempty"`
	NewKey    string   `json:"new_key,omitempty"`
	Keys      []string `json:"keys,omitempty"`
	Position  *int     `json:"position,omitempty"`
	Value     any      `json:"value,omitempty"`
	Previous  any      `json:"previous,omitempty"`
}

// RunExport exports the selected events in the given format to output, or
// to stdout if output is empty.
func RunExport(path, format, output string, sel Selection) error {
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return export(path, format, sel, w)
}

func export(path, format string, sel Selection, w io.Writer) error {
	switch format {
	case "jsonl":
		return exportJSONL(path, sel, w)
	case "csv":
		return exportCSV(path, sel, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(path string, sel Selection, w io.Writer) error {
	encoder := json.NewEncoder(w)
	return each(path, sel, func(event trace.Event) error {
		if err := encoder.Encode(toJSON(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
		return nil
	})
}

func exportCSV(path string, sel Selection, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "session_id", "kind", "event", "path", "key", "position", "value", "previous"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	return each(path, sel, func(event trace.Event) error {
		position := ""
		if event.Position != nil {
			position = strconv.Itoa(*event.Position)
		}
		key := event.Key
		if event.NewKey != "" {
			key += "->" + event.NewKey
		}

		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.SessionID,
			event.Kind.String(),
			event.Name,
			event.Path.String(),
			key,
			position,
			csvValue(event.Value),
			csvValue(event.Previous),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
		return nil
	})
}

func toJSON(event trace.Event) jsonEvent {
	return jsonEvent{
		Timestamp: event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000000Z"),
		SessionID: event.SessionID,
		Kind:      event.Kind.String(),
		Event:     event.Name,
		Path:      event.Path,
		Key:       event.Key,
		NewKey:    event.NewKey,
		Keys:      event.Keys,
		Position:  event.Position,
		Value:     event.Value,
		Previous:  event.Previous,
	}
}

func csvValue(v any) string {
	if v == nil {
		return ""
	}
	return formatValue(v)
}

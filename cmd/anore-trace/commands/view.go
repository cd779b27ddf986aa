package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/anore/anore-go/pkg/trace"
)

// RunView writes the selected events in human-readable form.
func RunView(path string, sel Selection, output io.Writer) error {
	return each(path, sel, func(event trace.Event) error {
		formatEvent(output, event)
		return nil
	})
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event trace.Event) {
	// Header line: timestamp [session:id] KIND event path
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	header := fmt.Sprintf("%s [session:%s] %-7s %s", ts, shortenID(event.SessionID), strings.ToUpper(event.Kind.String()), event.Name)
	if len(event.Path) > 0 {
		header += " " + event.Path.String()
	}
	fmt.Fprintln(w, header)

	if event.Key != "" && event.NewKey != "" {
		fmt.Fprintf(w, "  %s -> %s\n", event.Key, event.NewKey)
	} else if event.Key != "" {
		fmt.Fprintf(w, "  Key: %s\n", event.Key)
	}
	if len(event.Keys) > 0 {
		fmt.Fprintf(w, "  Keys: %s\n", strings.Join(event.Keys, ", "))
	}
	if event.Position != nil {
		fmt.Fprintf(w, "  Position: %d\n", *event.Position)
	}
	if event.Value != nil {
		fmt.Fprintf(w, "  Value: %s\n", formatValue(event.Value))
	}
	if event.Previous != nil {
		fmt.Fprintf(w, "  Previous: %s\n", formatValue(event.Previous))
	}

	fmt.Fprintln(w)
}

// shortenID returns the first 8 characters of a session ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

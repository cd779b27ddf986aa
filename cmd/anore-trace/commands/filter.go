package commands

import (
	"fmt"
	"io"

	"github.com/anore/anore-go/pkg/trace"
)

// RunFilter copies the selected events into a new trace file and reports
// the count on w.
func RunFilter(path, output string, sel Selection, w io.Writer) error {
	if output == "" {
		return fmt.Errorf("output file required")
	}

	logger, err := trace.NewFileLogger(output)
	if err != nil {
		return fmt.Errorf("failed to create output logger: %w", err)
	}
	defer logger.Close()

	count := 0
	err = each(path, sel, func(event trace.Event) error {
		logger.Log(event)
		count++
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Filtered %d events to %s\n", count, output)
	return nil
}

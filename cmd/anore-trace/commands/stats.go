package commands

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/anore/anore-go/pkg/model"
	"github.com/anore/anore-go/pkg/trace"
)

// topPaths is the number of busiest paths printed.
const topPaths = 10

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents  int
	EventsByName map[string]int
	EventsByKind map[model.Type]int
	EventsByPath map[string]int
	Sessions     map[string]*SessionStats
	TimeRange    struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single recording session.
type SessionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
}

// RunStats analyzes the selected events and prints statistics.
func RunStats(path string, sel Selection, w io.Writer) error {
	stats, err := collectStats(path, sel)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func collectStats(path string, sel Selection) (*Stats, error) {
	stats := &Stats{
		EventsByName: make(map[string]int),
		EventsByKind: make(map[model.Type]int),
		EventsByPath: make(map[string]int),
		Sessions:     make(map[string]*SessionStats),
	}

	err := each(path, sel, func(event trace.Event) error {
		stats.TotalEvents++
		stats.EventsByName[event.Name]++
		stats.EventsByKind[event.Kind]++
		if len(event.Path) > 0 {
			stats.EventsByPath[event.Path.String()]++
		}

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		session, ok := stats.Sessions[event.SessionID]
		if !ok {
			session = &SessionStats{
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
			}
			stats.Sessions[event.SessionID] = session
		}
		session.Events++
		if event.Timestamp.After(session.LastSeen) {
			session.LastSeen = event.Timestamp
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Name:")
	for _, name := range slices.Sorted(maps.Keys(stats.EventsByName)) {
		fmt.Fprintf(w, "  %-12s %d\n", name+":", stats.EventsByName[name])
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Kind:")
	for _, kind := range kinds {
		if count := stats.EventsByKind[kind]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", kind.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.EventsByPath) > 0 {
		paths := slices.SortedFunc(maps.Keys(stats.EventsByPath), func(a, b string) int {
			if c := cmp.Compare(stats.EventsByPath[b], stats.EventsByPath[a]); c != 0 {
				return c
			}
			return cmp.Compare(a, b)
		})
		if len(paths) > topPaths {
			paths = paths[:topPaths]
		}

		fmt.Fprintln(w, "Busiest Paths:")
		for _, p := range paths {
			fmt.Fprintf(w, "  %-24s %d\n", p, stats.EventsByPath[p])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		ids := slices.SortedFunc(maps.Keys(stats.Sessions), func(a, b string) int {
			return stats.Sessions[a].FirstSeen.Compare(stats.Sessions[b].FirstSeen)
		})

		fmt.Fprintln(w)
		for _, id := range ids {
			s := stats.Sessions[id]
			duration := s.LastSeen.Sub(s.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenID(id), s.Events, duration)
		}
	}
}

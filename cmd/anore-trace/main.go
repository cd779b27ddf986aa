// Command anore-trace views and analyzes trace files written by
// trace.FileLogger.
//
// Usage:
//
//	anore-trace <command> [flags] <file.atrace>
//
// Commands:
//
//	view     View trace file in human-readable format
//	export   Export trace file to JSONL or CSV format
//	filter   Filter trace file and write to new file
//	stats    Show statistics about the trace file
//
// Every command accepts the selection flags -session, -kind, -event, -path,
// -time-start, -time-end and -where.
//
// Examples:
//
//	# View all events
//	anore-trace view session.atrace
//
//	# View changes below devices.evse
//	anore-trace view -event change -path devices.evse session.atrace
//
//	# Export changes that set a high power value
//	anore-trace export -format csv -where 'value > 10000' session.atrace
//
//	# Show statistics
//	anore-trace stats session.atrace
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/anore/anore-go/cmd/anore-trace/commands"
)

const usage = `anore-trace - Node Event Trace Analyzer

Usage:
  anore-trace <command> [flags] <file.atrace>

Commands:
  view     View trace file in human-readable format
  export   Export trace file to JSONL or CSV format
  filter   Filter trace file and write to new file
  stats    Show statistics about the trace file

Use "anore-trace <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// newFlagSet creates a flag set with the shared selection flags bound to sel.
func newFlagSet(name, summary string, sel *commands.Selection) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `anore-trace %s - %s

Usage:
  anore-trace %s [flags] <file.atrace>

Flags:
`, name, summary, name)
		fs.PrintDefaults()
	}

	fs.StringVar(&sel.SessionID, "session", "", "Filter by session ID")
	fs.StringVar(&sel.Kind, "kind", "", "Filter by node kind (object, array, string, ...)")
	fs.StringVar(&sel.Event, "event", "", "Filter by event name (add, change, remove, ...)")
	fs.StringVar(&sel.Path, "path", "", "Filter by path prefix (dotted)")
	fs.StringVar(&sel.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&sel.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.StringVar(&sel.Where, "where", "", "Filter by expression on the event value")
	return fs
}

// tracePath parses args and returns the trace file argument.
func tracePath(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runView(args []string) {
	var sel commands.Selection
	fs := newFlagSet("view", "View trace file in human-readable format", &sel)
	path := tracePath(fs, args)

	exitOnError(commands.RunView(path, sel, os.Stdout))
}

func runExport(args []string) {
	var sel commands.Selection
	fs := newFlagSet("export", "Export trace file to JSONL or CSV format", &sel)
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	path := tracePath(fs, args)

	exitOnError(commands.RunExport(path, *format, *output, sel))
}

func runFilter(args []string) {
	var sel commands.Selection
	fs := newFlagSet("filter", "Filter trace file and write to new file", &sel)
	output := fs.String("o", "", "Output file (required)")
	path := tracePath(fs, args)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	exitOnError(commands.RunFilter(path, *output, sel, os.Stdout))
}

func runStats(args []string) {
	var sel commands.Selection
	fs := newFlagSet("stats", "Show statistics about the trace file", &sel)
	path := tracePath(fs, args)

	exitOnError(commands.RunStats(path, sel, os.Stdout))
}

// Command tabdoc converts a Markdown pipe table to a YAML or JSON record
// list, or the reverse, picking the direction from the input extension.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-logger/glog"

	"github.com/bjaus/tabdoc"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "tabdoc: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("tabdoc", flag.ExitOnError)
	input := fs.String("input", "", "Input file path (.md/.markdown or .yml/.yaml)")
	output := fs.String("output", "", "Output file path (default: input with swapped extension)")
	formatFlag := fs.String("format", "yaml", "Structured output format when converting a table: yaml or json")
	dryRun := fs.Bool("dry-run", false, "Decode and report the record count without writing")
	logLevel := fs.String("log-level", "info", "Log level: trace, debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		fs.Usage()
		return fmt.Errorf("input is required")
	}
	format, err := tabdoc.ParseFormat(*formatFlag)
	if err != nil {
		return err
	}

	root := glog.NewLogger(
		glog.WithLevel(parseLevel(*logLevel)),
		glog.WithLoggerTypeConsole(),
	)
	conv := tabdoc.NewConverter(root.GetLogger("convert"))
	_, err = conv.Convert(tabdoc.Options{
		Input:  *input,
		Output: *output,
		Format: format,
		DryRun: *dryRun,
	})
	return err
}

func parseLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	default:
		return glog.Info
	}
}

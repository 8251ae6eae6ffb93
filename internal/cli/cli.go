package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/flightgraph/internal/app"
	"github.com/specialistvlad/flightgraph/internal/planner"
	"github.com/specialistvlad/flightgraph/internal/publish"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// listFlag collects a repeatable string flag.
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("value cannot be empty")
	}
	*l = append(*l, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("flightgraph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
flightgraph - Plans which flight-data nodes can be derived from a recording.

Usage:
  flightgraph -catalog PATH [options] RECORDING...

Arguments:
  RECORDING
    YAML manifest listing the parameters present in one recording.

Options:
`)
		flagSet.PrintDefaults()
	}

	var catalogs, recordings, targets listFlag
	flagSet.Var(&catalogs, "catalog", "Path to a catalogue .hcl file or directory. Repeatable.")
	flagSet.Var(&catalogs, "c", "Path to a catalogue .hcl file or directory (shorthand).")
	flagSet.Var(&recordings, "recording", "Path to a recording manifest. Repeatable.")
	flagSet.Var(&targets, "target", "Node to compute. Repeatable. Defaults to every registered node.")
	formatFlag := flagSet.String("format", "text", "Report format. Options: 'text' or 'json'.")
	includeRootFlag := flagSet.Bool("include-root", false, "Append the synthetic root to the processing order.")
	checkFlag := flagSet.Bool("check-predicates", false, "Evaluate every can_operate twice and fail if the answers differ.")
	workersFlag := flagSet.Int("workers", planner.DefaultWorkers, "Number of recordings planned concurrently.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	publishURLFlag := flagSet.String("publish-url", "", "socket.io server to push reports to. Empty disables publishing.")
	publishNSFlag := flagSet.String("publish-namespace", "/", "socket.io namespace for publishing.")
	publishEventFlag := flagSet.String("publish-event", publish.DefaultEvent, "Event name carrying the reports.")
	publishAckFlag := flagSet.String("publish-ack-event", "", "Event the server answers with. Empty means fire and forget.")
	publishTimeoutFlag := flagSet.Duration("publish-timeout", publish.DefaultTimeout, "How long to wait for the server.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	recordings = append(recordings, flagSet.Args()...)
	if len(catalogs) == 0 && len(recordings) == 0 {
		slog.Debug("Nothing to plan, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(app.Config{
		CatalogPaths:     catalogs,
		RecordingPaths:   recordings,
		Targets:          targets,
		OutputFormat:     strings.ToLower(*formatFlag),
		LogFormat:        strings.ToLower(*logFormatFlag),
		LogLevel:         strings.ToLower(*logLevelFlag),
		WorkerCount:      *workersFlag,
		IncludeRoot:      *includeRootFlag,
		CheckPredicates:  *checkFlag,
		PublishURL:       *publishURLFlag,
		PublishNamespace: *publishNSFlag,
		PublishEvent:     *publishEventFlag,
		PublishAckEvent:  *publishAckFlag,
		PublishTimeout:   *publishTimeoutFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/dagjobs/internal/app"
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

// Mode tells the entrypoint what to do after parsing.
type Mode int

const (
	// ModeRun runs the jobs file.
	ModeRun Mode = iota
	// ModeExit exits cleanly, for example after printing help.
	ModeExit
	// ModeGenerate produces one work value on stdout. The process executor
	// starts the binary in this mode for every job.
	ModeGenerate
)

// hiddenFlags are not listed in the usage text.
var hiddenFlags = map[string]bool{"generate": true}

// Parse processes command-line arguments. It returns a populated Config when
// the mode is ModeRun, or an ExitError for invalid usage.
func Parse(args []string, output io.Writer) (*app.Config, Mode, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("dagjobs", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
dagjobs - Runs a set of jobs whose prerequisites form a directed acyclic graph.

Usage:
  dagjobs [options] JOBS_PATH

Arguments:
  JOBS_PATH
    Path to a .hcl, .yaml or .yml jobs file, or a directory of .hcl files.

Options:
`)
		flagSet.VisitAll(func(f *flag.Flag) {
			if hiddenFlags[f.Name] {
				return
			}
			fmt.Fprintf(output, "  -%s\n    \t%s (default %q)\n", f.Name, f.Usage, f.DefValue)
		})
	}

	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check and metrics server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	executorFlag := flagSet.String("executor", app.ExecutorProcess, "Work executor. Options: 'process' (one child process per job) or 'random' (in-process).")
	eventsURLFlag := flagSet.String("events-url", "", "Socket.IO server URL to publish job events to. Empty is disabled.")
	eventsNamespaceFlag := flagSet.String("events-namespace", "/", "Socket.IO namespace for job events.")
	eventsNameFlag := flagSet.String("events-name", "job", "Socket.IO event name for job events.")
	generateFlag := flagSet.Bool("generate", false, "Write one work value to stdout and exit.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, ModeExit, nil
		}
		return nil, ModeExit, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if *generateFlag {
		return nil, ModeGenerate, nil
	}

	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return nil, ModeExit, &ExitError{Code: 2, Message: "invalid arguments count"}
	}
	path := flagSet.Arg(0)
	slog.Debug("Jobs path determined.", "path", path)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, ModeExit, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, ModeExit, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		JobsPath:        path,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		Executor:        strings.ToLower(*executorFlag),
		HealthcheckPort: *healthPortFlag,
		EventsURL:       *eventsURLFlag,
		EventsNamespace: *eventsNamespaceFlag,
		EventsName:      *eventsNameFlag,
	})
	if err != nil {
		return nil, ModeExit, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, ModeRun, nil
}

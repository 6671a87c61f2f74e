package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/blockpaste/internal/app"
	"github.com/specialistvlad/blockpaste/internal/config"
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

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated app
// Config, a boolean indicating if the program should exit cleanly, or an
// ExitError. Flags that are set explicitly override the configuration file,
// which overrides the defaults.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("blockpaste", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
blockpaste - Convert pasted HTML into editor blocks.

Usage:
  blockpaste [options] HTML_PATH
  blockpaste [options] -serve ADDRESS

Arguments:
  HTML_PATH
    Path to an HTML file, or "-" to read standard input.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to a YAML configuration file.")
	pluginsPathFlag := flagSet.String("plugins-path", "", "Directory of extra plugin manifests (.hcl).")
	logLevelFlag := flagSet.String("log-level", config.DefaultLogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := flagSet.String("log-format", config.DefaultLogFormat, "Log output format. Options: 'text' or 'json'.")
	maxDepthFlag := flagSet.Int("max-depth", config.DefaultMaxDepth, "Maximum HTML nesting depth to descend into.")
	outputFlag := flagSet.String("output", config.DefaultOutput, "Output format. Options: 'json' or 'text'.")
	serveFlag := flagSet.String("serve", "", "Serve the import API on this address instead of importing a file.")
	watchFlag := flagSet.Bool("watch", false, "Reload plugin manifests when they change (with -serve).")
	publishURLFlag := flagSet.String("publish-url", "", "Publish imported blocks to this socket.io server.")
	publishNamespaceFlag := flagSet.String("publish-namespace", config.DefaultNamespace, "socket.io namespace to publish to.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, usageError("expected at most one HTML path, got %d", flagSet.NArg())
	}

	base := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			return nil, false, usageError("%s", err.Error())
		}
		base = loaded
	}

	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "plugins-path":
			base.PluginsPath = *pluginsPathFlag
		case "log-level":
			base.LogLevel = *logLevelFlag
		case "log-format":
			base.LogFormat = *logFormatFlag
		case "max-depth":
			base.MaxDepth = *maxDepthFlag
		case "output":
			base.Output = *outputFlag
		case "serve":
			base.Serve.Address = *serveFlag
		case "watch":
			base.Serve.Watch = *watchFlag
		case "publish-url":
			base.Publish.URL = *publishURLFlag
		case "publish-namespace":
			base.Publish.Namespace = *publishNamespaceFlag
		}
	})

	input := flagSet.Arg(0)
	if input != "" && *serveFlag != "" {
		return nil, false, usageError("an HTML path and -serve are mutually exclusive")
	}
	if input == "" && base.Serve.Address == "" {
		slog.Debug("No input or serve address provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	cfg, err := app.NewConfig(app.Config{Config: *base, InputPath: input})
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	slog.Debug("CLI parser finished successfully.", "input", cfg.InputPath, "serve", cfg.Serve.Address)
	return cfg, false, nil
}

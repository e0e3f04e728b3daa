package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/weftui/weft/internal/app"
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("weft", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
Weft - a design-system package resolver.

Usage:
  weft [options] [PACKAGE_PATH]

Arguments:
  PACKAGE_PATH
    Directory containing the package's .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	packageFlag := flagSet.String("package", "", "Path to the package directory.")
	pFlag := flagSet.String("p", "", "Path to the package directory (shorthand).")
	componentFlag := flagSet.String("component", "", "Component to flatten and emit. Empty validates the package and emits the build order.")
	variantsFlag := flagSet.String("variants", "", "Variant selection as axis=value pairs, comma separated.")
	contextFlag := flagSet.String("context", "", "Token context to resolve contextual tokens in.")
	searchPathFlag := flagSet.String("search-path", "", "Directory extended packages are looked up under. Defaults to the package's parent directory.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *packageFlag != "" {
		path = *packageFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Package path determined.", "path", path)

	if path == "" {
		slog.Debug("No package path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	variants, err := parseVariants(*variantsFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		PackagePath:  path,
		SearchPath:   *searchPathFlag,
		Component:    *componentFlag,
		Variants:     variants,
		TokenContext: *contextFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// parseVariants reads "intent=primary,size=lg" into a selection map.
func parseVariants(s string) (map[string]string, error) {
	if s == "" {
		return nil, nil
	}
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		axis, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || axis == "" || value == "" {
			return nil, fmt.Errorf("invalid variant selection %q: expected axis=value", pair)
		}
		out[axis] = value
	}
	return out, nil
}

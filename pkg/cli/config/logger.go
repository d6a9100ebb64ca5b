package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
)

// Logger holds CLI flags for the process logger
type Logger struct {
	level  string
	format string
	output string
}

// Flags returns CLI flags for logger configuration
func (x *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Aliases:     []string{"l"},
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Category:    "Logging",
			Sources:     cli.EnvVars("RISKCALC_LOG_LEVEL"),
			Destination: &x.level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json)",
			Value:       "console",
			Category:    "Logging",
			Sources:     cli.EnvVars("RISKCALC_LOG_FORMAT"),
			Destination: &x.format,
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log output (stdout, stderr, or a file path)",
			Value:       "stdout",
			Category:    "Logging",
			Sources:     cli.EnvVars("RISKCALC_LOG_OUTPUT"),
			Destination: &x.output,
		},
	}
}

// LogValue implements slog.LogValuer
func (x Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", x.level),
		slog.String("format", x.format),
		slog.String("output", x.output),
	)
}

// Configure installs the configured logger as the process default. The
// returned function closes the log file, if any.
func (x *Logger) Configure() (func(), error) {
	level, err := parseLogLevel(x.level)
	if err != nil {
		return nil, err
	}

	format := logging.Format(strings.ToLower(x.format))
	switch format {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return nil, goerr.Wrap(ErrInvalidLogFormat, "failed to configure logger", goerr.V(LogFormatKey, x.format))
	}

	var w io.Writer
	closer := func() {}
	switch x.output {
	case "", "stdout", "-":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		// #nosec G304 - path is provided by the operator
		f, err := os.OpenFile(x.output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open log file", goerr.V("path", x.output))
		}
		w = f
		closer = func() {
			if err := f.Close(); err != nil {
				_, _ = os.Stderr.WriteString("failed to close log file: " + err.Error() + "\n")
			}
		}
	}

	logging.SetDefault(logging.New(w, level, format))
	return closer, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, goerr.Wrap(ErrInvalidLogLevel, "failed to configure logger", goerr.V(LogLevelKey, s))
	}
}

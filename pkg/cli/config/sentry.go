package config

import (
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const sentryFlushTimeout = 2 * time.Second

// Sentry holds configuration for error reporting
type Sentry struct {
	dsn string
	env string
}

// Flags returns CLI flags for Sentry configuration
func (x *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error reporting (disabled if empty)",
			Category:    "Sentry",
			Sources:     cli.EnvVars("RISKCALC_SENTRY_DSN"),
			Destination: &x.dsn,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment name",
			Category:    "Sentry",
			Sources:     cli.EnvVars("RISKCALC_SENTRY_ENV"),
			Destination: &x.env,
		},
	}
}

// IsEnabled reports whether a DSN is configured
func (x *Sentry) IsEnabled() bool {
	return x.dsn != ""
}

// LogValue implements slog.LogValuer. The DSN is never logged.
func (x Sentry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", x.dsn != ""),
		slog.String("env", x.env),
	)
}

// Configure initializes the global Sentry client. The returned function
// flushes pending events and must be called before exit.
func (x *Sentry) Configure(release string) (func(), error) {
	if !x.IsEnabled() {
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         x.dsn,
		Environment: x.env,
		Release:     release,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sentry")
	}

	return func() {
		sentry.Flush(sentryFlushTimeout)
	}, nil
}

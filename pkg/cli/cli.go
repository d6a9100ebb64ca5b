package cli

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/riskcalc/pkg/cli/config"
	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
)

func Run(ctx context.Context, args []string, version string) error {
	return run(ctx, args, version, nil)
}

func run(ctx context.Context, args []string, version string, w io.Writer) error {
	var loggerCfg config.Logger
	var sentryCfg config.Sentry
	var closers []func()

	var flags []cli.Flag
	flags = append(flags, loggerCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    "riskcalc",
		Usage:   "Health risk score calculator",
		Version: version,
		Flags:   flags,
		Writer:  w,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closers = append(closers, f)

			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return ctx, err
			}
			closers = append(closers, flush)

			logging.Default().Debug("Starting riskcalc", "logger", loggerCfg, "sentry", sentryCfg)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Sentry flushes before the log file closes
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdScore(),
			cmdValidate(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}

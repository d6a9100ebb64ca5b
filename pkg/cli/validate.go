package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/riskcalc/pkg/cli/config"
	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
)

func cmdValidate() *cli.Command {
	var serverCfg config.Server

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the server configuration file and flags",
		Flags:   serverCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			if serverCfg.ConfigPath() == "" {
				logger.Info("No configuration file specified, validating flags only")
			}

			cors, err := serverCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}

			logger.Info("Configuration validation passed",
				"cors_origins", cors.AllowedOrigins,
				"cors_headers", cors.AllowedHeaders,
				"cors_max_age", cors.MaxAge,
			)
			return nil
		},
	}
}

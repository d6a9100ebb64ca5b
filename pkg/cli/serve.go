package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/secmon-lab/riskcalc/pkg/cli/config"
	httpctrl "github.com/secmon-lab/riskcalc/pkg/controller/http"
	"github.com/secmon-lab/riskcalc/pkg/service/metrics"
	"github.com/secmon-lab/riskcalc/pkg/usecase"
	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
)

const (
	readHeaderTimeout = 30 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func cmdServe() *cli.Command {
	var addr string
	var enableMetrics bool
	var metricsAddr string
	var serverCfg config.Server

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("RISKCALC_ADDR"),
			Destination: &addr,
		},
		&cli.BoolFlag{
			Name:        "metrics",
			Usage:       "Expose Prometheus metrics on /metrics of the API server",
			Category:    "Metrics",
			Sources:     cli.EnvVars("RISKCALC_METRICS"),
			Destination: &enableMetrics,
		},
		&cli.StringFlag{
			Name:        "metrics-addr",
			Usage:       "Serve Prometheus metrics on a separate address instead (e.g. :9090)",
			Category:    "Metrics",
			Sources:     cli.EnvVars("RISKCALC_METRICS_ADDR"),
			Destination: &metricsAddr,
		},
	}
	flags = append(flags, serverCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			corsCfg, err := serverCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load server configuration")
			}

			var ucOpts []usecase.Option
			httpOpts := []httpctrl.Options{
				httpctrl.WithCORS(corsCfg),
			}

			var servers []*http.Server
			if enableMetrics || metricsAddr != "" {
				recorder := metrics.New()
				ucOpts = append(ucOpts, usecase.WithMetrics(recorder))

				if metricsAddr != "" {
					servers = append(servers, &http.Server{
						Addr:              metricsAddr,
						Handler:           recorder.Handler(),
						ReadHeaderTimeout: readHeaderTimeout,
					})
				} else {
					httpOpts = append(httpOpts, httpctrl.WithMetricsHandler(recorder.Handler()))
				}
			}

			uc := usecase.New(ucOpts...)
			servers = append(servers, &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: readHeaderTimeout,
			})

			logging.Default().Info("Server configuration",
				"server", serverCfg,
				"cors_origins", corsCfg.AllowedOrigins,
				"metrics", enableMetrics || metricsAddr != "",
			)

			// Setup signal handling for graceful shutdown
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			eg, ctx := errgroup.WithContext(ctx)
			for _, srv := range servers {
				eg.Go(func() error {
					logging.Default().Info("Starting HTTP server", "addr", srv.Addr)
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						return goerr.Wrap(err, "failed to start server", goerr.V("addr", srv.Addr))
					}
					return nil
				})
			}

			eg.Go(func() error {
				<-ctx.Done()
				logging.Default().Info("Shutting down HTTP servers")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				for _, srv := range servers {
					if err := srv.Shutdown(shutdownCtx); err != nil {
						return goerr.Wrap(err, "failed to shutdown server gracefully", goerr.V("addr", srv.Addr))
					}
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			})

			return eg.Wait()
		},
	}
}

package command

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/spendtrack/internal/auth"
	"github.com/mmynk/spendtrack/internal/server"
	"github.com/mmynk/spendtrack/internal/telemetry"
)

func serveCommand() *cobra.Command {
	var seedDefaults bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the expense tracker RPC API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			cfg, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			if seedDefaults {
				if err := seedReferences(cmd.Context(), logger, store); err != nil {
					return err
				}
			}

			shutdownTracing, err := telemetry.Setup(cmd.Context(), cfg.OTLPEndpoint)
			if err != nil {
				return err
			}
			defer func() {
				if err := shutdownTracing(context.WithoutCancel(cmd.Context())); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			var registry *prometheus.Registry
			if cfg.Metrics {
				registry = prometheus.NewRegistry()
				registry.MustRegister(
					collectors.NewGoCollector(),
					collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
				)
			}

			handler := server.NewHandler(server.Options{
				Store:         store,
				Tokens:        auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration),
				Logger:        logger,
				SecureCookies: cfg.Production(),
				Registry:      registry,
			})

			grp, ctx := errgroup.WithContext(cmd.Context())
			listener, err := server.Listen(ctx, cfg.Address)
			if err != nil {
				return err
			}
			srv := &http.Server{Handler: handler} //nolint:gosec // Serve() sets timeouts

			logger.InfoContext(ctx,
				"starting RPC server...",
				slog.String("address", listener.Addr().String()),
				slog.Bool("metrics", cfg.Metrics),
				slog.Bool("tracing", cfg.OTLPEndpoint != ""),
			)
			server.Serve(ctx, grp, srv, listener, server.ShutdownTimeout)
			return grp.Wait()
		},
	}
	cmd.Flags().BoolVar(&seedDefaults, "seed", true, "create the default categories and payment methods if missing")
	return cmd
}

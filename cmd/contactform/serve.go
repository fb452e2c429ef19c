package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/contactform/app/contactform"
	"github.com/dmitrymomot/contactform/core/config"
	"github.com/dmitrymomot/contactform/core/logger"
	"github.com/dmitrymomot/contactform/middleware"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the contact form HTTP server until SIGINT or SIGTERM.

The submission transport (FORM_TRANSPORT) and preference store
(PREFERENCE_STORE) decide which external services are connected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg contactform.Config
			if err := config.Load(&cfg); err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			logger.SetAsDefault(log)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides SERVER_ADDR")

	return cmd
}

func serve(ctx context.Context, cfg contactform.Config, log *slog.Logger) error {
	opts, cleanup, err := contactform.Bootstrap(ctx, cfg, log)
	defer cleanup()
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	app, err := contactform.NewApp(cfg, append(opts, contactform.WithLogger(log))...)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	log.InfoContext(ctx, "contact form starting",
		logger.Version(version),
		slog.String("transport", cfg.Form.Transport),
		slog.String("preference_store", cfg.Form.PreferenceStore),
	)
	return app.Run(ctx)
}

func newLogger(cfg contactform.Config) (*slog.Logger, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	opts := []logger.Option{logger.WithDevelopment(cfg.AppName)}
	if cfg.IsProduction() {
		opts = []logger.Option{logger.WithProduction(cfg.AppName)}
	}
	opts = append(opts,
		logger.WithLevel(level),
		logger.WithContextExtractors(middleware.RequestIDExtractor),
	)

	return logger.New(opts...), nil
}

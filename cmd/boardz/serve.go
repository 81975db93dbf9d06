package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/boardz/internal/config"
	"github.com/dropDatabas3/boardz/internal/http/server"
	"github.com/dropDatabas3/boardz/internal/observability/logger"
)

func newServeCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Arranca el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "boardz"})
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv, err := server.Build(ctx, cfg, log)
			if err != nil {
				return err
			}

			return srv.Run(ctx)
		},
	}
}

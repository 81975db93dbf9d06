package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/boardz/internal/config"
	"github.com/dropDatabas3/boardz/internal/store/pg"
	migrations "github.com/dropDatabas3/boardz/migrations/postgres"
)

func newMigrateCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes del schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Storage.Driver != "postgres" && cfg.Storage.Driver != "pg" {
				return fmt.Errorf("migrate requiere storage.driver=postgres (actual: %q)", cfg.Storage.Driver)
			}

			ctx := context.Background()
			db, err := pg.Connect(ctx, pg.Config{DSN: cfg.Storage.DSN})
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			applied, err := pg.Migrate(ctx, db.Pool(), migrations.FS, migrations.Dir)
			if err != nil {
				return err
			}

			if len(applied) == 0 {
				fmt.Println("schema al día, nada que aplicar")
				return nil
			}
			for _, v := range applied {
				fmt.Printf("aplicada migración %04d\n", v)
			}
			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/boardz/internal/config"
	"github.com/dropDatabas3/boardz/internal/domain/repository"
	adminsvc "github.com/dropDatabas3/boardz/internal/http/services/admin"
	"github.com/dropDatabas3/boardz/internal/store"
)

// Componentes built-in del wizard. Re-correr el seed es inofensivo:
// los que ya existen se saltan.
var seedComponents = []repository.CreateComponentInput{
	{
		Name:        "about_me",
		Label:       "About Me",
		Type:        repository.TypeTextarea,
		Required:    true,
		Placeholder: "Tell us about yourself...",
	},
	{
		Name:     "birthdate",
		Label:    "Birthdate",
		Type:     repository.TypeDate,
		Required: false,
	},
	{
		Name:     "address",
		Label:    "Address",
		Type:     repository.TypeAddress,
		Required: true,
	},
}

func newSeedCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Carga los componentes built-in y la configuración por defecto de páginas",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := context.Background()
			st, err := store.New(ctx, store.Config{
				Driver:       cfg.Storage.Driver,
				DSN:          cfg.Storage.DSN,
				MaxOpenConns: cfg.Storage.Postgres.MaxOpenConns,
				MaxIdleConns: cfg.Storage.Postgres.MaxIdleConns,
			})
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			for _, input := range seedComponents {
				if _, err := st.Components().Create(ctx, input); err != nil {
					if repository.IsConflict(err) {
						fmt.Printf("componente %s ya existe, saltando\n", input.Name)
						continue
					}
					return err
				}
				fmt.Printf("componente %s creado\n", input.Name)
			}

			pages := adminsvc.NewPageService(st.Pages(), st.Components(), cfg.Onboarding.Pages, nil)
			result, err := pages.InitializeDefaults(ctx)
			if err != nil {
				return err
			}
			if !result.Initialized {
				fmt.Println("páginas ya configuradas, nada que hacer")
				return nil
			}
			for _, p := range result.Pages {
				fmt.Printf("página %d -> %v\n", p.Page, p.Components)
			}
			return nil
		},
	}
}

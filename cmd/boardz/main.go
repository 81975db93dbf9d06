// boardz es el binario del servicio: server HTTP, migraciones y seed.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/boardz/internal/config"
)

func main() {
	// .env para desarrollo local; en deploy las env vienen del entorno.
	_ = godotenv.Load()

	var configPath string

	root := &cobra.Command{
		Use:          "boardz",
		Short:        "Servicio de onboarding multi-step",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "ruta del YAML de configuración (opcional)")

	loadConfig := func() (*config.Config, error) {
		if configPath != "" {
			return config.Load(configPath)
		}
		return config.LoadFromEnv()
	}

	root.AddCommand(
		newServeCmd(loadConfig),
		newMigrateCmd(loadConfig),
		newSeedCmd(loadConfig),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package app

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/daemon"
	"github.com/folio-cms/folio/internal/logger"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(startCmd)
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the folio web service",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if err = logger.Init(cfg.Log); err != nil {
			return err //nolint:wrapcheck
		}

		log.Info().Bool("dev", cfg.DevMode).Str("engine", cfg.DB.GormEngine).Msg("configuration loaded")

		if dump, dumpErr := config.DumpConfigJSON(&cfg); dumpErr == nil {
			log.Debug().RawJSON("config", []byte(dump)).Msg("effective configuration")
		}

		return daemon.New(&cfg).Start()
	},
}

// loadConfig reads an optional .env file into the environment, then the configuration.
func loadConfig() (config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, err //nolint:wrapcheck
	}

	return config.ReadConfig(configPath, devMode) //nolint:wrapcheck
}

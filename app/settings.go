package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/folio-cms/folio/internal/db/controller/setting"
	"github.com/folio-cms/folio/internal/db/database"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(initSettingsCmd)
}

var initSettingsCmd = &cobra.Command{
	Use:   "init-settings",
	Short: "Create the database and store the default settings that are missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := database.Open(&cfg)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if err = setting.Initialize(db); err != nil {
			return err //nolint:wrapcheck
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "settings initialized (%d defaults)\n", len(setting.Defaults()))

		return err //nolint:wrapcheck
	},
}

// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio is a personal portfolio site with a small admin area",
	Long: `folio serves a personal portfolio (home, about, projects, contact)
backed by an admin area managing projects, contact messages and site settings.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Directory holding main.toml (default ./etc/)")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "Enable dev mode")
}

var (
	configPath string // Directory of the configuration file
	devMode    bool
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

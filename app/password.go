package app

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/folio-cms/folio/internal/auth"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(hashPasswordCmd)
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print the bcrypt hash of a password for Admin.Password or ADMIN_PASSWORD",
	Long: `Print the bcrypt hash of a password. Without an argument the password
is read from the first line of stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var plain string

		if len(args) == 1 {
			plain = args[0]
		} else {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read password: %w", err)
			}

			plain = strings.TrimRight(line, "\r\n")
		}

		hash, err := auth.HashPassword(plain)
		if err != nil {
			return err //nolint:wrapcheck
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)

		return err //nolint:wrapcheck
	},
}


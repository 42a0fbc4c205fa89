package app

import (
	"fmt"
	"os"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
)

const qrSize = 256

func init() { //nolint: gochecknoinits
	totpSecretCmd.Flags().StringVar(&totpAccount, "account", "admin", "Account name shown by the authenticator app")
	totpSecretCmd.Flags().StringVar(&totpQRFile, "qr", "", "Write the provisioning QR code as PNG to this file")
	rootCmd.AddCommand(totpSecretCmd)
}

var (
	totpAccount string
	totpQRFile  string

	totpSecretCmd = &cobra.Command{
		Use:   "totp-secret",
		Short: "Generate a TOTP secret for Admin.TOTPSecret or ADMIN_TOTP_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := totp.Generate(totp.GenerateOpts{
				Issuer:      "folio",
				AccountName: totpAccount,
			})
			if err != nil {
				return fmt.Errorf("generate totp secret: %w", err)
			}

			if _, err = fmt.Fprintf(cmd.OutOrStdout(), "secret: %s\nurl:    %s\n", key.Secret(), key.URL()); err != nil {
				return err //nolint:wrapcheck
			}

			if totpQRFile == "" {
				return nil
			}

			png, err := qrcode.Encode(key.URL(), qrcode.Medium, qrSize)
			if err != nil {
				return fmt.Errorf("encode qr code: %w", err)
			}

			return os.WriteFile(totpQRFile, png, 0o600) //nolint:mnd,wrapcheck
		},
	}
)

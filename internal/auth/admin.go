package auth

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/config"
)

// ValidateAdminPassword reports whether candidate matches the configured admin password.
// It is false whenever no password is configured.
func ValidateAdminPassword(cfg *config.Config, candidate string) bool {
	if cfg == nil || cfg.Admin.Password == "" {
		log.Error().Msg("admin password is not configured, set Admin.Password or ADMIN_PASSWORD")
		return false
	}

	if candidate == "" {
		return false
	}

	if IsHash(cfg.Admin.Password) {
		return VerifyPassword(candidate, cfg.Admin.Password)
	}

	return subtle.ConstantTimeCompare([]byte(candidate), []byte(cfg.Admin.Password)) == 1
}

// TOTPEnabled reports whether a second factor is configured.
func TOTPEnabled(cfg *config.Config) bool {
	return cfg != nil && cfg.Admin.TOTPSecret != ""
}

// ValidateTOTP checks code against the configured TOTP secret at the current time.
// Without a configured secret every code is accepted.
func ValidateTOTP(cfg *config.Config, code string) bool {
	return ValidateTOTPAt(cfg, code, time.Now())
}

// ValidateTOTPAt is ValidateTOTP at time t.
func ValidateTOTPAt(cfg *config.Config, code string, t time.Time) bool {
	if !TOTPEnabled(cfg) {
		return true
	}

	ok, err := totp.ValidateCustom(strings.TrimSpace(code), cfg.Admin.TOTPSecret, t, totp.ValidateOpts{
		Period:    30, //nolint:mnd
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		log.Debug().Err(err).Msg("totp validation failed")
		return false
	}

	return ok
}

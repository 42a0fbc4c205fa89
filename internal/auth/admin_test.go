package auth_test

import (
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/folio-cms/folio/internal/auth"
	"github.com/folio-cms/folio/internal/config"
)

func adminConfig(password, totpSecret string) *config.Config {
	return &config.Config{Admin: config.Admin{Password: password, TOTPSecret: totpSecret}}
}

func TestValidateAdminPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name      string
		cfg       *config.Config
		candidate string
		want      bool
	}{
		{name: "plain text match", cfg: adminConfig("letmein", ""), candidate: "letmein", want: true},
		{name: "plain text mismatch", cfg: adminConfig("letmein", ""), candidate: "letmeout"},
		{name: "prefix is not enough", cfg: adminConfig("letmein", ""), candidate: "letme"},
		{name: "hashed match", cfg: adminConfig(string(hash), ""), candidate: "letmein", want: true},
		{name: "hashed mismatch", cfg: adminConfig(string(hash), ""), candidate: "nope"},
		{name: "hash itself is not the password", cfg: adminConfig(string(hash), ""), candidate: string(hash)},
		{name: "empty candidate", cfg: adminConfig("letmein", ""), candidate: ""},
		{name: "not configured", cfg: adminConfig("", ""), candidate: ""},
		{name: "not configured with candidate", cfg: adminConfig("", ""), candidate: "anything"},
		{name: "nil config", cfg: nil, candidate: "anything"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.ValidateAdminPassword(tt.cfg, tt.candidate))
		})
	}
}

func TestValidateTOTP(t *testing.T) {
	key, err := totp.Generate(totp.GenerateOpts{Issuer: "folio", AccountName: "admin"})
	require.NoError(t, err)

	cfg := adminConfig("pw", key.Secret())
	now := time.Now()

	code, err := totp.GenerateCode(key.Secret(), now)
	require.NoError(t, err)

	assert.True(t, auth.TOTPEnabled(cfg))
	assert.True(t, auth.ValidateTOTPAt(cfg, code, now))
	assert.True(t, auth.ValidateTOTPAt(cfg, " "+code+" ", now))
	assert.False(t, auth.ValidateTOTPAt(cfg, code, now.Add(10*time.Minute)))
	assert.False(t, auth.ValidateTOTPAt(cfg, "", now))
	assert.False(t, auth.ValidateTOTPAt(cfg, "abc", now))

	disabled := adminConfig("pw", "")
	assert.False(t, auth.TOTPEnabled(disabled))
	assert.True(t, auth.ValidateTOTP(disabled, ""))
}

package session_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-cms/folio/internal/auth"
	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/db/dbtest"
	sessionAPI "github.com/folio-cms/folio/internal/web/handler/api/session"
	"github.com/folio-cms/folio/internal/web/session"
	"github.com/folio-cms/folio/internal/web/webtest"
)

func setup(t *testing.T, cfg *config.Config) (*fiber.App, *session.Manager) {
	t.Helper()

	db := dbtest.New(t)
	m := webtest.NewManager(t, cfg, db)
	app := webtest.NewApp()

	var s sessionAPI.Service
	require.NoError(t, s.Init(app, cfg, db, m))

	return app, m
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword(webtest.AdminPassword)
	require.NoError(t, err)

	tests := []struct {
		name       string
		configured string
		body       any
		wantStatus int
		wantBody   string
	}{
		{name: "plain password", configured: webtest.AdminPassword, body: map[string]string{"password": webtest.AdminPassword}, wantStatus: fiber.StatusOK, wantBody: `{"success":true}`},
		{name: "hashed password", configured: hash, body: map[string]string{"password": webtest.AdminPassword}, wantStatus: fiber.StatusOK, wantBody: `{"success":true}`},
		{name: "wrong password", configured: webtest.AdminPassword, body: map[string]string{"password": "nope"}, wantStatus: fiber.StatusUnauthorized, wantBody: `{"error":"Invalid password"}`},
		{name: "missing password", configured: webtest.AdminPassword, body: map[string]string{}, wantStatus: fiber.StatusBadRequest, wantBody: `{"error":"Password is required"}`},
		{name: "malformed body", configured: webtest.AdminPassword, body: `{"password":`, wantStatus: fiber.StatusBadRequest, wantBody: `{"error":"Invalid request body"}`},
		{name: "unconfigured password", configured: "", body: map[string]string{"password": "anything"}, wantStatus: fiber.StatusUnauthorized, wantBody: `{"error":"Invalid password"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := webtest.Config()
			cfg.Admin.Password = tt.configured
			app, m := setup(t, cfg)

			resp := webtest.Do(t, app, fiber.MethodPost, sessionAPI.LoginPath, tt.body, nil)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.JSONEq(t, tt.wantBody, webtest.Body(t, resp))

			cookie := webtest.Cookie(resp, session.CookieName)

			if tt.wantStatus != fiber.StatusOK {
				assert.Nil(t, cookie)
				return
			}

			require.NotNil(t, cookie)
			assert.True(t, cookie.HttpOnly)

			_, err := m.Lookup(cookie.Value)
			assert.NoError(t, err)
		})
	}
}

func TestLoginWithTOTP(t *testing.T) {
	key, err := totp.Generate(totp.GenerateOpts{Issuer: "folio", AccountName: "admin"})
	require.NoError(t, err)

	cfg := webtest.Config()
	cfg.Admin.TOTPSecret = key.Secret()
	app, _ := setup(t, cfg)

	resp := webtest.Do(t, app, fiber.MethodPost, sessionAPI.LoginPath,
		map[string]string{"password": webtest.AdminPassword}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Invalid authentication code"}`, webtest.Body(t, resp))

	code, err := totp.GenerateCode(key.Secret(), time.Now())
	require.NoError(t, err)

	resp = webtest.Do(t, app, fiber.MethodPost, sessionAPI.LoginPath,
		map[string]string{"password": webtest.AdminPassword, "code": code}, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLogout(t *testing.T) {
	app, m := setup(t, webtest.Config())

	cookie := webtest.SessionCookie(t, m)

	resp := webtest.Do(t, app, fiber.MethodPost, sessionAPI.LogoutPath, nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"success":true}`, webtest.Body(t, resp))

	cleared := webtest.Cookie(resp, session.CookieName)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	_, err := m.Lookup(cookie.Value)
	require.ErrorIs(t, err, session.ErrSessionNotFound)

	// logging out without a session still succeeds
	resp = webtest.Do(t, app, fiber.MethodPost, sessionAPI.LogoutPath, nil, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

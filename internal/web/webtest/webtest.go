// Package webtest holds helpers shared by the handler tests.
package webtest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/web/session"
)

// AdminPassword is the admin password of Config.
const AdminPassword = "correct horse"

// NoOpViews is a minimal fiber Views engine. It writes the "error" value of
// the bound fiber.Map when present, the template name otherwise.
type NoOpViews struct{}

// Load implements fiber.Views.
func (NoOpViews) Load() error { return nil }

// Render implements fiber.Views.
func (NoOpViews) Render(w io.Writer, name string, data any, _ ...string) error {
	if m, ok := data.(fiber.Map); ok {
		if v, exists := m["error"]; exists && v != nil {
			_, _ = fmt.Fprint(w, v)
			return nil
		}
	}

	_, _ = io.WriteString(w, name)

	return nil
}

// Config returns a valid config for handler tests.
func Config() *config.Config {
	return &config.Config{
		Title: "Portfolio",
		Admin: config.Admin{Password: AdminPassword},
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    3000,
			Session: config.Session{Secret: "test-secret", ExpiryTime: time.Hour},
		},
	}
}

// NewApp returns a fiber app rendering through NoOpViews.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{Views: NoOpViews{}})
}

// NewManager returns a session manager backed by the gorm storage of db.
func NewManager(t *testing.T, cfg *config.Config, db *gorm.DB) *session.Manager {
	t.Helper()

	storage, err := session.NewGormStorage(db, 0)
	require.NoError(t, err)

	t.Cleanup(func() { _ = storage.Close() })

	m, err := session.New(cfg, storage)
	require.NoError(t, err)

	return m
}

// SessionCookie creates a live session and returns it as a request cookie.
func SessionCookie(t *testing.T, m *session.Manager) *http.Cookie {
	t.Helper()

	token, err := m.Create(session.Data{IP: "0.0.0.0"})
	require.NoError(t, err)

	return &http.Cookie{Name: session.CookieName, Value: token}
}

// Do sends a request to app. A non-nil body is encoded as JSON unless it is a string.
func Do(t *testing.T, app *fiber.App, method, target string, body any, cookie *http.Cookie) *http.Response {
	t.Helper()

	var (
		r           io.Reader
		contentType string
	)

	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
		contentType = fiber.MIMEApplicationJSON
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)

		r = bytes.NewReader(raw)
		contentType = fiber.MIMEApplicationJSON
	}

	req := httptest.NewRequest(method, target, r)
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}

	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

// PostForm sends an url-encoded form to app.
func PostForm(t *testing.T, app *fiber.App, target, form string, cookie *http.Cookie) *http.Response {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodPost, target, strings.NewReader(form))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

// Body reads and closes the response body.
func Body(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(raw)
}

// Decode decodes the JSON response body into v.
func Decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()

	require.NoError(t, json.Unmarshal([]byte(Body(t, resp)), v))
}

// Cookie returns the response cookie with name, or nil.
func Cookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}

	return nil
}

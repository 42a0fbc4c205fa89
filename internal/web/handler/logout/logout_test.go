package logout_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-cms/folio/internal/db/dbtest"
	"github.com/folio-cms/folio/internal/web/handler/logout"
	"github.com/folio-cms/folio/internal/web/session"
	"github.com/folio-cms/folio/internal/web/webtest"
)

func TestLogout(t *testing.T) {
	db := dbtest.New(t)
	cfg := webtest.Config()
	m := webtest.NewManager(t, cfg, db)
	app := webtest.NewApp()

	var s logout.Service
	require.NoError(t, s.Init(app, cfg, db, m))

	for _, method := range []string{fiber.MethodGet, fiber.MethodPost} {
		t.Run(method, func(t *testing.T) {
			cookie := webtest.SessionCookie(t, m)

			resp := webtest.Do(t, app, method, logout.Path, nil, cookie)
			require.Equal(t, fiber.StatusFound, resp.StatusCode)
			assert.Equal(t, "/admin/login", resp.Header.Get(fiber.HeaderLocation))

			cleared := webtest.Cookie(resp, session.CookieName)
			require.NotNil(t, cleared)
			assert.Empty(t, cleared.Value)

			_, err := m.Lookup(cookie.Value)
			assert.ErrorIs(t, err, session.ErrSessionNotFound)
		})
	}
}

package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/session"
)

// UnauthorizedMsg is the error message of rejected API requests.
const UnauthorizedMsg = "Unauthorized"

// Guard returns the middleware protecting the admin pages.
func Guard(m *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, err := m.Verify(m.GetCookie(c))
		hasToken := err == nil

		if IsLoginPage(c) {
			if hasToken {
				return c.Redirect(handler.AdminPath)
			}

			return c.Next()
		}

		if !hasToken {
			return c.Redirect(handler.AdminLoginPath)
		}

		return c.Next()
	}
}

// RequireSession returns the middleware rejecting API requests without a live admin session.
func RequireSession(m *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.IsAuthenticated(c) {
			return handler.JSONError(c, fiber.StatusUnauthorized, UnauthorizedMsg)
		}

		return c.Next()
	}
}

// RequirePageSession returns the middleware sending admin page requests without a live
// session back to the login page. The cookie is cleared so the guard does not bounce
// the login page back to the dashboard.
func RequirePageSession(m *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.IsAuthenticated(c) {
			m.ClearCookie(c)

			return c.Redirect(handler.AdminLoginPath)
		}

		return c.Next()
	}
}

// IsLoginPage checks if the current request is for the admin login page.
func IsLoginPage(c *fiber.Ctx) bool {
	return normalizePath(c.Path()) == handler.AdminLoginPath
}

func normalizePath(p string) string {
	p = strings.ToLower(p)
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}

	return p
}

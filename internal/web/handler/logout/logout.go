// Package logout provides the admin logout page.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/session"
)

// Path is the path of the logout page.
const Path = handler.AdminLogoutPath

// Service is the logout handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	sm  *session.Manager
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, sm *session.Manager) error {
	if app == nil || cfg == nil || db == nil || sm == nil {
		return handler.ErrNilACD
	}

	s.cfg = cfg
	s.sm = sm

	app.Get(Path, s.Logout)
	app.Post(Path, s.Logout)

	return nil
}

// Logout revokes the session, clears the cookie and redirects to the login page.
func (s *Service) Logout(c *fiber.Ctx) error {
	if err := s.sm.Destroy(c); err != nil {
		log.Error().Err(err).Msg("failed to delete session")
	}

	return c.Redirect(handler.AdminLoginPath)
}

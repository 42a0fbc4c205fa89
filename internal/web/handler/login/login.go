// Package login provides the admin login page.
package login

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/auth"
	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/web/handler"
	sessionAPI "github.com/folio-cms/folio/internal/web/handler/api/session"
	"github.com/folio-cms/folio/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = handler.AdminLoginPath

	// TemplateName is the name of the login template.
	TemplateName = "admin/login"
)

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
	sm  *session.Manager
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, sm *session.Manager) error {
	if app == nil || cfg == nil || db == nil || sm == nil {
		return handler.ErrNilACD
	}

	s.db = db
	s.cfg = cfg
	s.sm = sm

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.Get)
		router.Post(handler.RootPath, s.Post)
	})

	return nil
}

func (s *Service) page(err error) fiber.Map {
	m := fiber.Map{
		"SiteTitle":    s.cfg.Title,
		"TOTPEnabled":  auth.TOTPEnabled(s.cfg),
		"PasswordSet":  s.cfg.Admin.Password != "",
		"LoginAPIPath": sessionAPI.LoginPath,
		"Year":         time.Now().Year(),
	}

	if err != nil {
		m["error"] = err.Error()
	}

	return m
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render(TemplateName, s.page(nil), handler.BaseLayout)
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	var cred sessionAPI.Credentials

	if err := c.BodyParser(&cred); err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.Render(TemplateName, s.page(ErrInvalidFormData), handler.BaseLayout)
	}

	if err := sessionAPI.Authenticate(s.cfg, cred); err != nil {
		status := fiber.StatusUnauthorized
		if errors.Is(err, sessionAPI.ErrPasswordRequired) {
			status = fiber.StatusBadRequest
		} else {
			log.Warn().Str("ip", c.IP()).Err(err).Msg("admin login rejected")
		}

		c.Status(status)

		return c.Render(TemplateName, s.page(err), handler.BaseLayout)
	}

	if err := sessionAPI.Start(c, s.sm); err != nil {
		log.Error().Err(err).Msg("failed to create session")

		c.Status(fiber.StatusInternalServerError)

		return c.Render(TemplateName, s.page(ErrInternalServerError), handler.BaseLayout)
	}

	return c.Redirect(handler.AdminPath)
}

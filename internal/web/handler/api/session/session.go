// Package session serves the admin login and logout API.
package session

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/auth"
	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/session"
)

const (
	// LoginPath creates an admin session.
	LoginPath = handler.APIPath + "/auth/login"

	// LogoutPath destroys the admin session.
	LogoutPath = handler.APIPath + "/auth/logout"
)

var (
	// ErrPasswordRequired is returned when the login request has no password.
	ErrPasswordRequired = errors.New("Password is required") //nolint:stylecheck,revive
	// ErrInvalidPassword is returned when the password does not match.
	ErrInvalidPassword = errors.New("Invalid password") //nolint:stylecheck,revive
	// ErrInvalidCode is returned when the second factor does not match.
	ErrInvalidCode = errors.New("Invalid authentication code") //nolint:stylecheck,revive
)

// Credentials is the body of a login request.
type Credentials struct {
	Password string `json:"password" form:"password"`
	Code     string `json:"code"     form:"code"`
}

// Service is the session API handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	sm  *session.Manager
}

// Handler is the session API handler.
var Handler = Service{}

// Init registers the login and logout routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, sm *session.Manager) error {
	if app == nil || cfg == nil || db == nil || sm == nil {
		return handler.ErrNilACD
	}

	s.cfg = cfg
	s.sm = sm

	app.Post(LoginPath, s.Login)
	app.Post(LogoutPath, s.Logout)

	return nil
}

// Authenticate checks the credentials against the configured admin password and TOTP secret.
func Authenticate(cfg *config.Config, cred Credentials) error {
	if cred.Password == "" {
		return ErrPasswordRequired
	}

	if !auth.ValidateAdminPassword(cfg, cred.Password) {
		return ErrInvalidPassword
	}

	if !auth.ValidateTOTP(cfg, cred.Code) {
		return ErrInvalidCode
	}

	return nil
}

// Start creates a session for the request and sets its cookie.
func Start(c *fiber.Ctx, sm *session.Manager) error {
	token, err := sm.Create(session.Data{IP: c.IP(), UserAgent: c.Get(fiber.HeaderUserAgent)})
	if err != nil {
		return err //nolint:wrapcheck
	}

	sm.SetCookie(c, token)

	log.Info().Str("ip", c.IP()).Msg("admin logged in")

	return nil
}

// Login verifies the credentials and sets the session cookie.
func (s *Service) Login(c *fiber.Ctx) error {
	var cred Credentials
	if err := c.BodyParser(&cred); err != nil {
		return handler.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	err := Authenticate(s.cfg, cred)

	switch {
	case errors.Is(err, ErrPasswordRequired):
		return handler.JSONError(c, fiber.StatusBadRequest, err.Error())
	case err != nil:
		log.Warn().Str("ip", c.IP()).Err(err).Msg("admin login rejected")
		return handler.JSONError(c, fiber.StatusUnauthorized, err.Error())
	}

	if err = Start(c, s.sm); err != nil {
		log.Error().Err(err).Msg("failed to create session")
		return handler.JSONError(c, fiber.StatusInternalServerError, "Failed to create session")
	}

	return handler.JSONSuccess(c)
}

// Logout revokes the session and clears its cookie. It always succeeds.
func (s *Service) Logout(c *fiber.Ctx) error {
	if err := s.sm.Destroy(c); err != nil {
		log.Warn().Err(err).Msg("failed to revoke session")
	}

	return handler.JSONSuccess(c)
}

// Package contact serves the public contact endpoint.
package contact

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/config"
	messageController "github.com/folio-cms/folio/internal/db/controller/message"
	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/session"
)

// Path receives contact form submissions.
const Path = handler.APIPath + "/contact"

// Service is the contact API handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the contact API handler.
var Handler = Service{}

// Init registers the contact route. It is public.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, sm *session.Manager) error {
	if app == nil || cfg == nil || db == nil || sm == nil {
		return handler.ErrNilACD
	}

	s.cfg = cfg
	s.db = db

	app.Post(Path, s.Post)

	return nil
}

// Post stores a contact message and answers 201 with it.
func (s *Service) Post(c *fiber.Ctx) error {
	var in messageController.Input
	if err := c.BodyParser(&in); err != nil {
		return handler.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	m, err := messageController.Create(s.db.WithContext(c.UserContext()), in)
	if errors.Is(err, messageController.ErrInvalidMessage) {
		return handler.JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to store contact message")
		return handler.JSONError(c, fiber.StatusInternalServerError, "Failed to send message")
	}

	log.Info().Uint64("id", m.ID).Msg("contact message received")

	return c.Status(fiber.StatusCreated).JSON(m)
}

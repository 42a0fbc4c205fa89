// Package message serves the admin message API.
package message

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/config"
	messageController "github.com/folio-cms/folio/internal/db/controller/message"
	"github.com/folio-cms/folio/internal/web/handler"
	authmiddleware "github.com/folio-cms/folio/internal/web/middleware/auth"
	"github.com/folio-cms/folio/internal/web/session"
)

// Path is the path of the message collection.
const Path = handler.APIPath + "/messages"

// Service is the message API handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the message API handler.
var Handler = Service{}

// PatchBody is the body of PATCH /api/messages/:id.
type PatchBody struct {
	Read *bool `json:"read"`
}

// Init registers the message routes. Every route requires an admin session.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, sm *session.Manager) error {
	if app == nil || cfg == nil || db == nil || sm == nil {
		return handler.ErrNilACD
	}

	s.cfg = cfg
	s.db = db

	app.Route(Path, func(router fiber.Router) {
		router.Use(authmiddleware.RequireSession(sm))
		router.Get(handler.RootPath, s.List)
		router.Patch("/:id", s.Patch)
		router.Delete("/:id", s.Delete)
	})

	return nil
}

// List returns every message, newest first.
func (s *Service) List(c *fiber.Ctx) error {
	messages, err := messageController.GetAll(s.db.WithContext(c.UserContext()))
	if err != nil {
		log.Error().Err(err).Msg("failed to list messages")
		return handler.JSONError(c, fiber.StatusInternalServerError, "Failed to fetch messages")
	}

	return c.JSON(messages)
}

// Patch sets the read flag of a message.
func (s *Service) Patch(c *fiber.Ctx) error {
	id, ok := handler.ParamID(c)
	if !ok {
		return handler.JSONError(c, fiber.StatusBadRequest, "Invalid message id")
	}

	var body PatchBody
	if err := c.BodyParser(&body); err != nil || body.Read == nil {
		return handler.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	m, err := messageController.SetRead(s.db.WithContext(c.UserContext()), id, *body.Read)
	if errors.Is(err, messageController.ErrMessageNotFound) {
		return handler.JSONError(c, fiber.StatusNotFound, "Message not found")
	}

	if err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("failed to update message")
		return handler.JSONError(c, fiber.StatusInternalServerError, "Failed to update message")
	}

	return c.JSON(m)
}

// Delete removes a message.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok := handler.ParamID(c)
	if !ok {
		return handler.JSONError(c, fiber.StatusBadRequest, "Invalid message id")
	}

	err := messageController.Delete(s.db.WithContext(c.UserContext()), id)
	if errors.Is(err, messageController.ErrMessageNotFound) {
		return handler.JSONError(c, fiber.StatusNotFound, "Message not found")
	}

	if err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("failed to delete message")
		return handler.JSONError(c, fiber.StatusInternalServerError, "Failed to delete message")
	}

	return handler.JSONSuccess(c)
}

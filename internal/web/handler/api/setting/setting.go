// Package setting serves the admin settings API.
package setting

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/config"
	settingController "github.com/folio-cms/folio/internal/db/controller/setting"
	"github.com/folio-cms/folio/internal/web/handler"
	authmiddleware "github.com/folio-cms/folio/internal/web/middleware/auth"
	"github.com/folio-cms/folio/internal/web/session"
)

// Path is the path of the settings map.
const Path = handler.APIPath + "/settings"

// Service is the settings API handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the settings API handler.
var Handler = Service{}

// Init registers the settings routes. Every route requires an admin session.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, sm *session.Manager) error {
	if app == nil || cfg == nil || db == nil || sm == nil {
		return handler.ErrNilACD
	}

	s.cfg = cfg
	s.db = db

	app.Route(Path, func(router fiber.Router) {
		router.Use(authmiddleware.RequireSession(sm))
		router.Get(handler.RootPath, s.Get)
		router.Put(handler.RootPath, s.Put)
	})

	return nil
}

// Get returns every stored setting as one object.
func (s *Service) Get(c *fiber.Ctx) error {
	settings, err := settingController.GetAll(s.db.WithContext(c.UserContext()))
	if err != nil {
		log.Error().Err(err).Msg("failed to read settings")
		return handler.JSONError(c, fiber.StatusInternalServerError, "Failed to fetch settings")
	}

	return c.JSON(settings)
}

// Put stores every entry of the body. Entries are all written or none is.
func (s *Service) Put(c *fiber.Ctx) error {
	var values map[string]json.RawMessage
	if err := c.BodyParser(&values); err != nil || values == nil {
		return handler.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	err := settingController.SetMany(s.db.WithContext(c.UserContext()), values)

	switch {
	case err == nil:
		log.Info().Int("count", len(values)).Msg("settings updated")
		return handler.JSONSuccess(c)
	case errors.Is(err, settingController.ErrInvalidValue), errors.Is(err, settingController.ErrSettingKeyEmpty):
		return handler.JSONError(c, fiber.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("failed to update settings")
		return handler.JSONError(c, fiber.StatusInternalServerError, "Failed to update settings")
	}
}

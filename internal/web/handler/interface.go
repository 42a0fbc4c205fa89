package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/web/session"
)

// ErrNilACD is returned by Init when app, cfg, db or the session manager is nil.
var ErrNilACD = errors.New(ErrNilACDFatalLogMsg)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, db *gorm.DB, sm *session.Manager) error
}

// Package dashboard provides the admin overview page.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/config"
	messageController "github.com/folio-cms/folio/internal/db/controller/message"
	projectController "github.com/folio-cms/folio/internal/db/controller/project"
	"github.com/folio-cms/folio/internal/db/models"
	"github.com/folio-cms/folio/internal/web/handler"
	authmiddleware "github.com/folio-cms/folio/internal/web/middleware/auth"
	"github.com/folio-cms/folio/internal/web/navigation"
	"github.com/folio-cms/folio/internal/web/session"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.AdminPath

	// TemplateName is the name of the dashboard template.
	TemplateName = "admin/dashboard"

	// RecentMessages is the number of messages listed on the dashboard.
	RecentMessages = 5
)

// Data represents the complete dashboard data.
type Data struct {
	Projects       projectController.Summary
	Messages       int
	Unread         int64
	RecentMessages []models.Message
	RecentProjects []models.Project
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler. The page requires a live session on top of the route guard.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, sm *session.Manager) error {
	if app == nil || cfg == nil || db == nil || sm == nil {
		return handler.ErrNilACD
	}

	s.db = db
	s.cfg = cfg

	app.Get(Path, authmiddleware.RequirePageSession(sm), s.Get)

	return nil
}

// Load collects the dashboard figures.
func Load(db *gorm.DB) (Data, error) {
	stats, err := projectController.Stats(db)
	if err != nil {
		return Data{}, err
	}

	messages, err := messageController.GetAll(db)
	if err != nil {
		return Data{}, err
	}

	projects, err := projectController.GetAll(db)
	if err != nil {
		return Data{}, err
	}

	return Data{
		Projects:       stats,
		Messages:       len(messages),
		Unread:         int64(lo.CountBy(messages, func(m models.Message) bool { return !m.Read })),
		RecentMessages: lo.Slice(messages, 0, RecentMessages),
		RecentProjects: lo.Slice(projects, 0, RecentMessages),
	}, nil
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Dashboard", navigation.SectionAdmin, "dashboard").
		AddBreadcrumb("Admin", Path, false).
		AddBreadcrumb("Dashboard", Path, true)

	data, err := Load(s.db.WithContext(c.UserContext()))
	if err != nil {
		log.Error().Err(err).Msg("failed to load dashboard")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load dashboard")
	}

	log.Debug().
		Int64("projects", data.Projects.Total).
		Int("messages", data.Messages).
		Int64("unread", data.Unread).
		Msg("dashboard loaded")

	return c.Render(TemplateName, fiber.Map{
		"SiteTitle":  s.cfg.Title,
		"Navigation": nav,
		"Data":       data,
	}, handler.AdminLayout)
}

// Package portfolio provides the public pages of the site.
package portfolio

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/db/controller/profile"
	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/navigation"
	"github.com/folio-cms/folio/internal/web/session"
)

const (
	// AboutPath is the path of the about page.
	AboutPath = "/about"

	// ProjectsPath is the path of the project list. Project pages live below it.
	ProjectsPath = "/projects"

	// ContactPath is the path of the contact page.
	ContactPath = "/contact"
)

// Template names.
const (
	HomeTemplate     = "pages/home"
	AboutTemplate    = "pages/about"
	ProjectsTemplate = "pages/projects"
	ProjectTemplate  = "pages/project"
	ContactTemplate  = "pages/contact"
	NotFoundTemplate = "pages/not_found"
)

// Service is the portfolio handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the portfolio handler.
var Handler = Service{}

// Init registers the public pages.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, sm *session.Manager) error {
	if app == nil || cfg == nil || db == nil || sm == nil {
		return handler.ErrNilACD
	}

	s.cfg = cfg
	s.db = db

	app.Get(handler.RootPath, s.Home)
	app.Get(AboutPath, s.About)
	app.Get(ProjectsPath, s.Projects)
	app.Get(ProjectsPath+"/:slug", s.Project)
	app.Route(ContactPath, func(router fiber.Router) {
		router.Get(handler.RootPath, s.Contact)
		router.Post(handler.RootPath, s.PostContact)
	})

	return nil
}

// render renders a public page with the site profile and navigation bound.
func (s *Service) render(c *fiber.Ctx, name string, p *profile.Profile, nav *navigation.Context, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}

	data["Profile"] = p
	data["SiteTitle"] = p.SiteTitle
	data["Navigation"] = nav
	data["Year"] = yearNow()

	return c.Render(name, data, handler.BaseLayout)
}

// loadProfile reads the site profile. Storage errors fall back to the defaults.
func (s *Service) loadProfile(c *fiber.Ctx) *profile.Profile {
	var p profile.Profile

	if err := p.Load(s.db.WithContext(c.UserContext())); err != nil {
		log.Error().Err(err).Msg("failed to load profile, using defaults")

		p = profile.Default()
	}

	return &p
}

func (s *Service) notFound(c *fiber.Ctx, p *profile.Profile) error {
	c.Status(fiber.StatusNotFound)

	return s.render(c, NotFoundTemplate, p, navigation.NewContext("Not found", "", "not_found"), nil)
}

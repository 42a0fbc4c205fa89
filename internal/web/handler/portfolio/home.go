package portfolio

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	projectController "github.com/folio-cms/folio/internal/db/controller/project"
	"github.com/folio-cms/folio/internal/db/models"
	"github.com/folio-cms/folio/internal/web/navigation"
)

var yearNow = func() int { return time.Now().Year() }

// Home renders the landing page with the featured published projects.
func (s *Service) Home(c *fiber.Ctx) error {
	p := s.loadProfile(c)

	featured, err := projectController.GetFeatured(s.db.WithContext(c.UserContext()))
	if err != nil {
		log.Error().Err(err).Msg("failed to load featured projects")
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load projects")
	}

	nav := navigation.NewContext(p.SiteTitle, navigation.SectionHome, "home")

	return s.render(c, HomeTemplate, p, nav, fiber.Map{
		"Projects": visible(featured),
	})
}

// About renders the bio, skills and social links.
func (s *Service) About(c *fiber.Ctx) error {
	p := s.loadProfile(c)

	nav := navigation.NewContext("About", navigation.SectionAbout, "about").
		AddBreadcrumb("Home", "/", false).
		AddBreadcrumb("About", AboutPath, true)

	return s.render(c, AboutTemplate, p, nav, nil)
}

// visible drops the projects that are not published.
func visible(projects []models.Project) []models.Project {
	out := make([]models.Project, 0, len(projects))

	for i := range projects {
		if projects[i].Published() {
			out = append(out, projects[i])
		}
	}

	return out
}

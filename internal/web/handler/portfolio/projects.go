package portfolio

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	projectController "github.com/folio-cms/folio/internal/db/controller/project"
	"github.com/folio-cms/folio/internal/markdown"
	"github.com/folio-cms/folio/internal/web/navigation"
)

// Projects renders every published project.
func (s *Service) Projects(c *fiber.Ctx) error {
	p := s.loadProfile(c)

	projects, err := projectController.GetPublished(s.db.WithContext(c.UserContext()))
	if err != nil {
		log.Error().Err(err).Msg("failed to load published projects")
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load projects")
	}

	nav := navigation.NewContext("Projects", navigation.SectionProjects, "list").
		AddBreadcrumb("Home", "/", false).
		AddBreadcrumb("Projects", ProjectsPath, true)

	return s.render(c, ProjectsTemplate, p, nav, fiber.Map{
		"Projects": projects,
	})
}

// Project renders one published project with its markdown content.
// Drafts and unknown slugs answer 404.
func (s *Service) Project(c *fiber.Ctx) error {
	p := s.loadProfile(c)

	project, err := projectController.GetBySlug(s.db.WithContext(c.UserContext()), c.Params("slug"))
	if err != nil {
		log.Error().Err(err).Str("slug", c.Params("slug")).Msg("failed to load project")
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load project")
	}

	if project == nil || !project.Published() {
		return s.notFound(c, p)
	}

	data := fiber.Map{"Project": project}

	if project.Content != nil {
		content, err := markdown.Render(*project.Content)
		if err != nil {
			log.Error().Err(err).Uint64("id", project.ID).Msg("failed to render project content")
			return c.Status(fiber.StatusInternalServerError).SendString("Failed to render project")
		}

		data["Content"] = content
	}

	nav := navigation.NewContext(project.Title, navigation.SectionProjects, "detail").
		AddBreadcrumb("Home", "/", false).
		AddBreadcrumb("Projects", ProjectsPath, false).
		AddBreadcrumb(project.Title, ProjectsPath+"/"+project.Slug, true)

	return s.render(c, ProjectTemplate, p, nav, data)
}

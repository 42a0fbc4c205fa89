// Package project serves the admin project API.
package project

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/config"
	projectController "github.com/folio-cms/folio/internal/db/controller/project"
	"github.com/folio-cms/folio/internal/slug"
	"github.com/folio-cms/folio/internal/web/handler"
	authmiddleware "github.com/folio-cms/folio/internal/web/middleware/auth"
	"github.com/folio-cms/folio/internal/web/session"
)

const (
	// Path is the path of the project collection.
	Path = handler.APIPath + "/projects"

	// SlugPath derives a slug from the title query parameter.
	SlugPath = handler.APIPath + "/slug"
)

// Service is the project API handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the project API handler.
var Handler = Service{}

// Init registers the project routes. Every route requires an admin session.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, sm *session.Manager) error {
	if app == nil || cfg == nil || db == nil || sm == nil {
		return handler.ErrNilACD
	}

	s.cfg = cfg
	s.db = db

	requireSession := authmiddleware.RequireSession(sm)

	app.Route(Path, func(router fiber.Router) {
		router.Use(requireSession)
		router.Get(handler.RootPath, s.List)
		router.Post(handler.RootPath, s.Create)
		router.Get("/:id", s.Get)
		router.Put("/:id", s.Update)
		router.Delete("/:id", s.Delete)
	})

	app.Get(SlugPath, requireSession, s.Slug)

	return nil
}

// List returns every project, newest first.
func (s *Service) List(c *fiber.Ctx) error {
	projects, err := projectController.GetAll(s.db.WithContext(c.UserContext()))
	if err != nil {
		log.Error().Err(err).Msg("failed to list projects")
		return handler.JSONError(c, fiber.StatusInternalServerError, "Failed to fetch projects")
	}

	return c.JSON(projects)
}

// Get returns a single project.
func (s *Service) Get(c *fiber.Ctx) error {
	id, ok := handler.ParamID(c)
	if !ok {
		return handler.JSONError(c, fiber.StatusBadRequest, "Invalid project id")
	}

	p, err := projectController.GetByID(s.db.WithContext(c.UserContext()), id)
	if err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("failed to get project")
		return handler.JSONError(c, fiber.StatusInternalServerError, "Failed to fetch project")
	}

	if p == nil {
		return handler.JSONError(c, fiber.StatusNotFound, "Project not found")
	}

	return c.JSON(p)
}

// Create stores a new project and answers 201 with it.
func (s *Service) Create(c *fiber.Ctx) error {
	var in projectController.Input
	if err := c.BodyParser(&in); err != nil {
		return handler.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	p, err := projectController.Create(s.db.WithContext(c.UserContext()), in)
	if err != nil {
		return writeError(c, err, "Failed to create project")
	}

	log.Info().Uint64("id", p.ID).Str("slug", p.Slug).Msg("project created")

	return c.Status(fiber.StatusCreated).JSON(p)
}

// Update replaces every mutable field of a project.
func (s *Service) Update(c *fiber.Ctx) error {
	id, ok := handler.ParamID(c)
	if !ok {
		return handler.JSONError(c, fiber.StatusBadRequest, "Invalid project id")
	}

	var in projectController.Input
	if err := c.BodyParser(&in); err != nil {
		return handler.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	p, err := projectController.Update(s.db.WithContext(c.UserContext()), id, in)
	if err != nil {
		return writeError(c, err, "Failed to update project")
	}

	return c.JSON(p)
}

// Delete removes a project.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok := handler.ParamID(c)
	if !ok {
		return handler.JSONError(c, fiber.StatusBadRequest, "Invalid project id")
	}

	if err := projectController.Delete(s.db.WithContext(c.UserContext()), id); err != nil {
		return writeError(c, err, "Failed to delete project")
	}

	log.Info().Uint64("id", id).Msg("project deleted")

	return handler.JSONSuccess(c)
}

// Slug derives a slug from the title query parameter.
func (s *Service) Slug(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"slug": slug.Generate(c.Query("title"))})
}

func writeError(c *fiber.Ctx, err error, failMsg string) error {
	switch {
	case errors.Is(err, projectController.ErrInvalidProject):
		return handler.JSONError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, projectController.ErrProjectNotFound):
		return handler.JSONError(c, fiber.StatusNotFound, "Project not found")
	case errors.Is(err, projectController.ErrSlugTaken):
		return handler.JSONError(c, fiber.StatusConflict, "A project with this slug already exists")
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg(failMsg)
		return handler.JSONError(c, fiber.StatusInternalServerError, failMsg)
	}
}

// Package project provides data access for portfolio projects.
package project

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/folio-cms/folio/internal/db/models"
)

// Summary counts projects for the dashboard.
type Summary struct {
	Total     int64
	Published int64
	Draft     int64
	Featured  int64
}

type statusCount struct {
	Status   models.ProjectStatus
	Featured bool
	Count    int64
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true})
}

// byDisplayOrder sorts by the order column first. It is quoted since order is a keyword.
func byDisplayOrder(db *gorm.DB) *gorm.DB {
	return newestFirst(db.Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}, Desc: true}))
}

// GetPublished returns published projects, highest order first, then newest.
func GetPublished(db *gorm.DB) ([]models.Project, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var out []models.Project

	err := byDisplayOrder(db.Where(&models.Project{Status: models.ProjectStatusPublished})).Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("get published projects: %w", err)
	}

	return out, nil
}

// GetFeatured returns featured projects in the same order as GetPublished, whatever their status.
func GetFeatured(db *gorm.DB) ([]models.Project, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var out []models.Project

	err := byDisplayOrder(db.Where(&models.Project{Featured: true})).Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("get featured projects: %w", err)
	}

	return out, nil
}

// GetAll returns every project, newest first.
func GetAll(db *gorm.DB) ([]models.Project, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var out []models.Project
	if err := newestFirst(db).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("get projects: %w", err)
	}

	return out, nil
}

// GetBySlug returns the project with slug, or nil if there is none.
func GetBySlug(db *gorm.DB, slug string) (*models.Project, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if slug == "" {
		return nil, nil //nolint:nilnil
	}

	return first(db.Where(&models.Project{Slug: slug}))
}

// GetByID returns the project with id, or nil if there is none.
func GetByID(db *gorm.DB, id uint64) (*models.Project, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	return first(db.Where("id = ?", id))
}

func first(db *gorm.DB) (*models.Project, error) {
	var p models.Project

	err := db.Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil //nolint:nilnil
	}

	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &p, nil
}

// Create validates in and inserts a new project.
func Create(db *gorm.DB, in Input) (*models.Project, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	if err := ensureSlugFree(db, in.Slug, 0); err != nil {
		return nil, err
	}

	var p models.Project
	in.apply(&p)

	if err := db.Create(&p).Error; err != nil {
		return nil, writeError("create", err)
	}

	return &p, nil
}

// Update replaces every mutable field of project id and refreshes its updated timestamp.
func Update(db *gorm.DB, id uint64, in Input) (*models.Project, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	existing, err := GetByID(db, id)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return nil, ErrProjectNotFound
	}

	if err = ensureSlugFree(db, in.Slug, id); err != nil {
		return nil, err
	}

	in.apply(existing)

	if err = db.Save(existing).Error; err != nil {
		return nil, writeError("update", err)
	}

	return existing, nil
}

// Delete removes project id permanently.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Project{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete project: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}

	return nil
}

// Stats counts projects by status.
func Stats(db *gorm.DB) (Summary, error) {
	if db == nil {
		return Summary{}, ErrDBNil
	}

	var rows []statusCount

	err := db.Model(&models.Project{}).
		Select("status, featured, count(*) AS count").
		Group("status").
		Group("featured").
		Scan(&rows).Error
	if err != nil {
		return Summary{}, fmt.Errorf("project stats: %w", err)
	}

	count := func(keep func(statusCount) bool) int64 {
		return lo.SumBy(rows, func(r statusCount) int64 {
			if keep(r) {
				return r.Count
			}

			return 0
		})
	}

	return Summary{
		Total:     count(func(statusCount) bool { return true }),
		Published: count(func(r statusCount) bool { return r.Status == models.ProjectStatusPublished }),
		Draft:     count(func(r statusCount) bool { return r.Status == models.ProjectStatusDraft }),
		Featured:  count(func(r statusCount) bool { return r.Featured }),
	}, nil
}

// ensureSlugFree fails with ErrSlugTaken if a project other than id uses slug.
func ensureSlugFree(db *gorm.DB, slug string, id uint64) error {
	var count int64

	err := db.Model(&models.Project{}).
		Where(&models.Project{Slug: slug}).
		Where("id <> ?", id).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("check slug: %w", err)
	}

	if count > 0 {
		return ErrSlugTaken
	}

	return nil
}

// writeError maps the unique index violation of a concurrent writer to ErrSlugTaken.
func writeError(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || uniqueViolation(err) {
		return ErrSlugTaken
	}

	return fmt.Errorf("%s project: %w", op, err)
}

// uniqueViolation matches driver messages for dialects without an error translator.
func uniqueViolation(err error) bool {
	msg := err.Error()

	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}

package project

import "errors"

var (
	// ErrProjectNotFound is returned when no project has the given id.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidProject is returned when an input fails validation.
	ErrInvalidProject = errors.New("invalid project")
	// ErrSlugTaken is returned when another project already uses the slug.
	ErrSlugTaken = errors.New("slug already in use")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

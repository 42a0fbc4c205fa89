package config

import (
	"errors"
)

var (
	// ErrConfigNil error if a nil config is handed to a constructor.
	ErrConfigNil = errors.New("config is nil")

	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")

	// ErrSessionSecretEmpty error if no session secret is configured outside dev mode.
	ErrSessionSecretEmpty = errors.New("config webserver.session.secret (or SESSION_SECRET) can not be empty")

	// ErrUnknownGormEngine error if db.gormengine is not one of sqlite, mysql, postgres.
	ErrUnknownGormEngine = errors.New("config db.gormengine must be sqlite, mysql or postgres")
)

// Package database opens the shared gorm handle and keeps the schema current.
package database

import (
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/db/dsn"
	"github.com/folio-cms/folio/internal/db/models"
	gormlogger "github.com/folio-cms/folio/internal/logger/adapter/gorm"
)

// Dialector returns the gorm dialector for the configured engine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	source, err := dsn.Create(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return mysql.Open(source), nil
	case config.EnginePostgres:
		return postgres.Open(source), nil
	default:
		return sqlite.Open(source), nil
	}
}

// Open creates the database if needed, opens it and migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg == nil {
		return nil, config.ErrConfigNil
	}

	if isSQLiteFile(cfg.DB) {
		if err := os.MkdirAll(filepath.Dir(cfg.DB.Path), 0o750); err != nil { //nolint:mnd
			return nil, errors.Wrap(err, "create database directory")
		}
	}

	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.New(nil),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", engineName(cfg.DB))
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates missing tables, columns and indexes. It never drops anything.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return errors.Wrap(err, "migrate database")
	}

	return nil
}

func isSQLiteFile(db config.DB) bool {
	return (db.GormEngine == "" || db.GormEngine == config.EngineSQLite) && db.Path != ":memory:"
}

func engineName(db config.DB) string {
	if db.GormEngine == "" {
		return config.EngineSQLite
	}

	return db.GormEngine
}

// Package daemon wires config, storage, sessions and the web service together.
package daemon

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/db/database"
	"github.com/folio-cms/folio/internal/web"
	"github.com/folio-cms/folio/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	storage    fiber.Storage
	webService *web.Service
}

// Start serves HTTP until SIGINT or SIGTERM, then shuts down gracefully.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)

	log.Info().Str("addr", addr).Str("url", d.cfg.Webserver.URL).Msg("starting web service")

	go func() {
		_ = d.webService.Start(addr)
	}()

	d.webService.WaitShutdown()

	return d.Close()
}

// Close releases the session storage.
func (d *Daemon) Close() error {
	if d.storage == nil {
		return nil
	}

	if err := d.storage.Close(); err != nil {
		return fmt.Errorf("close session storage: %w", err)
	}

	return nil
}

// Build opens the database, seeds the default settings and creates the web service.
func Build(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, config.ErrConfigNil
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err = seed(cfg, db); err != nil {
		return nil, err
	}

	storage, err := session.NewStorage(cfg, db)
	if err != nil {
		return nil, err
	}

	sm, err := session.New(cfg, storage)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}

	webService, err := web.New(cfg, db, sm)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		db:         db,
		storage:    storage,
		webService: webService,
	}, nil
}

// New creates a new Daemon instance with the provided configuration.
// Any failure is fatal.
func New(cfg *config.Config) *Daemon {
	d, err := Build(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize daemon")
		return nil
	}

	return d
}

package session

import (
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/mysql/v2"
	"github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/db/dsn"
	"github.com/folio-cms/folio/internal/db/models"
)

// StorageTable is the table used by the mysql and postgres session storages.
const StorageTable = "admin_sessions"

// DefaultGCInterval is how often expired records are removed.
const DefaultGCInterval = 10 * time.Minute

// NewStorage returns the session storage for the configured engine.
// sqlite keeps sessions in the sessions table of db, mysql and postgres use the gofiber storages.
func NewStorage(cfg *config.Config, db *gorm.DB) (fiber.Storage, error) {
	if cfg == nil {
		return nil, config.ErrConfigNil
	}

	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		uri, err := dsn.Create(cfg)
		if err != nil {
			return nil, err
		}

		return mysql.New(mysql.Config{
			ConnectionURI: uri,
			Table:         StorageTable,
			GCInterval:    DefaultGCInterval,
		}), nil
	case config.EnginePostgres:
		uri, err := dsn.Create(cfg)
		if err != nil {
			return nil, err
		}

		return postgres.New(postgres.Config{
			ConnectionURI: uri,
			Table:         StorageTable,
			GCInterval:    DefaultGCInterval,
		}), nil
	default:
		return NewGormStorage(db, DefaultGCInterval)
	}
}

// GormStorage implements fiber.Storage on the sessions table.
type GormStorage struct {
	db   *gorm.DB
	now  func() time.Time
	done chan struct{}
	once sync.Once
}

var _ fiber.Storage = (*GormStorage)(nil)

// ErrDBNil is returned when the storage is created without a database.
var ErrDBNil = errors.New("database connection is nil")

// NewGormStorage creates the storage and starts removing expired records every gcInterval.
// A gcInterval <= 0 disables the collector.
func NewGormStorage(db *gorm.DB, gcInterval time.Duration) (*GormStorage, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	s := &GormStorage{
		db:   db,
		now:  time.Now,
		done: make(chan struct{}),
	}

	if gcInterval > 0 {
		go s.gcTicker(gcInterval)
	}

	return s, nil
}

// Get returns the value of key, or nil if it is missing or expired.
func (s *GormStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}

	var row models.Session

	err := s.db.Where("id = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if row.ExpiresAt != 0 && row.ExpiresAt <= s.now().Unix() {
		return nil, nil
	}

	return row.Data, nil
}

// Set stores val under key. exp 0 never expires.
func (s *GormStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}

	row := models.Session{ID: key, Data: val}
	if exp > 0 {
		row.ExpiresAt = s.now().Add(exp).Unix()
	}

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "expires_at"}),
	}).Create(&row).Error
}

// Delete removes key.
func (s *GormStorage) Delete(key string) error {
	if key == "" {
		return nil
	}

	return s.db.Where("id = ?", key).Delete(&models.Session{}).Error
}

// Reset removes every session.
func (s *GormStorage) Reset() error {
	return s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Session{}).Error
}

// Close stops the collector. The database handle stays open.
func (s *GormStorage) Close() error {
	s.once.Do(func() { close(s.done) })

	return nil
}

// GC removes expired records.
func (s *GormStorage) GC() error {
	return s.db.
		Where("expires_at <> 0 AND expires_at <= ?", s.now().Unix()).
		Delete(&models.Session{}).Error
}

func (s *GormStorage) gcTicker(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if err := s.GC(); err != nil {
				log.Warn().Err(err).Msg("session gc failed")
			}
		}
	}
}

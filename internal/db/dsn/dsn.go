// Package dsn builds Data Source Names for the configured gorm engine.
package dsn

import (
	"fmt"
	"strings"

	"github.com/folio-cms/folio/internal/config"
)

// SQLitePragmas are appended to every sqlite file DSN.
const SQLitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"

// Create builds the Data Source Name from the configuration.
func Create(cfg *config.Config) (string, error) {
	db := cfg.DB

	switch db.GormEngine {
	case config.EngineSQLite, "":
		return SQLite(db.Path, db.Extras), nil
	case config.EngineMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			db.User,
			db.Password,
			db.Host,
			db.Port,
			db.Name,
			db.Extras,
		), nil
	case config.EnginePostgres:
		out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
			db.Host,
			db.Port,
			db.User,
			db.Password,
			db.Name,
		)

		if db.Extras != "" {
			out += " " + db.Extras
		}

		return out, nil
	default:
		return "", fmt.Errorf("%w: %q", config.ErrUnknownGormEngine, db.GormEngine)
	}
}

// SQLite returns the DSN for a sqlite file, or for a shared in-memory database when path is ":memory:".
func SQLite(path, extras string) string {
	params := SQLitePragmas
	if extras != "" {
		params += "&" + strings.TrimPrefix(extras, "?")
	}

	if path == ":memory:" {
		return "file::memory:?" + params
	}

	return "file:" + path + "?" + params
}

package daemon

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/auth"
	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/db/controller/setting"
)

// seed stores the default settings that are missing and reports an unusable admin login.
func seed(cfg *config.Config, db *gorm.DB) error {
	if err := setting.Initialize(db); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	switch {
	case cfg.Admin.Password == "":
		log.Warn().Msg("no admin password configured, the admin area is locked until ADMIN_PASSWORD is set")
	case !auth.IsHash(cfg.Admin.Password) && !cfg.DevMode:
		log.Warn().Msg("admin password is stored in plain text, consider `folio hash-password`")
	}

	return nil
}

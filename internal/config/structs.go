package config

import (
	"time"

	"github.com/folio-cms/folio/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
	Secret     string // HMAC key for session tokens, env SESSION_SECRET
}

// Admin holds the single operator credential.
type Admin struct {
	Password   string // plaintext or bcrypt/argon2id hash, env ADMIN_PASSWORD
	TOTPSecret string // optional base32 TOTP secret, env ADMIN_TOTP_SECRET
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Admin     Admin
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool    // allow multi slash requests
	DisableRecover bool    // disable recover middleware
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	Session        Session // session settings
}

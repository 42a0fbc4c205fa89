// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvConfigJSON holds a JSON document merged over the file config.
	EnvConfigJSON = "FOLIO_CONFIG_JSON"

	// DefaultSessionExpiry is the session cookie and record lifetime.
	DefaultSessionExpiry = 7 * 24 * time.Hour

	// DefaultDBPath is the sqlite store used when no path is configured.
	DefaultDBPath = "./data/portfolio.db"

	devSessionSecret = "dev-secret"

	redactedValue = "<redacted>"
)

// ReadConfig from config file. devMode forces dev mode on top of the file setting.
func ReadConfig(path string, devMode bool) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(path, "main.toml"))
	v.SetConfigType("toml")

	// secrets never need to live in the toml file
	_ = v.BindEnv("Admin.Password", "ADMIN_PASSWORD")
	_ = v.BindEnv("Admin.TOTPSecret", "ADMIN_TOTP_SECRET")
	_ = v.BindEnv("Webserver.Session.Secret", "SESSION_SECRET")

	if err = v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	if devMode {
		c.DevMode = true
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode "+EnvConfigJSON)
	}

	return c, nil
}

// DumpConfigJSON config as JSON String. Secrets are redacted.
func DumpConfigJSON(c *Config) (string, error) {
	redacted := *c
	redacted.Admin.Password = redact(c.Admin.Password)
	redacted.Admin.TOTPSecret = redact(c.Admin.TOTPSecret)
	redacted.Webserver.Session.Secret = redact(c.Webserver.Session.Secret)
	redacted.DB.Password = redact(c.DB.Password)
	redacted.Log.DataDog.APIKey = redact(c.Log.DataDog.APIKey)

	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(&redacted); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

func redact(s string) string {
	if s == "" {
		return ""
	}

	return redactedValue
}

// validate minimal config settings and fill defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	if c.Webserver.Session.ExpiryTime == 0 {
		c.Webserver.Session.ExpiryTime = DefaultSessionExpiry
	}

	if c.Webserver.Session.Secret == "" {
		if !c.DevMode {
			return errors.Wrap(ErrSessionSecretEmpty, invalidErrMessage)
		}

		c.Webserver.Session.Secret = devSessionSecret
	}

	switch c.DB.GormEngine {
	case "":
		c.DB.GormEngine = EngineSQLite
	case EngineSQLite, EngineMySQL, EnginePostgres:
	default:
		return errors.Wrap(ErrUnknownGormEngine, invalidErrMessage)
	}

	if c.DB.GormEngine == EngineSQLite && c.DB.Path == "" {
		c.DB.Path = DefaultDBPath
	}

	return nil
}

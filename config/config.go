package config

import (
	"errors"
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: Remote permission API client
//   - auth.go: Admin credential issuance
//   - persistence.go: Session key-value backend
//   - database.go: PostgreSQL and Redis connections
//   - http.go: Console HTTP server
type AppConfig struct {
	// IsDev controls development mode behavior (text logs, relaxed cookies).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Remote permission API
	API APIConfig

	// Admin credential configuration
	Auth AuthConfig

	// Session persistence
	Persistence PersistenceConfig

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Translation defaults
	I18n I18nConfig
}

// I18nConfig holds translation defaults.
type I18nConfig struct {
	// DefaultLang is used when a session has no stored preference ("zh" or "en").
	DefaultLang string `env:"DEFAULT_LANG" envDefault:"en"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.Auth.Sanitize()
	c.Persistence.Sanitize()
	c.HTTP.Sanitize()

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = "info"
	}

	lang := strings.ToLower(strings.TrimSpace(c.I18n.DefaultLang))
	if lang != "zh" {
		lang = "en"
	}
	c.I18n.DefaultLang = lang

	c.detectDevMode()
}

// Validate reports configuration combinations that cannot work.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("PMS_API_BASE_URL is required"))
	}
	if err := c.Auth.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Persistence.Backend == PersistenceFile && c.Persistence.FilePath == "" {
		errs = append(errs, errors.New("PERSISTENCE_FILE_PATH is required for the file backend"))
	}
	return errors.Join(errs...)
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

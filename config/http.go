package config

import (
	"strings"
	"time"
)

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// CookieName names the console session cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"pms_console"`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// CookieSecure marks the session cookie Secure. Forced off in dev mode.
	CookieSecure bool `env:"APP_COOKIE_SECURE" envDefault:"true"`

	// SessionIdleTTL evicts console sessions that saw no request for this long.
	SessionIdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"12h"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.CookieName = strings.TrimSpace(h.CookieName)
	if h.CookieName == "" {
		h.CookieName = "pms_console"
	}
	if h.SessionIdleTTL < time.Minute {
		h.SessionIdleTTL = time.Minute
	}
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 10 * time.Second
	}
}

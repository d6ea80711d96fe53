package config

import (
	"strings"
	"time"
)

// APIConfig configures the client of the remote permission API.
type APIConfig struct {
	// BaseURL is prepended to every endpoint path (e.g. "https://api.example.com").
	BaseURL string `env:"PMS_API_BASE_URL" envDefault:"http://localhost:9000"`

	// Timeout bounds each HTTP call.
	Timeout time.Duration `env:"PMS_API_TIMEOUT" envDefault:"15s"`

	// Concurrency bounds parallel permission lookups during aggregation.
	Concurrency int `env:"PMS_API_CONCURRENCY" envDefault:"8"`

	// ErrorMessagePath is a JMESPath expression selecting the message of a failure body.
	ErrorMessagePath string `env:"PMS_API_ERROR_MESSAGE_PATH" envDefault:"message || error"`

	UserAgent string `env:"PMS_API_USER_AGENT" envDefault:"pms-console"`
}

// Sanitize applies guardrails to API client configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if a.Timeout <= 0 {
		a.Timeout = 15 * time.Second
	}
	if a.Concurrency < 1 {
		a.Concurrency = 1
	}
	if a.Concurrency > 64 {
		a.Concurrency = 64
	}
	a.ErrorMessagePath = strings.TrimSpace(a.ErrorMessagePath)
}

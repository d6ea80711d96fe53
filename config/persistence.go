package config

import (
	"fmt"
	"strings"
	"time"
)

// PersistenceBackend selects the session key-value store.
type PersistenceBackend string

// Supported persistence backends.
const (
	PersistenceMemory   PersistenceBackend = "memory"
	PersistenceFile     PersistenceBackend = "file"
	PersistenceRedis    PersistenceBackend = "redis"
	PersistencePostgres PersistenceBackend = "postgres"
)

// UnmarshalText implements encoding.TextUnmarshaler for PersistenceBackend.
func (p *PersistenceBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "memory", "file", "redis", "postgres":
		*p = PersistenceBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid PersistenceBackend: %q (valid options: memory, file, redis, postgres)", v)
	}
}

// PersistenceConfig configures where session values live.
type PersistenceConfig struct {
	Backend PersistenceBackend `env:"PERSISTENCE_BACKEND" envDefault:"memory"`

	// FilePath is the JSON state file of the file backend.
	FilePath string `env:"PERSISTENCE_FILE_PATH"`

	// KeyPrefix namespaces keys in shared backends.
	KeyPrefix string `env:"PERSISTENCE_KEY_PREFIX" envDefault:"pms:"`

	// TTL expires idle Redis keys; 0 keeps them until logout.
	TTL time.Duration `env:"PERSISTENCE_TTL" envDefault:"0s"`
}

// Sanitize applies guardrails to persistence configuration values.
func (p *PersistenceConfig) Sanitize() {
	p.FilePath = strings.TrimSpace(p.FilePath)
	if p.TTL < 0 {
		p.TTL = 0
	}
}

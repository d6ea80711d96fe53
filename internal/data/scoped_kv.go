package data

import (
	"context"
	"strings"

	"github.com/pmsadmin/console/internal/ports"
)

// ScopedKV namespaces every key of an underlying store under "<scope>:".
// One console session or CLI profile maps to one scope.
type ScopedKV struct {
	inner  ports.KeyValueStore
	prefix string
}

var _ ports.KeyValueStore = (*ScopedKV)(nil)

// NewScopedKV wraps inner so all keys live under scope.
func NewScopedKV(inner ports.KeyValueStore, scope string) *ScopedKV {
	scope = strings.TrimSuffix(strings.TrimSpace(scope), ":")
	return &ScopedKV{inner: inner, prefix: scope + ":"}
}

// Scope returns the scope name without the trailing separator.
func (s *ScopedKV) Scope() string { return strings.TrimSuffix(s.prefix, ":") }

func (s *ScopedKV) key(k string) string { return s.prefix + k }

// Get reads key within the scope.
func (s *ScopedKV) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	return s.inner.Get(ctx, s.key(key))
}

// Set writes key within the scope.
func (s *ScopedKV) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.inner.Set(ctx, s.key(key), value)
}

// Delete removes keys within the scope.
func (s *ScopedKV) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	scoped := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			scoped = append(scoped, s.key(k))
		}
	}
	return s.inner.Delete(ctx, scoped...)
}

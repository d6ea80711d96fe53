package ports

import "context"

// KeyValueStore persists small string values such as session tokens and the language preference.
// Implementations must treat a missing key as ("", false, nil), not as an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

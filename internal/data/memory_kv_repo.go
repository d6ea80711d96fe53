package data

import (
	"context"
	"sort"
	"sync"

	"github.com/pmsadmin/console/internal/ports"
)

var _ ports.KeyValueStore = (*MemoryKVRepo)(nil)

// MemoryKVRepo keeps values in process memory. It backs development runs and tests.
type MemoryKVRepo struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKVRepo creates an empty MemoryKVRepo.
func NewMemoryKVRepo() *MemoryKVRepo {
	return &MemoryKVRepo{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (r *MemoryKVRepo) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (r *MemoryKVRepo) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

// Delete removes keys; missing keys are ignored.
func (r *MemoryKVRepo) Delete(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range keys {
		delete(r.values, k)
	}
	return nil
}

// Keys returns the stored keys in sorted order.
func (r *MemoryKVRepo) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.values))
	for k := range r.values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

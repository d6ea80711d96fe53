package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pmsadmin/console/internal/ports"
)

var _ ports.KeyValueStore = (*FileKVRepo)(nil)

// FileKVRepo persists values as a single JSON object on disk. It backs the operator CLI,
// where each invocation is a new process and the session has to survive between them.
// Every operation holds an advisory lock on path+".lock" (exclusive for writes) so several
// processes sharing one state file do not lose each other's updates. Platforms without
// flock only get the in-process mutex.
type FileKVRepo struct {
	path string
	mu   sync.Mutex
}

// NewFileKVRepo returns a repo writing to path. The file is created on first Set.
func NewFileKVRepo(path string) *FileKVRepo {
	return &FileKVRepo{path: path}
}

// Path returns the backing file path.
func (r *FileKVRepo) Path() string { return r.path }

// Get returns the value stored under key.
func (r *FileKVRepo) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	var (
		v  string
		ok bool
	)
	err := r.withLock(false, func() error {
		values, err := r.load()
		if err != nil {
			return err
		}
		v, ok = values[key]
		return nil
	})
	return v, ok, err
}

// Set stores value under key.
func (r *FileKVRepo) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return r.withLock(true, func() error {
		values, err := r.load()
		if err != nil {
			return err
		}
		values[key] = value
		return r.save(values)
	})
}

// Delete removes keys; missing keys are ignored.
func (r *FileKVRepo) Delete(_ context.Context, keys ...string) error {
	return r.withLock(true, func() error {
		values, err := r.load()
		if err != nil {
			return err
		}
		changed := false
		for _, k := range keys {
			if _, ok := values[k]; ok {
				delete(values, k)
				changed = true
			}
		}
		if !changed {
			return nil
		}
		return r.save(values)
	})
}

// withLock runs fn under r.mu and the advisory file lock.
func (r *FileKVRepo) withLock(exclusive bool, fn func() error) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	f, err := os.OpenFile(r.path+".lock", os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("open state lock: %w", err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	if err := lockFile(f, exclusive); err != nil {
		return fmt.Errorf("lock state file: %w", err)
	}
	defer func() {
		if uerr := unlockFile(f); uerr != nil {
			err = errors.Join(err, fmt.Errorf("unlock state file: %w", uerr))
		}
	}()
	return fn()
}

func (r *FileKVRepo) load() (map[string]string, error) {
	values := make(map[string]string)
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if len(raw) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("decode state file %s: %w", r.path, err)
	}
	return values, nil
}

// save writes to a temp file and renames it so a crash never leaves a truncated file.
func (r *FileKVRepo) save(values map[string]string) error {
	raw, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		return errors.Join(fmt.Errorf("write temp state file: %w", err), tmp.Close(), os.Remove(tmpName))
	}
	if err := tmp.Close(); err != nil {
		return errors.Join(fmt.Errorf("close temp state file: %w", err), os.Remove(tmpName))
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return errors.Join(fmt.Errorf("chmod state file: %w", err), os.Remove(tmpName))
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return errors.Join(fmt.Errorf("replace state file: %w", err), os.Remove(tmpName))
	}
	return nil
}

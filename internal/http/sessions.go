package httpx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pmsadmin/console/internal/data"
	"github.com/pmsadmin/console/internal/domain/model"
	"github.com/pmsadmin/console/internal/i18n"
	"github.com/pmsadmin/console/internal/ports"
	"github.com/pmsadmin/console/internal/service"
	"golang.org/x/sync/singleflight"
)

// ConsoleSession is everything one browser session of the console works with.
type ConsoleSession struct {
	ID          string
	Store       *service.Store
	Permissions *service.PermissionService
	Agents      *service.AgentService
	Lang        *i18n.Preference

	// kv is the session's scoped persistence; nil for sessions built outside a factory.
	kv ports.KeyValueStore
}

// SessionFactory builds and initializes the console session with the given id.
type SessionFactory func(ctx context.Context, id string) (*ConsoleSession, error)

// SessionDeps groups the shared dependencies every console session is built from.
type SessionDeps struct {
	API         ports.PermissionAPI
	KV          ports.KeyValueStore
	Credentials ports.AdminCredentialSource
	Concurrency int
	DefaultLang i18n.Lang
	Logger      *slog.Logger
}

// NewSessionFactory returns a factory whose sessions persist under "session:<id>:" in deps.KV.
// A session whose id was seen before restores its persisted sign-in.
func NewSessionFactory(deps SessionDeps) SessionFactory {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, id string) (*ConsoleSession, error) {
		kv := data.NewScopedKV(deps.KV, "session:"+id)
		sessLogger := logger.With("session_id", id)

		store := service.NewStore(service.StoreOptions{
			API:         deps.API,
			KV:          kv,
			Credentials: deps.Credentials,
			Concurrency: deps.Concurrency,
			Logger:      sessLogger,
		})
		if err := store.Initialize(ctx); err != nil {
			return nil, fmt.Errorf("initialize console session: %w", err)
		}
		return &ConsoleSession{
			ID:    id,
			Store: store,
			Permissions: service.NewPermissionService(service.PermissionServiceOptions{
				API: deps.API, Store: store, Logger: sessLogger,
			}),
			Agents: service.NewAgentService(service.AgentServiceOptions{
				API: deps.API, Store: store, Logger: sessLogger,
			}),
			Lang: i18n.NewPreference(kv).WithFallback(deps.DefaultLang),
			kv:   kv,
		}, nil
	}
}

type registryEntry struct {
	session  *ConsoleSession
	lastSeen time.Time
}

// SessionRegistry keeps the live console sessions in memory. Evicted sessions are rebuilt
// from persistence on their next request.
type SessionRegistry struct {
	factory SessionFactory
	idleTTL time.Duration
	now     func() time.Time
	logger  *slog.Logger

	group singleflight.Group

	mu       sync.Mutex
	sessions map[string]*registryEntry
}

// SessionRegistryOptions groups SessionRegistry parameters.
type SessionRegistryOptions struct {
	Factory SessionFactory
	// IdleTTL evicts sessions without requests for this long. Zero disables eviction.
	IdleTTL time.Duration
	// Now overrides the clock in tests.
	Now    func() time.Time
	Logger *slog.Logger
}

// NewSessionRegistry constructs a SessionRegistry.
func NewSessionRegistry(opts SessionRegistryOptions) *SessionRegistry {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionRegistry{
		factory:  opts.Factory,
		idleTTL:  opts.IdleTTL,
		now:      now,
		logger:   logger.With("component", "sessions"),
		sessions: make(map[string]*registryEntry),
	}
}

// Get returns the live session with id, building it on first use.
// Concurrent first requests of one id share a single build.
func (r *SessionRegistry) Get(ctx context.Context, id string) (*ConsoleSession, error) {
	if s, ok := r.touch(id); ok {
		return s, nil
	}

	v, err, _ := r.group.Do(id, func() (any, error) {
		if s, ok := r.touch(id); ok {
			return s, nil
		}
		s, err := r.factory(ctx, id)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.sessions[id] = &registryEntry{session: s, lastSeen: r.now()}
		r.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ConsoleSession), nil
}

// Create builds and registers a session under a new random id.
func (r *SessionRegistry) Create(ctx context.Context) (*ConsoleSession, error) {
	id := uuid.NewString()
	s, err := r.factory(ctx, id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.sessions[id] = &registryEntry{session: s, lastSeen: r.now()}
	r.mu.Unlock()
	return s, nil
}

// Discard forgets the live session with id without touching its persisted keys.
func (r *SessionRegistry) Discard(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Retire hands old over to successor: the language preference moves to the successor,
// old's persisted keys are removed and old is forgotten. A later request carrying old's id
// starts from an empty session.
func (r *SessionRegistry) Retire(ctx context.Context, old, successor *ConsoleSession) error {
	r.Discard(old.ID)
	if old.kv == nil {
		return nil
	}

	var errs []error
	if successor != nil && successor.kv != nil {
		lang, ok, err := old.kv.Get(ctx, model.KeyLang)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("read language preference: %w", err))
		case ok:
			if err := successor.kv.Set(ctx, model.KeyLang, lang); err != nil {
				errs = append(errs, fmt.Errorf("move language preference: %w", err))
			}
		}
	}
	if err := old.kv.Delete(ctx, append(model.SessionKeys(), model.KeyLang)...); err != nil {
		errs = append(errs, fmt.Errorf("purge retired session: %w", err))
	}
	return errors.Join(errs...)
}

func (r *SessionRegistry) touch(id string) (*ConsoleSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.session, true
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep evicts idle sessions and returns how many were dropped.
func (r *SessionRegistry) Sweep() int {
	if r.idleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Run sweeps every interval until ctx is done.
func (r *SessionRegistry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.DebugContext(ctx, "evicted idle console sessions", "count", n)
			}
		}
	}
}

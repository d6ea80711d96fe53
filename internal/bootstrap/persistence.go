package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pmsadmin/console/config"
	"github.com/pmsadmin/console/internal/data"
	httpx "github.com/pmsadmin/console/internal/http"
	"github.com/pmsadmin/console/internal/ports"
)

// Persistence is the opened session key-value backend.
type Persistence struct {
	KV      ports.KeyValueStore
	Backend config.PersistenceBackend
	// Health lists the connections /healthz should probe.
	Health []httpx.HealthChecker
	closers []func() error
}

// Close releases backend connections.
func (p *Persistence) Close() error {
	var errs []error
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenPersistence opens the configured backend. Shared backends are namespaced by
// Persistence.KeyPrefix.
func OpenPersistence(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*Persistence, error) {
	p := &Persistence{Backend: cfg.Persistence.Backend}

	switch cfg.Persistence.Backend {
	case config.PersistenceMemory, "":
		p.Backend = config.PersistenceMemory
		p.KV = data.NewMemoryKVRepo()

	case config.PersistenceFile:
		p.KV = data.NewFileKVRepo(cfg.Persistence.FilePath)

	case config.PersistenceRedis:
		client, err := ConnectRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		repo := data.NewRedisKVRepo(client, data.RedisKVOptions{
			Prefix: cfg.Persistence.KeyPrefix,
			TTL:    cfg.Persistence.TTL,
		})
		p.KV = repo
		p.Health = append(p.Health, repo)
		p.closers = append(p.closers, client.Close)

	case config.PersistencePostgres:
		db, err := ConnectDB(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("connect db: %w", err)
		}
		p.closers = append(p.closers, db.Close)
		if cfg.Postgres.RunMigrationsOnStart {
			if err := RunMigrations(ctx, db, logger); err != nil {
				return nil, errors.Join(err, p.Close())
			}
		} else if logger != nil {
			logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
		}
		repo := data.NewPostgresKVRepo(db)
		p.KV = repo
		if cfg.Persistence.KeyPrefix != "" {
			p.KV = data.NewScopedKV(repo, cfg.Persistence.KeyPrefix)
		}
		p.Health = append(p.Health, repo)

	default:
		return nil, fmt.Errorf("unsupported persistence backend %q", cfg.Persistence.Backend)
	}

	if logger != nil {
		logger.InfoContext(ctx, "session persistence ready", "backend", p.Backend)
	}
	return p, nil
}

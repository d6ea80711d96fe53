package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pmsadmin/console/config"
	"github.com/pmsadmin/console/internal/bootstrap"
	"github.com/pmsadmin/console/internal/data"
	"github.com/pmsadmin/console/internal/i18n"
	"github.com/pmsadmin/console/internal/service"
)

const defaultProfile = "default"

// profileSession is the console state of one CLI profile.
type profileSession struct {
	Store       *service.Store
	Permissions *service.PermissionService
	Agents      *service.AgentService
	Lang        *i18n.Preference
	close       func() error
}

func (p *profileSession) Close() error {
	if p == nil || p.close == nil {
		return nil
	}
	return p.close()
}

// defaultStatePath is where the CLI keeps sessions when no shared backend is configured.
func defaultStatePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "pms-console", "state.json"), nil
}

// openProfile wires the store of profile over the configured persistence backend.
// The in-memory backend cannot outlive one command, so the CLI swaps it for the state file.
func openProfile(cmdCtx *commandContext, profile string) (*profileSession, error) {
	cfg := cmdCtx.Config
	if cfg.Persistence.Backend == config.PersistenceMemory || cfg.Persistence.Backend == "" {
		path, err := defaultStatePath()
		if err != nil {
			return nil, err
		}
		cfg.Persistence.Backend = config.PersistenceFile
		cfg.Persistence.FilePath = path
	}

	api, err := bootstrap.BuildPermissionAPI(cfg.API, cmdCtx.Logger)
	if err != nil {
		return nil, err
	}
	creds, err := bootstrap.BuildCredentialSource(cfg.Auth, cmdCtx.Logger)
	if err != nil {
		return nil, err
	}
	persistence, err := bootstrap.OpenPersistence(cmdCtx.Ctx, &cfg, cmdCtx.Logger)
	if err != nil {
		return nil, err
	}

	kv := data.NewScopedKV(persistence.KV, "profile:"+profile)
	store := service.NewStore(service.StoreOptions{
		API:         api,
		KV:          kv,
		Credentials: creds,
		Concurrency: cfg.API.Concurrency,
		Logger:      cmdCtx.Logger,
	})
	if err := store.Initialize(cmdCtx.Ctx); err != nil {
		return nil, errors.Join(err, persistence.Close())
	}

	lang, _ := i18n.ParseLang(cfg.I18n.DefaultLang)
	return &profileSession{
		Store: store,
		Permissions: service.NewPermissionService(service.PermissionServiceOptions{
			API: api, Store: store, Logger: cmdCtx.Logger,
		}),
		Agents: service.NewAgentService(service.AgentServiceOptions{
			API: api, Store: store, Logger: cmdCtx.Logger,
		}),
		Lang:  i18n.NewPreference(kv).WithFallback(lang),
		close: persistence.Close,
	}, nil
}

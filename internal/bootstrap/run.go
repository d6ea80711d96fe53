package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pmsadmin/console/config"
	httpx "github.com/pmsadmin/console/internal/http"
	"github.com/pmsadmin/console/internal/i18n"
)

// Console is the wired console runtime.
type Console struct {
	Persistence *Persistence
	Sessions    *httpx.SessionRegistry
}

// NewConsole connects persistence and builds the session registry.
func NewConsole(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*Console, error) {
	if cfg == nil {
		return nil, errors.New("console config is required")
	}

	api, err := BuildPermissionAPI(cfg.API, logger)
	if err != nil {
		return nil, err
	}
	creds, err := BuildCredentialSource(cfg.Auth, logger)
	if err != nil {
		return nil, err
	}
	persistence, err := OpenPersistence(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	lang, _ := i18n.ParseLang(cfg.I18n.DefaultLang)
	sessions := httpx.NewSessionRegistry(httpx.SessionRegistryOptions{
		Factory: httpx.NewSessionFactory(httpx.SessionDeps{
			API:         api,
			KV:          persistence.KV,
			Credentials: creds,
			Concurrency: cfg.API.Concurrency,
			DefaultLang: lang,
			Logger:      logger,
		}),
		IdleTTL: cfg.HTTP.SessionIdleTTL,
		Logger:  logger,
	})

	return &Console{Persistence: persistence, Sessions: sessions}, nil
}

// RunWithShutdown serves the console until SIGINT/SIGTERM or a server error.
func RunWithShutdown(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	console, err := NewConsole(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := console.Persistence.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close persistence failed", "error", cerr)
		}
	}()

	serviceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		console.Sessions.Run(serviceCtx, cfg.HTTP.SessionIdleTTL/4)
	}()

	errCh := make(chan error, 1)
	server := StartHTTPServer(HTTPServerConfig{
		HTTP:     cfg.HTTP,
		IsDev:    cfg.IsDev,
		Sessions: console.Sessions,
		Health:   console.Persistence.Health,
		Logger:   logger,
	}, errCh)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case <-quit:
		logger.Info("shutting down console...")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down console...")
	case runErr = <-errCh:
		logger.Error("service error", "error", runErr)
	}

	cancel()
	if err := ShutdownHTTPServer(context.Background(), server, cfg.HTTP.ShutdownTimeout, logger); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("shutdown http server: %w", err))
	}
	<-sweepDone
	return runErr
}

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/pmsadmin/console/config"
	"github.com/pmsadmin/console/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	logger = bootstrap.ConfigureLogger(bootstrap.LoggerOptions{Level: cfg.LogLevel, Text: cfg.IsDev})

	logStartupInfo(ctx, logger, &cfg)
	return bootstrap.RunWithShutdown(ctx, &cfg, logger)
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting pms console",
		"api_base_url", cfg.API.BaseURL,
		"persistence", cfg.Persistence.Backend,
		"admin_credentials", cfg.Auth.Mode,
		"http_addr", cfg.HTTP.Addr,
		"dev", cfg.IsDev)
}

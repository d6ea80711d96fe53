package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/pmsadmin/console/config"
	"github.com/pmsadmin/console/internal/adapters/permapi"
)

// BuildPermissionAPI creates the remote permission API client.
func BuildPermissionAPI(cfg config.APIConfig, logger *slog.Logger) (*permapi.Client, error) {
	client, err := permapi.NewClient(permapi.Config{
		BaseURL:          cfg.BaseURL,
		Timeout:          cfg.Timeout,
		ErrorMessagePath: cfg.ErrorMessagePath,
		UserAgent:        cfg.UserAgent,
		Logger:           logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create permission api client: %w", err)
	}
	return client, nil
}

package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/pmsadmin/console/config"
	"github.com/pmsadmin/console/internal/adapters/admincred"
	"github.com/pmsadmin/console/internal/ports"
)

// BuildCredentialSource returns the admin credential source for the configured mode.
// It returns nil when admin sign-in is disabled.
//
//nolint:ireturn // the configured mode picks the implementation at runtime.
func BuildCredentialSource(cfg config.AuthConfig, logger *slog.Logger) (ports.AdminCredentialSource, error) {
	switch cfg.Mode {
	case config.AdminCredentialStatic:
		src, err := admincred.NewStatic(cfg.Credential)
		if err != nil {
			return nil, fmt.Errorf("static admin credential: %w", err)
		}
		return src, nil

	case config.AdminCredentialOAuth2:
		src, err := admincred.NewOAuth2(admincred.OAuth2Config{
			ClientID:     cfg.OAuth2.ClientID,
			ClientSecret: cfg.OAuth2.ClientSecret,
			TokenURL:     cfg.OAuth2.TokenURL,
			Scopes:       cfg.OAuth2.Scopes,
			EmailParam:   cfg.OAuth2.EmailParam,
			Timeout:      cfg.OAuth2.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("oauth2 admin credential: %w", err)
		}
		return src, nil

	default:
		if logger != nil {
			logger.Warn("admin sign-in disabled", "mode", cfg.Mode)
		}
		return nil, nil
	}
}

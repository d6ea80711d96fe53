package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// AdminCredentialMode selects where admin sessions get their admin credential from.
type AdminCredentialMode string

const (
	// AdminCredentialStatic uses a configured credential for every admin session.
	AdminCredentialStatic AdminCredentialMode = "static"
	// AdminCredentialOAuth2 fetches a client-credentials token per admin session.
	AdminCredentialOAuth2 AdminCredentialMode = "oauth2"
	// AdminCredentialDisabled rejects admin logins.
	AdminCredentialDisabled AdminCredentialMode = "disabled"
)

// UnmarshalText implements encoding.TextUnmarshaler for AdminCredentialMode.
func (m *AdminCredentialMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "static", "oauth2", "disabled":
		*m = AdminCredentialMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AdminCredentialMode: %q (valid options: static, oauth2, disabled)", v)
	}
}

// AdminOAuth2Config contains OAuth2 client-credentials configuration.
type AdminOAuth2Config struct {
	ClientID     string        `env:"CLIENT_ID"`
	ClientSecret string        `env:"CLIENT_SECRET"`
	TokenURL     string        `env:"TOKEN_URL"`
	Scopes       []string      `env:"SCOPES"        envSeparator:","`
	EmailParam   string        `env:"EMAIL_PARAM"`
	Timeout      time.Duration `env:"TIMEOUT"       envDefault:"10s"`
}

// AuthConfig groups admin credential configuration.
type AuthConfig struct {
	// Mode determines which credential source admin logins use.
	Mode AdminCredentialMode `env:"ADMIN_CREDENTIAL_MODE" envDefault:"static"`

	// Credential is the static admin credential (Mode=static).
	Credential string `env:"ADMIN_CREDENTIAL"`

	// OAuth2 configuration (Mode=oauth2).
	OAuth2 AdminOAuth2Config `envPrefix:"ADMIN_OAUTH_"`
}

// Sanitize trims values and disables static mode without a credential.
func (a *AuthConfig) Sanitize() {
	a.Credential = strings.TrimSpace(a.Credential)
	a.OAuth2.TokenURL = strings.TrimSpace(a.OAuth2.TokenURL)
	a.OAuth2.ClientID = strings.TrimSpace(a.OAuth2.ClientID)
	scopes := a.OAuth2.Scopes[:0]
	for _, s := range a.OAuth2.Scopes {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, s)
		}
	}
	a.OAuth2.Scopes = scopes
	if a.Mode == AdminCredentialStatic && a.Credential == "" {
		a.Mode = AdminCredentialDisabled
	}
}

// Validate checks the selected mode has what it needs.
func (a *AuthConfig) Validate() error {
	if a.Mode == AdminCredentialOAuth2 && (a.OAuth2.ClientID == "" || a.OAuth2.TokenURL == "") {
		return errors.New("ADMIN_OAUTH_CLIENT_ID and ADMIN_OAUTH_TOKEN_URL are required for oauth2 admin credentials")
	}
	return nil
}

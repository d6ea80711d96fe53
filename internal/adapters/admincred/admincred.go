// Package admincred provides ports.AdminCredentialSource implementations.
package admincred

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/pmsadmin/console/internal/errors"
	"github.com/pmsadmin/console/internal/ports"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ErrNoCredential is returned when a source is configured without a credential.
var ErrNoCredential = errors.New("admin credential is not configured")

// Static returns the same configured credential for every admin session.
type Static struct {
	credential string
}

var _ ports.AdminCredentialSource = (*Static)(nil)

// NewStatic creates a Static source. An empty credential is rejected.
func NewStatic(credential string) (*Static, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, ErrNoCredential
	}
	return &Static{credential: credential}, nil
}

// AdminCredential returns the configured credential.
func (s *Static) AdminCredential(context.Context, string) (string, error) {
	return s.credential, nil
}

// OAuth2Config configures an OAuth2 client-credentials source.
type OAuth2Config struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string
	// EmailParam, when set, sends the admin's email as an extra token request parameter
	// so the authorization server can scope the credential to that admin.
	EmailParam string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// OAuth2 issues a credential per admin session from an OAuth2 token endpoint.
type OAuth2 struct {
	cfg        clientcredentials.Config
	emailParam string
	client     *http.Client
}

var _ ports.AdminCredentialSource = (*OAuth2)(nil)

// NewOAuth2 validates cfg and returns an OAuth2 source.
func NewOAuth2(cfg OAuth2Config) (*OAuth2, error) {
	if strings.TrimSpace(cfg.ClientID) == "" || strings.TrimSpace(cfg.TokenURL) == "" {
		return nil, errors.New("oauth2 admin credential requires client id and token url")
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &OAuth2{
		cfg: clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       cfg.Scopes,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		emailParam: strings.TrimSpace(cfg.EmailParam),
		client:     hc,
	}, nil
}

// AdminCredential fetches a fresh access token for the admin with the given email.
func (o *OAuth2) AdminCredential(ctx context.Context, email string) (string, error) {
	cfg := o.cfg
	if o.emailParam != "" && email != "" {
		cfg.EndpointParams = map[string][]string{o.emailParam: {email}}
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, o.client)

	tok, err := cfg.Token(ctx)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			return "", apperrors.Wrap(err, apperrors.ErrCodeForbidden, "admin credential was refused")
		}
		return "", apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "admin credential endpoint unreachable")
	}
	if tok.AccessToken == "" {
		return "", apperrors.Wrap(fmt.Errorf("token endpoint %s returned no access token", o.cfg.TokenURL),
			apperrors.ErrCodeForbidden, "admin credential was refused")
	}
	return tok.AccessToken, nil
}

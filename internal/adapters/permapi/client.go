// Package permapi is the JSON client for the remote permission API.
package permapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"
	jmespath "github.com/jmespath-community/go-jmespath"
	apperrors "github.com/pmsadmin/console/internal/errors"
	"github.com/pmsadmin/console/internal/ports"
	"golang.org/x/net/publicsuffix"
)

// DefaultErrorMessagePath extracts the human-readable message from failure bodies.
const DefaultErrorMessagePath = "message || error"

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

const maxBodyBytes = 4 << 20

// Config configures a Client.
type Config struct {
	BaseURL          string
	Timeout          time.Duration
	ErrorMessagePath string
	UserAgent        string
	// Client overrides the HTTP client; a cookie-jar client with Timeout is built when nil.
	Client *http.Client
	Logger *slog.Logger
}

// Client implements ports.PermissionAPI over HTTP.
type Client struct {
	baseURL   string
	msgPath   string
	userAgent string
	http      *http.Client
	logger    *slog.Logger
}

var _ ports.PermissionAPI = (*Client)(nil)

// NewClient builds a permission API client. The error message path is compiled up front so a
// bad expression fails at startup rather than on the first API failure.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("permission api base url is required")
	}

	msgPath := strings.TrimSpace(cfg.ErrorMessagePath)
	if msgPath == "" {
		msgPath = DefaultErrorMessagePath
	}
	if _, err := jmespath.Compile(msgPath); err != nil {
		return nil, fmt.Errorf("compile error message path %q: %w", msgPath, err)
	}

	hc := cfg.Client
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		hc = &http.Client{Timeout: timeout, Jar: jar}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:   base,
		msgPath:   msgPath,
		userAgent: fallbackString(strings.TrimSpace(cfg.UserAgent), "pms-console"),
		http:      hc,
		logger:    logger.With("component", "permapi"),
	}, nil
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// envelope is the status wrapper every endpoint answers with.
type envelope struct {
	StatusCode int `json:"status_code"`
}

// call posts reqBody to path and decodes the body into out when status_code is 200.
// out must embed envelope fields or be nil.
func (c *Client) call(ctx context.Context, path, bearer string, reqBody, out any) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "create request")
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, reqID)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "permission api request failed",
			"endpoint", path, "request_id", reqID, "error", err)
		return transportError(ctx, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return transportError(ctx, path, err)
	}

	c.logger.DebugContext(ctx, "permission api response",
		"endpoint", path,
		"request_id", reqID,
		"http_status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	var env envelope
	decodeErr := json.Unmarshal(body, &env)
	if decodeErr != nil || resp.StatusCode != http.StatusOK || env.StatusCode != http.StatusOK {
		apiErr := &ports.APIError{
			Endpoint:   path,
			HTTPStatus: resp.StatusCode,
			StatusCode: env.StatusCode,
			Message:    c.extractMessage(body),
		}
		if decodeErr != nil && resp.StatusCode == http.StatusOK {
			return apperrors.Wrap(decodeErr, apperrors.ErrCodeUpstream, "permission api returned malformed JSON")
		}
		return apperrors.Wrap(apiErr, apperrors.ErrCodeUpstream, fallbackString(apiErr.Message, "permission api request failed"))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUpstream, "permission api returned malformed JSON")
	}
	return nil
}

// extractMessage evaluates the configured JMESPath against a failure body.
// It yields "" when the body is not JSON or the expression finds no string.
func (c *Client) extractMessage(body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return ""
	}
	v, err := jmespath.Search(c.msgPath, doc)
	if err != nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func transportError(ctx context.Context, path string, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return apperrors.Wrap(ctx.Err(), apperrors.ErrCodeCanceled, "request canceled")
	case errors.Is(ctx.Err(), context.DeadlineExceeded), isTimeout(err):
		return apperrors.Wrapf(err, apperrors.ErrCodeTimeout, "%s timed out", path)
	default:
		return apperrors.Wrapf(err, apperrors.ErrCodeUnavailable, "%s unreachable", path)
	}
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

func fallbackString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

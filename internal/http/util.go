package httpx

import (
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/pmsadmin/console/internal/errors"
)

// statusForCode maps application error codes to HTTP statuses.
func statusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeUpstream:
		return http.StatusBadGateway
	case apperrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeCanceled:
		return StatusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

// queryTerm returns the trimmed value of a query parameter.
func queryTerm(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// queryRaw returns a query parameter untouched.
func queryRaw(r *http.Request, key string) string {
	return r.URL.Query().Get(key)
}

// queryBool is tolerant of missing/invalid values.
func queryBool(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(queryTerm(r, key))
	return err == nil && v
}

package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// CookieConfig describes the console session cookie.
type CookieConfig struct {
	Name   string
	Domain string
	Secure bool
	MaxAge time.Duration
}

func (c CookieConfig) withDefaults() CookieConfig {
	if c.Name == "" {
		c.Name = DefaultCookieName
	}
	return c
}

func setSessionCookie(w http.ResponseWriter, cookie CookieConfig, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookie.Name,
		Value:    id,
		Path:     "/",
		Domain:   cookie.Domain,
		MaxAge:   int(cookie.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Sessions attaches the console session named by the session cookie to the request context.
// Requests without a valid cookie get a fresh session id.
func Sessions(reg *SessionRegistry, cookie CookieConfig) func(http.Handler) http.Handler {
	cookie = cookie.withDefaults()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(cookie.Name); err == nil {
				if parsed, parseErr := uuid.Parse(c.Value); parseErr == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				setSessionCookie(w, cookie, id)
			}

			session, err := reg.Get(r.Context(), id)
			if err != nil {
				WriteAppError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(SetConsoleSession(r.Context(), session)))
		})
	}
}

// RequireSession rejects requests whose console session is not signed in.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := ConsoleSessionFromContext(r.Context())
		if !ok || !s.Store.Session().Authenticated() {
			WriteError(w, ErrorParams{
				Code:    http.StatusUnauthorized,
				ErrCode: ErrCodeNotSignedIn,
				Err:     errors.New(MsgSignInFirst),
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose console session lacks the admin credential.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, _ := ConsoleSessionFromContext(r.Context())
		sess := s.Store.Session()
		if !sess.IsAdmin || !sess.HasAdmin() {
			WriteError(w, ErrorParams{
				Code:    http.StatusForbidden,
				ErrCode: ErrCodeAdminRequired,
				Err:     errors.New(MsgAdminRequired),
			})
			return
		}
		next.ServeHTTP(w, r)
	}))
}

package httpx

import (
	"log/slog"
	"net/http"

	"github.com/pmsadmin/console/internal/domain/model"
	"github.com/pmsadmin/console/internal/service"
)

// SessionHandlers serves sign-in state. Signing in or out moves the browser to a new
// console session id, so an id known before sign-in never carries the signed-in session.
type SessionHandlers struct {
	Sessions *SessionRegistry
	Cookie   CookieConfig
	Logger   *slog.Logger
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Admin    bool   `json:"admin"`
}

type sessionView struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
	IsAdmin       bool   `json:"is_admin"`
	Lang          string `json:"lang,omitempty"`
}

func viewOf(sess model.Session) sessionView {
	return sessionView{
		Authenticated: sess.Authenticated(),
		Email:         sess.UserEmail,
		IsAdmin:       sess.IsAdmin && sess.HasAdmin(),
	}
}

// Login handles POST /api/session/login.
func (h *SessionHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	ctx := r.Context()
	fresh, err := h.Sessions.Create(ctx)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	sess, err := fresh.Store.Login(ctx, service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Admin:    req.Admin,
	})
	if err != nil {
		h.Sessions.Discard(fresh.ID)
		WriteAppError(w, err)
		return
	}
	h.switchTo(w, r, mustSession(r), fresh)
	WriteJSON(w, http.StatusOK, viewOf(sess))
}

// Logout handles POST /api/session/logout.
func (h *SessionHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cs := mustSession(r)
	if err := cs.Store.Logout(ctx); err != nil {
		WriteAppError(w, err)
		return
	}
	fresh, err := h.Sessions.Create(ctx)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	h.switchTo(w, r, cs, fresh)
	w.WriteHeader(http.StatusNoContent)
}

// switchTo retires old in favour of fresh and points the cookie at fresh.
func (h *SessionHandlers) switchTo(w http.ResponseWriter, r *http.Request, old, fresh *ConsoleSession) {
	if err := h.Sessions.Retire(r.Context(), old, fresh); err != nil {
		h.logger().WarnContext(r.Context(), "retire console session", "session_id", old.ID, "error", err)
	}
	setSessionCookie(w, h.Cookie.withDefaults(), fresh.ID)
}

func (h *SessionHandlers) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

// Current handles GET /api/session.
func (h *SessionHandlers) Current(w http.ResponseWriter, r *http.Request) {
	cs := mustSession(r)
	view := viewOf(cs.Store.Session())
	if lang, err := cs.Lang.Get(r.Context()); err == nil {
		view.Lang = string(lang)
	}
	WriteJSON(w, http.StatusOK, view)
}

// mustSession returns the session attached by the Sessions middleware.
func mustSession(r *http.Request) *ConsoleSession {
	s, ok := ConsoleSessionFromContext(r.Context())
	if !ok {
		panic("httpx: console session middleware not installed")
	}
	return s
}

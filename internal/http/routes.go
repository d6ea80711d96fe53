package httpx

import (
	"log/slog"
	"net/http"

	"github.com/pmsadmin/console/internal/i18n"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Sessions *SessionRegistry
	Cookie   CookieConfig
	// Optional: dictionary served by /api/i18n. Defaults to the embedded one.
	Dictionary i18n.Dictionary
	// Optional: backing stores probed by /healthz.
	Health []HealthChecker
	Logger *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	dict := services.Dictionary
	if dict == nil {
		dict = i18n.Default()
	}

	api := http.NewServeMux()
	registerSessionRoutes(api, &SessionHandlers{
		Sessions: services.Sessions,
		Cookie:   services.Cookie,
		Logger:   services.Logger,
	})
	registerBusinessRoutes(api, &BusinessHandlers{})
	registerPermissionRoutes(api, &PermissionHandlers{})
	registerAgentRoutes(api, &AgentHandlers{})
	registerI18nRoutes(api, &I18nHandlers{Dict: dict})

	mux := http.NewServeMux()
	mux.Handle("/api/", Sessions(services.Sessions, services.Cookie)(api))
	health := healthHandler(services.Health)
	mux.Handle("GET /healthz", health)
	mux.Handle("HEAD /healthz", health)
	return mux
}

func registerSessionRoutes(mux *http.ServeMux, h *SessionHandlers) {
	mux.HandleFunc("POST /api/session/login", h.Login)
	mux.HandleFunc("POST /api/session/logout", h.Logout)
	mux.HandleFunc("GET /api/session", h.Current)
}

func registerBusinessRoutes(mux *http.ServeMux, h *BusinessHandlers) {
	mux.Handle("GET /api/businesses", RequireSession(http.HandlerFunc(h.ListOwn)))
	mux.Handle("GET /api/admin/businesses", RequireAdmin(http.HandlerFunc(h.ListAdmin)))
	mux.Handle("POST /api/admin/businesses/refresh", RequireAdmin(http.HandlerFunc(h.RefreshAdmin)))
	mux.Handle("GET /api/admin/businesses/{id}", RequireAdmin(http.HandlerFunc(h.GetAdmin)))
	mux.Handle("GET /api/agent/businesses", RequireSession(http.HandlerFunc(h.ListAgent)))
	mux.Handle("GET /api/agent/businesses/{id}", RequireSession(http.HandlerFunc(h.GetAgent)))
}

func registerPermissionRoutes(mux *http.ServeMux, h *PermissionHandlers) {
	mux.Handle("GET /api/admin/businesses/{id}/permission-names", RequireAdmin(http.HandlerFunc(h.AvailableNames)))
	mux.Handle("POST /api/admin/businesses/{id}/permissions", RequireAdmin(http.HandlerFunc(h.Add)))
	mux.Handle("PUT /api/admin/permissions/{id}", RequireAdmin(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/admin/permissions/{id}", RequireAdmin(http.HandlerFunc(h.Delete)))
}

func registerAgentRoutes(mux *http.ServeMux, h *AgentHandlers) {
	mux.Handle("GET /api/admin/businesses/{id}/agents", RequireAdmin(http.HandlerFunc(h.List)))
	mux.Handle("POST /api/admin/businesses/{id}/agents", RequireAdmin(http.HandlerFunc(h.Add)))
	mux.Handle("DELETE /api/admin/businesses/{id}/agents/{agentID}", RequireAdmin(http.HandlerFunc(h.Remove)))
	mux.Handle("GET /api/admin/agents/businesses", RequireAdmin(http.HandlerFunc(h.SearchBusinesses)))
}

func registerI18nRoutes(mux *http.ServeMux, h *I18nHandlers) {
	mux.HandleFunc("GET /api/lang", h.GetLang)
	mux.HandleFunc("PUT /api/lang", h.SetLang)
	mux.HandleFunc("GET /api/i18n", h.Strings)
}

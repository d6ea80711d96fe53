package httpx

import (
	"net/http"

	"github.com/pmsadmin/console/internal/domain/model"
)

// PermissionHandlers serves permission grants of admin businesses.
type PermissionHandlers struct{}

type permissionRequest struct {
	Name   string `json:"name"`
	Level  string `json:"level"`
	Expire string `json:"expire"`
}

func (p permissionRequest) input() model.PermissionInput {
	return model.PermissionInput{Name: p.Name, Level: p.Level, Expire: p.Expire}
}

// AvailableNames handles GET /api/admin/businesses/{id}/permission-names.
func (h *PermissionHandlers) AvailableNames(w http.ResponseWriter, r *http.Request) {
	names, err := mustSession(r).Permissions.AvailableNamesFor(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string][]string{"names": names})
}

// Add handles POST /api/admin/businesses/{id}/permissions. The refreshed business is
// returned when it is still listed.
func (h *PermissionHandlers) Add(w http.ResponseWriter, r *http.Request) {
	var req permissionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	cs := mustSession(r)
	id := r.PathValue("id")
	if err := cs.Permissions.Add(r.Context(), id, req.input()); err != nil {
		WriteAppError(w, err)
		return
	}
	if b, ok := cs.Store.DetailedBusiness(id); ok {
		WriteJSON(w, http.StatusCreated, b)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

// Update handles PUT /api/admin/permissions/{id}.
func (h *PermissionHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req permissionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := mustSession(r).Permissions.Update(r.Context(), r.PathValue("id"), req.input()); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Delete handles DELETE /api/admin/permissions/{id}.
func (h *PermissionHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := mustSession(r).Permissions.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

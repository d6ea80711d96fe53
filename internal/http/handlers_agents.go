package httpx

import (
	"net/http"

	"github.com/pmsadmin/console/internal/domain/model"
)

// AgentHandlers serves agent delegation of admin businesses.
type AgentHandlers struct{}

type addAgentRequest struct {
	Email string `json:"email"`
}

// List handles GET /api/admin/businesses/{id}/agents.
func (h *AgentHandlers) List(w http.ResponseWriter, r *http.Request) {
	agents, err := mustSession(r).Agents.ListBusinessAgents(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if agents == nil {
		agents = []model.Agent{}
	}
	WriteJSON(w, http.StatusOK, map[string][]model.Agent{"agents": agents})
}

// Add handles POST /api/admin/businesses/{id}/agents.
func (h *AgentHandlers) Add(w http.ResponseWriter, r *http.Request) {
	var req addAgentRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := mustSession(r).Agents.AddAgent(r.Context(), r.PathValue("id"), req.Email); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

// Remove handles DELETE /api/admin/businesses/{id}/agents/{agentID}.
func (h *AgentHandlers) Remove(w http.ResponseWriter, r *http.Request) {
	err := mustSession(r).Agents.RemoveAgent(r.Context(), r.PathValue("id"), r.PathValue("agentID"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchBusinesses handles GET /api/admin/agents/businesses?email=.
func (h *AgentHandlers) SearchBusinesses(w http.ResponseWriter, r *http.Request) {
	list, err := mustSession(r).Agents.SearchAgentBusinesses(r.Context(), queryTerm(r, "email"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if list == nil {
		list = []model.DetailedBusiness{}
	}
	WriteJSON(w, http.StatusOK, map[string][]model.DetailedBusiness{"businesses": list})
}

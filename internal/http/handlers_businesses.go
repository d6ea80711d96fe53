package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/pmsadmin/console/internal/domain/model"
	"github.com/pmsadmin/console/internal/service"
)

// BusinessHandlers serves the business lists of the signed-in user.
type BusinessHandlers struct{}

type businessListResponse struct {
	Businesses []model.Business `json:"businesses"`
}

type detailedListResponse struct {
	Businesses      []model.DetailedBusiness `json:"businesses"`
	Total           int                      `json:"total"`
	PartialFailures []string                 `json:"partial_failures,omitempty"`
}

// ListOwn handles GET /api/businesses.
func (h *BusinessHandlers) ListOwn(w http.ResponseWriter, r *http.Request) {
	list, err := mustSession(r).Store.FetchBusinesses(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if list == nil {
		list = []model.Business{}
	}
	WriteJSON(w, http.StatusOK, businessListResponse{Businesses: list})
}

// ListAdmin handles GET /api/admin/businesses. The cached aggregation is served unless it
// is empty or ?refresh=true is given; ?q= filters by name.
func (h *BusinessHandlers) ListAdmin(w http.ResponseWriter, r *http.Request) {
	store := mustSession(r).Store
	h.writeAggregation(w, r, aggregationView{
		cached:   store.DetailedBusinesses,
		fetch:    store.FetchAllBusinesses,
		failures: func() []model.JoinFailure { return store.LastFailures(service.FetchAdminBusinesses) },
		force:    queryBool(r, "refresh"),
	})
}

// RefreshAdmin handles POST /api/admin/businesses/refresh.
func (h *BusinessHandlers) RefreshAdmin(w http.ResponseWriter, r *http.Request) {
	store := mustSession(r).Store
	h.writeAggregation(w, r, aggregationView{
		cached:   store.DetailedBusinesses,
		fetch:    store.RefreshAllBusinesses,
		failures: func() []model.JoinFailure { return store.LastFailures(service.FetchAdminBusinesses) },
		force:    true,
	})
}

// ListAgent handles GET /api/agent/businesses.
func (h *BusinessHandlers) ListAgent(w http.ResponseWriter, r *http.Request) {
	store := mustSession(r).Store
	h.writeAggregation(w, r, aggregationView{
		cached:   store.AgentDetailedBusinesses,
		fetch:    store.FetchAllAgentBusinesses,
		failures: func() []model.JoinFailure { return store.LastFailures(service.FetchAgentBusinesses) },
		force:    queryBool(r, "refresh"),
	})
}

// GetAdmin handles GET /api/admin/businesses/{id}.
func (h *BusinessHandlers) GetAdmin(w http.ResponseWriter, r *http.Request) {
	store := mustSession(r).Store
	h.writeDetail(w, r, store.DetailedBusiness, store.FetchAllBusinesses)
}

// GetAgent handles GET /api/agent/businesses/{id}.
func (h *BusinessHandlers) GetAgent(w http.ResponseWriter, r *http.Request) {
	store := mustSession(r).Store
	h.writeDetail(w, r, store.AgentDetailedBusiness, store.FetchAllAgentBusinesses)
}

type aggregationView struct {
	cached   func() []model.DetailedBusiness
	fetch    func(context.Context) (model.AggregationResult, error)
	failures func() []model.JoinFailure
	force    bool
}

func (h *BusinessHandlers) writeAggregation(w http.ResponseWriter, r *http.Request, v aggregationView) {
	list := v.cached()
	failures := v.failures()
	if v.force || len(list) == 0 {
		res, err := v.fetch(r.Context())
		if err != nil {
			WriteAppError(w, err)
			return
		}
		list, failures = res.Businesses, res.Failures
	}

	filtered := service.FilterByName(list, queryRaw(r, "q"))
	if filtered == nil {
		filtered = []model.DetailedBusiness{}
	}
	WriteJSON(w, http.StatusOK, detailedListResponse{
		Businesses:      filtered,
		Total:           len(list),
		PartialFailures: failureMessages(failures),
	})
}

// writeDetail looks the business up in the cache, fetching the list once when it is missing.
func (h *BusinessHandlers) writeDetail(
	w http.ResponseWriter,
	r *http.Request,
	find func(string) (model.DetailedBusiness, bool),
	fetch func(context.Context) (model.AggregationResult, error),
) {
	id := r.PathValue("id")
	if b, ok := find(id); ok {
		WriteJSON(w, http.StatusOK, b)
		return
	}
	if _, err := fetch(r.Context()); err != nil {
		WriteAppError(w, err)
		return
	}
	if b, ok := find(id); ok {
		WriteJSON(w, http.StatusOK, b)
		return
	}
	WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New(MsgNoBusiness)})
}

func failureMessages(failures []model.JoinFailure) []string {
	if len(failures) == 0 {
		return nil
	}
	out := make([]string, 0, len(failures))
	for _, f := range failures {
		out = append(out, f.Error())
	}
	return out
}

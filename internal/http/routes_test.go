package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/pmsadmin/console/internal/domain/model"
	apperrors "github.com/pmsadmin/console/internal/errors"
	"github.com/pmsadmin/console/internal/ports"
	"github.com/pmsadmin/console/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type failingChecker struct{}

func (failingChecker) Health(context.Context) error { return errors.New("down") }

func TestHealthz(t *testing.T) {
	f := newConsoleFixture(t)

	rec := f.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, healthResponse, rec.Body.String())

	rec = f.do(t, http.MethodHead, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	h := NewRouter(RouterServices{Sessions: f.reg, Health: []HealthChecker{failingChecker{}}})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSessions_IssueCookieOnce(t *testing.T) {
	f := newConsoleFixture(t)

	rec := f.do(t, http.MethodGet, "/api/session", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, testCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	view := decodeBody[sessionView](t, rec)
	assert.False(t, view.Authenticated)
	assert.Equal(t, "en", view.Lang)

	rec = f.do(t, http.MethodGet, "/api/session", cookies[0].Value, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies(), "known session must not be reissued")
	assert.Equal(t, 1, f.reg.Len())
}

func TestSessions_RejectsForgedCookie(t *testing.T) {
	f := newConsoleFixture(t)
	rec := f.do(t, http.MethodGet, "/api/session", "../../etc/passwd", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.NotEqual(t, "../../etc/passwd", rec.Result().Cookies()[0].Value)
}

func TestLogin(t *testing.T) {
	t.Run("user login persists session", func(t *testing.T) {
		f := newConsoleFixture(t)
		f.api.EXPECT().Login(gomock.Any(), "owner@shop.io", "pw").Return("user-tok", nil)

		rec := f.do(t, http.MethodPost, "/api/session/login", "", map[string]any{
			"email": "owner@shop.io", "password": "pw",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		view := decodeBody[sessionView](t, rec)
		assert.True(t, view.Authenticated)
		assert.False(t, view.IsAdmin)
		assert.Equal(t, "owner@shop.io", view.Email)

		id := sessionCookie(t, rec)
		rec = f.do(t, http.MethodGet, "/api/session", id, nil)
		assert.True(t, decodeBody[sessionView](t, rec).Authenticated)
	})

	t.Run("admin login fetches aggregation", func(t *testing.T) {
		f := newConsoleFixture(t)
		b := testutil.NewBusiness("b1").WithName("Cafe").WithPermission("kiosk", "1", "2030-01-01")
		f.api.EXPECT().Login(gomock.Any(), "admin@shop.io", "pw").Return("user-tok", nil)
		f.creds.EXPECT().AdminCredential(gomock.Any(), "admin@shop.io").Return("admin-tok", nil)
		f.api.EXPECT().SearchBusinesses(gomock.Any(), "admin-tok").Return([]model.Business{b.Summary()}, nil)
		f.api.EXPECT().GetBusinessPermissions(gomock.Any(), "admin-tok", "b1").Return(b.Permissions(), nil)

		rec := f.do(t, http.MethodPost, "/api/session/login", "", map[string]any{
			"email": "admin@shop.io", "password": "pw", "admin": true,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.True(t, decodeBody[sessionView](t, rec).IsAdmin)

		// Served from cache: no further API calls are expected.
		id := sessionCookie(t, rec)
		rec = f.do(t, http.MethodGet, "/api/admin/businesses", id, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		list := decodeBody[detailedListResponse](t, rec)
		require.Len(t, list.Businesses, 1)
		assert.Equal(t, "Cafe", list.Businesses[0].Name)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		f := newConsoleFixture(t)
		f.api.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", apperrors.Wrap(&ports.APIError{Endpoint: "/admin/login", StatusCode: 401}, apperrors.ErrCodeUpstream, "x"))

		rec := f.do(t, http.MethodPost, "/api/session/login", "", map[string]any{
			"email": "owner@shop.io", "password": "bad",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeBody[errorBody](t, rec)
		assert.Equal(t, "unauthorized", body.Error)
	})

	t.Run("validation error names the field", func(t *testing.T) {
		f := newConsoleFixture(t)
		rec := f.do(t, http.MethodPost, "/api/session/login", "", map[string]any{
			"email": "nope", "password": "pw",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "email", decodeBody[errorBody](t, rec).Field)
	})

	t.Run("unknown json fields are rejected", func(t *testing.T) {
		f := newConsoleFixture(t)
		rec := f.do(t, http.MethodPost, "/api/session/login", "", map[string]any{
			"email": "owner@shop.io", "password": "pw", "role": "root",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, ErrCodeInvalidJSON, decodeBody[errorBody](t, rec).Error)
	})
}

func TestLogin_IssuesNewSessionID(t *testing.T) {
	f := newConsoleFixture(t)
	planted := uuid.NewString()

	rec := f.do(t, http.MethodPut, "/api/lang", planted, langBody{Lang: "zh"})
	require.Equal(t, http.StatusOK, rec.Code)

	f.api.EXPECT().Login(gomock.Any(), "owner@shop.io", "pw").Return("user-tok", nil)
	rec = f.do(t, http.MethodPost, "/api/session/login", planted, map[string]any{
		"email": "owner@shop.io", "password": "pw",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	id := sessionCookie(t, rec)
	assert.NotEqual(t, planted, id)

	rec = f.do(t, http.MethodGet, "/api/session", planted, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	old := decodeBody[sessionView](t, rec)
	assert.False(t, old.Authenticated)
	assert.Equal(t, "en", old.Lang)

	rec = f.do(t, http.MethodGet, "/api/session", id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	current := decodeBody[sessionView](t, rec)
	assert.True(t, current.Authenticated)
	assert.Equal(t, "zh", current.Lang, "language preference follows the new session")

	for _, key := range f.kv.Keys() {
		assert.NotContains(t, key, planted)
	}
}

func TestLogin_FailureKeepsSessionID(t *testing.T) {
	f := newConsoleFixture(t)
	planted := f.signIn(t, false)
	f.api.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", apperrors.Wrap(&ports.APIError{Endpoint: "/admin/login", StatusCode: 401}, apperrors.ErrCodeUpstream, "x"))

	rec := f.do(t, http.MethodPost, "/api/session/login", planted, map[string]any{
		"email": "owner@shop.io", "password": "bad",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, 1, f.reg.Len())

	rec = f.do(t, http.MethodGet, "/api/session", planted, nil)
	assert.True(t, decodeBody[sessionView](t, rec).Authenticated)
}

func TestLogout(t *testing.T) {
	f := newConsoleFixture(t)
	id := f.signIn(t, true)

	rec := f.do(t, http.MethodPost, "/api/session/logout", id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEqual(t, id, sessionCookie(t, rec))

	rec = f.do(t, http.MethodGet, "/api/businesses", id, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, f.kv.Keys())
}

func TestGuards(t *testing.T) {
	f := newConsoleFixture(t)

	rec := f.do(t, http.MethodGet, "/api/businesses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, MsgSignInFirst, decodeBody[errorBody](t, rec).Message)

	user := f.signIn(t, false)
	for _, path := range []string{
		"/api/admin/businesses",
		"/api/admin/businesses/b1",
		"/api/admin/businesses/b1/agents",
		"/api/admin/agents/businesses?email=a@b.io",
	} {
		rec = f.do(t, http.MethodGet, path, user, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}
}

func TestOwnBusinesses(t *testing.T) {
	f := newConsoleFixture(t)
	id := f.signIn(t, false)
	f.api.EXPECT().ListBusinesses(gomock.Any(), "user-tok").
		Return([]model.Business{{ID: "b1", Name: "Cafe", OwnerID: "o1"}}, nil)

	rec := f.do(t, http.MethodGet, "/api/businesses", id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[businessListResponse](t, rec)
	assert.Equal(t, []model.Business{{ID: "b1", Name: "Cafe", OwnerID: "o1"}}, list.Businesses)
}

func TestAdminBusinesses(t *testing.T) {
	t.Run("filters and reports partial failures", func(t *testing.T) {
		f := newConsoleFixture(t)
		id := f.signIn(t, true)
		cafe := testutil.NewBusiness("b1").WithName("Corner Cafe").WithPermission("kiosk", "1", "2030-01-01")
		bar := testutil.NewBusiness("b2").WithName("Night Bar")
		broken := testutil.NewBusiness("b3").WithName("Cafe Broken")

		f.api.EXPECT().SearchBusinesses(gomock.Any(), "admin-tok").
			Return([]model.Business{cafe.Summary(), bar.Summary(), broken.Summary()}, nil)
		f.api.EXPECT().GetBusinessPermissions(gomock.Any(), "admin-tok", "b1").Return(cafe.Permissions(), nil)
		f.api.EXPECT().GetBusinessPermissions(gomock.Any(), "admin-tok", "b2").Return(bar.Permissions(), nil)
		f.api.EXPECT().GetBusinessPermissions(gomock.Any(), "admin-tok", "b3").
			Return(nil, apperrors.Upstream("boom"))

		rec := f.do(t, http.MethodGet, "/api/admin/businesses?q=CAFE", id, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		list := decodeBody[detailedListResponse](t, rec)
		require.Len(t, list.Businesses, 1)
		assert.Equal(t, "b1", list.Businesses[0].ID)
		assert.Equal(t, 2, list.Total)
		require.Len(t, list.PartialFailures, 1)
		assert.Contains(t, list.PartialFailures[0], "b3")

		rec = f.do(t, http.MethodGet, "/api/admin/businesses?q=%20night", id, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decodeBody[detailedListResponse](t, rec).Businesses)

		rec = f.do(t, http.MethodGet, "/api/admin/businesses?q=%20bar", id, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		list = decodeBody[detailedListResponse](t, rec)
		require.Len(t, list.Businesses, 1)
		assert.Equal(t, "b2", list.Businesses[0].ID)
	})

	t.Run("detail fetches once then 404", func(t *testing.T) {
		f := newConsoleFixture(t)
		id := f.signIn(t, true)
		f.api.EXPECT().SearchBusinesses(gomock.Any(), "admin-tok").Return([]model.Business{}, nil)

		rec := f.do(t, http.MethodGet, "/api/admin/businesses/missing", id, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("upstream failure maps to 502", func(t *testing.T) {
		f := newConsoleFixture(t)
		id := f.signIn(t, true)
		f.api.EXPECT().SearchBusinesses(gomock.Any(), "admin-tok").Return(nil, apperrors.Upstream("search failed"))

		rec := f.do(t, http.MethodPost, "/api/admin/businesses/refresh", id, nil)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "search failed", decodeBody[errorBody](t, rec).Message)
	})
}

func TestAgentBusinesses(t *testing.T) {
	f := newConsoleFixture(t)
	id := f.signIn(t, false)
	f.api.EXPECT().ListAgentBusinesses(gomock.Any(), "user-tok").
		Return([]model.AgentBusiness{{BusinessID: "b9"}}, nil)
	f.api.EXPECT().GetBusinessPermissions(gomock.Any(), "user-tok", "b9").
		Return([]model.Permission{testutil.AgentPermission("b9", "Kiosk Hub", "o9", "vend")}, nil)

	rec := f.do(t, http.MethodGet, "/api/agent/businesses", id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[detailedListResponse](t, rec)
	require.Len(t, list.Businesses, 1)
	assert.Equal(t, "Kiosk Hub", list.Businesses[0].Name)

	rec = f.do(t, http.MethodGet, "/api/agent/businesses/b9", id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "o9", decodeBody[model.DetailedBusiness](t, rec).OwnerID)
}

func TestPermissions(t *testing.T) {
	seedCache := func(t *testing.T, f *consoleFixture, b *testutil.BusinessBuilder) string {
		t.Helper()
		id := f.signIn(t, true)
		f.api.EXPECT().SearchBusinesses(gomock.Any(), "admin-tok").Return([]model.Business{b.Summary()}, nil)
		f.api.EXPECT().GetBusinessPermissions(gomock.Any(), "admin-tok", b.Summary().ID).Return(b.Permissions(), nil)
		rec := f.do(t, http.MethodPost, "/api/admin/businesses/refresh", id, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		return id
	}

	t.Run("available names exclude granted", func(t *testing.T) {
		f := newConsoleFixture(t)
		id := seedCache(t, f, testutil.NewBusiness("b1").WithPermission("kiosk", "1", "2030-01-01"))

		rec := f.do(t, http.MethodGet, "/api/admin/businesses/b1/permission-names", id, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"vend", "onlineshop", "kds"}, decodeBody[map[string][]string](t, rec)["names"])
	})

	t.Run("duplicate add is a conflict without api call", func(t *testing.T) {
		f := newConsoleFixture(t)
		id := seedCache(t, f, testutil.NewBusiness("b1").WithPermission("kiosk", "1", "2030-01-01"))

		rec := f.do(t, http.MethodPost, "/api/admin/businesses/b1/permissions", id, map[string]string{
			"name": "kiosk", "level": "2", "expire": "2031-01-01",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "name", decodeBody[errorBody](t, rec).Field)
	})

	t.Run("add refreshes and returns the business", func(t *testing.T) {
		f := newConsoleFixture(t)
		b := testutil.NewBusiness("b1").WithPermission("kiosk", "1", "2030-01-01")
		id := seedCache(t, f, b)

		f.api.EXPECT().AddPermission(gomock.Any(), ports.AddPermissionInput{
			AdminToken: "admin-tok",
			BusinessID: "b1",
			Permission: model.PermissionInput{Name: "vend", Level: "2", Expire: "2031-01-01"},
		}).Return(nil)
		updated := b.WithPermission("vend", "2", "2031-01-01")
		f.api.EXPECT().SearchBusinesses(gomock.Any(), "admin-tok").Return([]model.Business{updated.Summary()}, nil)
		f.api.EXPECT().GetBusinessPermissions(gomock.Any(), "admin-tok", "b1").Return(updated.Permissions(), nil)

		rec := f.do(t, http.MethodPost, "/api/admin/businesses/b1/permissions", id, map[string]string{
			"name": "vend", "level": "2", "expire": "2031-01-01",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Len(t, decodeBody[model.DetailedBusiness](t, rec).Permissions, 2)
	})

	t.Run("invalid level", func(t *testing.T) {
		f := newConsoleFixture(t)
		id := f.signIn(t, true)
		rec := f.do(t, http.MethodPut, "/api/admin/permissions/p1", id, map[string]string{
			"name": "kiosk", "level": "9", "expire": "2031-01-01",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "level", decodeBody[errorBody](t, rec).Field)
	})

	t.Run("failed delete does not refresh", func(t *testing.T) {
		f := newConsoleFixture(t)
		id := f.signIn(t, true)
		f.api.EXPECT().DeletePermission(gomock.Any(), "admin-tok", "p1").Return(apperrors.Upstream("nope"))

		rec := f.do(t, http.MethodDelete, "/api/admin/permissions/p1", id, nil)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("delete refreshes", func(t *testing.T) {
		f := newConsoleFixture(t)
		id := f.signIn(t, true)
		f.api.EXPECT().DeletePermission(gomock.Any(), "admin-tok", "p1").Return(nil)
		f.api.EXPECT().SearchBusinesses(gomock.Any(), "admin-tok").Return([]model.Business{}, nil)

		rec := f.do(t, http.MethodDelete, "/api/admin/permissions/p1", id, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestAgents(t *testing.T) {
	f := newConsoleFixture(t)
	id := f.signIn(t, true)

	f.api.EXPECT().ListBusinessAgents(gomock.Any(), "admin-tok", "b1").
		Return([]model.Agent{{ID: "a1", Email: "agent@shop.io"}}, nil)
	rec := f.do(t, http.MethodGet, "/api/admin/businesses/b1/agents", id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[map[string][]model.Agent](t, rec)["agents"], 1)

	f.api.EXPECT().AddAgent(gomock.Any(), ports.AgentInput{
		Credential: "admin-tok", BusinessID: "b1", Email: "new@shop.io",
	}).Return(nil)
	rec = f.do(t, http.MethodPost, "/api/admin/businesses/b1/agents", id, map[string]string{"email": "new@shop.io"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/admin/businesses/b1/agents", id, map[string]string{"email": "bad"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.api.EXPECT().RemoveAgent(gomock.Any(), ports.AgentInput{
		Credential: "admin-tok", BusinessID: "b1", AgentID: "a1",
	}).Return(nil)
	rec = f.do(t, http.MethodDelete, "/api/admin/businesses/b1/agents/a1", id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	f.api.EXPECT().SearchAgentBusinesses(gomock.Any(), "admin-tok", "agent@shop.io").
		Return([]model.DetailedBusiness{{ID: "b1", Name: "Cafe"}}, nil)
	rec = f.do(t, http.MethodGet, "/api/admin/agents/businesses?email=agent@shop.io", id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[map[string][]model.DetailedBusiness](t, rec)["businesses"], 1)
}

func TestLangAndDictionary(t *testing.T) {
	f := newConsoleFixture(t)
	rec := f.do(t, http.MethodGet, "/api/lang", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "en", decodeBody[langBody](t, rec).Lang)
	id := rec.Result().Cookies()[0].Value

	rec = f.do(t, http.MethodPut, "/api/lang", id, langBody{Lang: "zh"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/lang", id, langBody{Lang: "fr"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "lang", decodeBody[errorBody](t, rec).Field)

	rec = f.do(t, http.MethodGet, "/api/i18n", id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[struct {
		Lang    string            `json:"lang"`
		Strings map[string]string `json:"strings"`
	}](t, rec)
	assert.Equal(t, "zh", body.Lang)
	assert.NotEmpty(t, body.Strings)

	rec = f.do(t, http.MethodGet, "/api/i18n?lang=en", id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"lang":"en"`)
}

package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/pmsadmin/console/internal/data"
	"github.com/pmsadmin/console/internal/domain/model"
	"github.com/pmsadmin/console/internal/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testCookie = "pms_test"

type consoleFixture struct {
	api     *mocks.MockPermissionAPI
	creds   *mocks.MockAdminCredentialSource
	kv      *data.MemoryKVRepo
	reg     *SessionRegistry
	handler http.Handler
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newConsoleFixture(t *testing.T) *consoleFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &consoleFixture{
		api:   mocks.NewMockPermissionAPI(ctrl),
		creds: mocks.NewMockAdminCredentialSource(ctrl),
		kv:    data.NewMemoryKVRepo(),
	}
	f.reg = NewSessionRegistry(SessionRegistryOptions{
		Factory: NewSessionFactory(SessionDeps{
			API:         f.api,
			KV:          f.kv,
			Credentials: f.creds,
			Concurrency: 2,
			Logger:      discardLogger(),
		}),
		Logger: discardLogger(),
	})
	f.handler = NewRouter(RouterServices{
		Sessions: f.reg,
		Cookie:   CookieConfig{Name: testCookie},
		Logger:   discardLogger(),
	})
	return f
}

// signIn persists a session under a fresh console session id and returns the id.
func (f *consoleFixture) signIn(t *testing.T, admin bool) string {
	t.Helper()
	id := uuid.NewString()
	kv := data.NewScopedKV(f.kv, "session:"+id)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, model.KeyUserToken, "user-tok"))
	require.NoError(t, kv.Set(ctx, model.KeyUserEmail, "owner@shop.io"))
	if admin {
		require.NoError(t, kv.Set(ctx, model.KeyAdminToken, "admin-tok"))
		require.NoError(t, kv.Set(ctx, model.KeyIsAdmin, "true"))
	}
	return id
}

func (f *consoleFixture) do(t *testing.T, method, path, sessionID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: sessionID})
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

// sessionCookie returns the last session cookie the response set.
func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	id := ""
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookie {
			id = c.Value
		}
	}
	require.NotEmpty(t, id, "response set no session cookie")
	return id
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

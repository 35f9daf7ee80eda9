package posserver

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/Apurer/retail-pos/internal/shared/errors"
)

func TestProtectedRouteRequiresToken(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/products", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
}

func TestUnknownTokenIsRejected(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/products", "not-a-session", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthIsPublic(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestLoginMeLogout(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, adminUsername, adminPassword)

	me := srv.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, me.Code)
	user := decode[map[string]any](t, me)
	assert.Equal(t, adminUsername, user["username"])
	assert.Equal(t, "ADMIN", user["role"])
	assert.NotContains(t, me.Body.String(), "password")

	out := srv.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, out.Code)

	after := srv.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, after.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": adminUsername, "password": "nope"})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	problem := decode[apierrors.ProblemDetail](t, rec)
	assert.Equal(t, apierrors.TypeInvalidCredentials, problem.Type)
}

func TestLoginRequiresBothFields(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": adminUsername})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decode[apierrors.ProblemDetail](t, rec)
	assert.Equal(t, apierrors.TypeValidation, problem.Type)
	assert.Contains(t, problem.Extensions["fields"], "password")
}

func TestUserManagementRequiresAdmin(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.login(t, adminUsername, adminPassword)

	created := srv.do(t, http.MethodPost, "/api/v1/users", adminToken, map[string]any{
		"username": "till1",
		"password": "secret",
		"fullName": "Till One",
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	assert.Equal(t, "CASHIER", decode[map[string]any](t, created)["role"])

	duplicate := srv.do(t, http.MethodPost, "/api/v1/users", adminToken, map[string]any{"username": "till1", "password": "secret"})
	assert.Equal(t, http.StatusConflict, duplicate.Code)

	cashierToken := srv.login(t, "till1", "secret")
	forbidden := srv.do(t, http.MethodGet, "/api/v1/users", cashierToken, nil)
	assert.Equal(t, http.StatusForbidden, forbidden.Code)

	allowed := srv.do(t, http.MethodGet, "/api/v1/products", cashierToken, nil)
	assert.Equal(t, http.StatusOK, allowed.Code)
}

func TestDeactivatingUserEndsSessions(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.login(t, adminUsername, adminPassword)
	require.Equal(t, http.StatusCreated, srv.do(t, http.MethodPost, "/api/v1/users", adminToken,
		map[string]any{"username": "till2", "password": "secret"}).Code)
	cashierToken := srv.login(t, "till2", "secret")

	rec := srv.do(t, http.MethodPut, "/api/v1/users/till2", adminToken, map[string]any{"username": "till2", "active": false})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, http.StatusUnauthorized, srv.do(t, http.MethodGet, "/api/v1/products", cashierToken, nil).Code)
	relogin := srv.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "till2", "password": "secret"})
	assert.Equal(t, http.StatusUnauthorized, relogin.Code)
	assert.Contains(t, relogin.Body.String(), "disabled")
}

func TestAdminCannotDeleteOwnAccount(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, adminUsername, adminPassword)

	rec := srv.do(t, http.MethodDelete, "/api/v1/users/"+adminUsername, token, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	missing := srv.do(t, http.MethodDelete, "/api/v1/users/ghost", token, nil)
	assert.Equal(t, http.StatusNoContent, missing.Code)
}

func TestClockStreamsTicks(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, adminUsername, adminPassword)
	server := httptest.NewServer(srv.router)
	t.Cleanup(server.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/pos/clock?access_token="+token, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	events := 0
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() && events < 2 {
		line := scanner.Text()
		if strings.HasPrefix(line, "event:") {
			assert.Equal(t, "tick", strings.TrimSpace(strings.TrimPrefix(line, "event:")))
			events++
		}
	}
	assert.Equal(t, 2, events)
}

package mockapi_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/trivial-time-client/internal/mockapi"
)

func do(t *testing.T, srv *mockapi.Server, method, path, key, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if key != "" {
		req.Header.Set("Authorization", "key="+key)
	}
	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestAuthorization(t *testing.T) {
	srv := mockapi.New("secret")

	assert.Equal(t, http.StatusUnauthorized, do(t, srv, http.MethodGet, "/api/projects", "", "").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, do(t, srv, http.MethodGet, "/api/projects", "other", "").StatusCode)
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/projects", "secret", "").StatusCode)
}

func TestFailNextIsOneShot(t *testing.T) {
	srv := mockapi.New("k")
	srv.FailNext(http.MethodGet, "/api/activities", http.StatusBadGateway)

	assert.Equal(t, http.StatusBadGateway, do(t, srv, http.MethodGet, "/api/activities", "k", "").StatusCode)
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/activities", "k", "").StatusCode)
	assert.Equal(t, 2, srv.Calls(http.MethodGet, "/api/activities"))
}

func TestStopStampsServerTime(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	srv := mockapi.New("k", mockapi.WithClock(func() time.Time { return now }))
	srv.Seed()

	resp := do(t, srv, http.MethodPost, "/api/time-entries", "k", `{"project_id": 1, "activity_id": 4}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	now = now.Add(time.Hour)
	resp = do(t, srv, http.MethodPatch, "/api/time-entries/8/stop", "k", `{"comment": "done"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	e, ok := srv.TimeEntry(8)
	require.True(t, ok)
	require.NotNil(t, e.End)
	assert.True(t, e.End.Equal(now))
	assert.Equal(t, "done", e.Comment)
}

func TestValidation(t *testing.T) {
	srv := mockapi.New("k")
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, srv, http.MethodPost, "/api/projects", "k", `{"name": ""}`).StatusCode)
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodPut, "/api/projects/42", "k", `{"name": "x"}`).StatusCode)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPatch, "/api/projects/abc/enable", "k", "").StatusCode)
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodDelete, "/api/daily-objectives/1", "k", "").StatusCode)
}

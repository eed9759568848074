package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/trivial-time-client/internal/api"
	"github.com/Tiliavir/trivial-time-client/internal/mockapi"
	"github.com/Tiliavir/trivial-time-client/internal/model"
	"github.com/Tiliavir/trivial-time-client/internal/session"
)

func keyed(t *testing.T, key string) *session.Store {
	t.Helper()
	s := &session.Store{}
	require.NoError(t, s.SetKey(key))
	return s
}

func TestHeaders(t *testing.T) {
	var got http.Header
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 7, "name": "P", "description": "d", "is_enabled": 1}`))
	}))
	defer srv.Close()

	client, err := api.New(api.Options{BaseURL: srv.URL + "/", Source: keyed(t, "abc")})
	require.NoError(t, err)

	p, err := client.CreateProject(context.Background(), model.ProjectInput{Name: "P", Description: "d"})
	require.NoError(t, err)

	assert.Equal(t, "key=abc", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
	assert.Equal(t, map[string]any{"name": "P", "description": "d"}, gotBody)
	assert.Equal(t, model.Project{ID: 7, Name: "P", Description: "d", Enabled: true}, p)
}

func TestKeyReadPerRequest(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	key := keyed(t, "first")
	client, err := api.New(api.Options{BaseURL: srv.URL, Source: key})
	require.NoError(t, err)

	_, err = client.ListActivities(context.Background())
	require.NoError(t, err)
	require.NoError(t, key.SetKey("second"))
	_, err = client.ListActivities(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"key=first", "key=second"}, seen)
}

func TestNoKey(t *testing.T) {
	client, err := api.New(api.Options{BaseURL: "http://unused.test", Source: &session.Store{}})
	require.NoError(t, err)
	_, err = client.ListProjects(context.Background())
	require.ErrorIs(t, err, session.ErrNoKey)
}

func TestErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	client, err := api.New(api.Options{BaseURL: srv.URL, Source: keyed(t, "k")})
	require.NoError(t, err)

	err = client.DeleteObjective(context.Background(), 3)
	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "/api/daily-objectives/3", apiErr.Path)
	assert.Equal(t, http.MethodDelete, apiErr.Method)
	assert.Equal(t, http.StatusForbidden, api.StatusCode(err))
	assert.Zero(t, api.StatusCode(errors.New("other")))
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client, err := api.New(api.Options{BaseURL: srv.URL, Source: keyed(t, "k"), Timeout: 20 * time.Millisecond})
	require.NoError(t, err)
	_, err = client.ListTimeEntries(context.Background())
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewValidates(t *testing.T) {
	_, err := api.New(api.Options{Source: &session.Store{}})
	assert.Error(t, err)
	_, err = api.New(api.Options{BaseURL: "http://x"})
	assert.Error(t, err)
}

func TestEndpointsAgainstMock(t *testing.T) {
	srv := mockapi.New("k")
	srv.Seed()
	client, err := api.New(api.Options{
		BaseURL:    "http://backend.test",
		Source:     keyed(t, "k"),
		HTTPClient: &http.Client{Transport: srv.Transport()},
	})
	require.NoError(t, err)
	ctx := context.Background()

	projects, err := client.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 3)

	require.NoError(t, client.SetProjectEnabled(ctx, 3, true))
	p, _ := srv.Project(3)
	assert.True(t, bool(p.Enabled))

	require.NoError(t, client.UpdateProject(ctx, 1, model.ProjectInput{Name: "Renamed"}))
	p, _ = srv.Project(1)
	assert.Equal(t, "Renamed", p.Name)

	entry, err := client.CreateTimeEntry(ctx, model.TimeEntryInput{ProjectID: 1, ActivityID: 4, Comment: "c"})
	require.NoError(t, err)
	assert.True(t, entry.Running())

	end := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	stopped, err := client.StopTimeEntry(ctx, entry.ID, model.StopInput{End: &end})
	require.NoError(t, err)
	require.NotNil(t, stopped.End)
	assert.True(t, stopped.End.Equal(end), "client-supplied end is honoured by the mock")

	_, err = client.StopTimeEntry(ctx, entry.ID, model.StopInput{})
	assert.Equal(t, http.StatusConflict, api.StatusCode(err))

	o, err := client.CreateObjective(ctx, model.ObjectiveInput{Name: "n", Content: "c"})
	require.NoError(t, err)
	require.NoError(t, client.SetObjectiveDone(ctx, o.ID, true))
	require.NoError(t, client.SetObjectiveDone(ctx, o.ID, false))
	require.NoError(t, client.UpdateObjective(ctx, o.ID, model.ObjectiveInput{Name: "m"}))
	objectives, err := client.ListObjectives(ctx)
	require.NoError(t, err)
	require.Len(t, objectives, 1)
	assert.Equal(t, "m", objectives[0].Name)
	assert.False(t, bool(objectives[0].Done))
	require.NoError(t, client.DeleteObjective(ctx, o.ID))

	_, err = client.CreateTimeEntry(ctx, model.TimeEntryInput{ProjectID: 99, ActivityID: 4})
	assert.Equal(t, http.StatusUnprocessableEntity, api.StatusCode(err))
}

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/trivial-time-client/internal/mockapi"
	"github.com/Tiliavir/trivial-time-client/internal/session"
	"github.com/Tiliavir/trivial-time-client/internal/stats"
	"github.com/Tiliavir/trivial-time-client/internal/store"
)

// backend starts a seeded mock backend on a loopback port and points the
// client configuration at it. The returned clock drives server timestamps.
func backend(t *testing.T, key string) *atomic.Int64 {
	t.Helper()
	clock := &atomic.Int64{}
	clock.Store(time.Now().UnixNano())

	srv := mockapi.New(key, mockapi.WithClock(func() time.Time { return time.Unix(0, clock.Load()) }))
	srv.Seed()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.App().Listener(ln) }()
	t.Cleanup(func() { _ = srv.App().Shutdown() })

	t.Setenv("HOME", t.TempDir())
	t.Setenv("TTC_API_URL", "http://"+ln.Addr().String())
	t.Setenv("TTC_API_KEY", "")
	t.Setenv("TTC_LOG_LEVEL", "error")
	return clock
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommandsRequireLogin(t *testing.T) {
	backend(t, "secret")

	for _, args := range [][]string{{"status"}, {"objectives", "list"}, {"projects", "list"}, {"stats"}} {
		_, err := run(t, args...)
		assert.ErrorIs(t, err, errLoginRequired, "%v", args)
	}
}

func TestLoginRejectsWrongKey(t *testing.T) {
	backend(t, "secret")

	_, err := run(t, "login", "wrong")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))

	_, err = run(t, "status")
	assert.ErrorIs(t, err, errLoginRequired, "a rejected key is not kept")
}

func TestTrackingSession(t *testing.T) {
	clock := backend(t, "secret")

	out, err := run(t, "login", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in")

	clock.Store(time.Now().Add(-30 * time.Minute).UnixNano())
	out, err = run(t, "start", "internal", "Development", "--comment", "triage")
	require.NoError(t, err)
	assert.Contains(t, out, `Started Development on "Internal"`)

	_, err = run(t, "start", "Website", "Review")
	assert.ErrorIs(t, err, store.ErrAlreadyRunning)

	out, err = run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Project:  Internal")
	assert.Contains(t, out, "Comment:  triage")

	clock.Store(time.Now().UnixNano())
	out, err = run(t, "stop")
	require.NoError(t, err)
	assert.Contains(t, out, "Elapsed: 30m")

	_, err = run(t, "stop")
	assert.Error(t, err)

	out, err = run(t, "stats", "--format", "json")
	require.NoError(t, err)
	var sum stats.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, 1, sum.Entries)
	require.Len(t, sum.Projects, 1)
	assert.Equal(t, "Internal", sum.Projects[0].Name)
}

func TestObjectivesAndProjects(t *testing.T) {
	backend(t, "secret")
	_, err := run(t, "login", "secret")
	require.NoError(t, err)

	_, err = run(t, "objectives", "add", "Write docs", "--content", "README")
	require.NoError(t, err)
	_, err = run(t, "goals", "done", "write docs")
	require.NoError(t, err)
	out, err := run(t, "objectives", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Write docs")
	assert.Contains(t, out, "✓")

	out, err = run(t, "projects", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Legacy")

	_, err = run(t, "projects", "enable", "legacy")
	require.NoError(t, err)
	out, err = run(t, "projects", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Legacy")

	_, err = run(t, "objectives", "rm", "nope")
	assert.Error(t, err)
}

func TestLogout(t *testing.T) {
	backend(t, "secret")
	_, err := run(t, "login", "secret")
	require.NoError(t, err)

	_, err = run(t, "logout")
	require.NoError(t, err)
	assert.False(t, current.keys.HasKey())

	_, err = run(t, "activities")
	assert.ErrorIs(t, err, errLoginRequired)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, exitCode(store.ErrOperationFailed))
	assert.Equal(t, 2, exitCode(session.ErrNoKey))
	assert.Equal(t, 1, exitCode(errors.New("usage")))
}

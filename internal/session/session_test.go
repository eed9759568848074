package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/trivial-time-client/internal/session"
	"github.com/Tiliavir/trivial-time-client/internal/storage"
)

func TestHasKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"", false},
		{"k", true},
		{"0123456789abcdef", true},
		{" ", true},
	}
	for _, tt := range tests {
		s, err := session.Load(storage.Open(t.TempDir()), "")
		require.NoError(t, err)
		require.NoError(t, s.SetKey(tt.key))
		assert.Equal(t, tt.want, s.HasKey(), "HasKey after SetKey(%q)", tt.key)
	}
}

func TestKeySurvivesRestart(t *testing.T) {
	base := t.TempDir()

	s, err := session.Load(storage.Open(base), "")
	require.NoError(t, err)
	require.False(t, s.HasKey())
	require.NoError(t, s.SetKey("secret"))

	restored, err := session.Load(storage.Open(base), "")
	require.NoError(t, err)
	assert.Equal(t, "secret", restored.Key())
}

func TestDefaultKeyOnlyWhenNothingStored(t *testing.T) {
	base := t.TempDir()

	s, err := session.Load(storage.Open(base), "from-env")
	require.NoError(t, err)
	assert.Equal(t, "from-env", s.Key())

	require.NoError(t, s.SetKey("typed"))
	restored, err := session.Load(storage.Open(base), "from-env")
	require.NoError(t, err)
	assert.Equal(t, "typed", restored.Key())

	// An explicit logout is stored too, so the default does not come back.
	require.NoError(t, restored.Clear())
	cleared, err := session.Load(storage.Open(base), "from-env")
	require.NoError(t, err)
	assert.False(t, cleared.HasKey())
}

func TestToken(t *testing.T) {
	var s session.Store
	_, err := s.Token()
	require.ErrorIs(t, err, session.ErrNoKey)

	require.NoError(t, s.SetKey("abc"))
	tok, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc", tok.AccessToken)
	assert.True(t, tok.Valid())
}

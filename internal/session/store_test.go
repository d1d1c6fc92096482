package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, now time.Time) *FileStore {
	t.Helper()
	s := NewFileStore(t.TempDir())
	s.now = func() time.Time { return now }
	return s
}

func TestFileStoreRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := newTestStore(t, now)

	token := signedToken(t, jwt.MapClaims{
		"sub": "user-1",
		"exp": now.Add(time.Hour).Unix(),
	})
	identity := Identity{
		ID:       "user-1",
		Username: "satoshi",
		Email:    "satoshi@example.com",
		Roles:    []string{"ROLE_USER", AdminRole},
	}
	require.NoError(t, s.SaveSession(token, identity))

	cred, ok := s.Credential()
	require.True(t, ok)
	assert.Equal(t, token, cred)

	got, ok := s.Identity()
	require.True(t, ok)
	assert.Equal(t, identity, got)

	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.IsAdmin())
	assert.Equal(t, "Bearer "+token, s.AuthorizationHeader())
}

func TestFileStoreClearSession(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := newTestStore(t, now)

	token := signedToken(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()})
	require.NoError(t, s.SaveSession(token, Identity{Username: "satoshi"}))
	require.NoError(t, s.ClearSession())

	_, ok := s.Credential()
	assert.False(t, ok)
	_, ok = s.Identity()
	assert.False(t, ok)
	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.IsAdmin())
	assert.Empty(t, s.AuthorizationHeader())

	// Clearing an already-empty store succeeds.
	assert.NoError(t, s.ClearSession())
}

func TestFileStoreExpiredCredential(t *testing.T) {
	exp := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	token := signedToken(t, jwt.MapClaims{"exp": exp.Unix()})

	s := newTestStore(t, exp.Add(-time.Second))
	require.NoError(t, s.SaveSession(token, Identity{}))
	assert.True(t, s.IsAuthenticated())

	s.now = func() time.Time { return exp }
	assert.False(t, s.IsAuthenticated(), "expired exactly at the expiry instant")
	assert.Empty(t, s.AuthorizationHeader())

	// The credential itself is still readable; only auth gating changes.
	_, ok := s.Credential()
	assert.True(t, ok)
}

func TestFileStoreCorruptFileReadsAsAbsent(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.yaml"), []byte("{{{not yaml"), 0o600))

	_, ok := s.Credential()
	assert.False(t, ok)
	assert.False(t, s.IsAuthenticated())
	assert.NoError(t, s.ClearSession())
}

func TestFileStoreGeneration(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := newTestStore(t, now)
	token := signedToken(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()})

	g0 := s.Generation()
	require.NoError(t, s.SaveSession(token, Identity{}))
	g1 := s.Generation()
	assert.Greater(t, g1, g0)

	require.NoError(t, s.ClearSession())
	assert.Greater(t, s.Generation(), g1)
}

func TestPendingRegistration(t *testing.T) {
	s := NewFileStore(t.TempDir())

	_, ok := s.PendingRegistration()
	assert.False(t, ok)

	reg := PendingRegistration{RegistrationID: "reg-42", Email: "new@example.com"}
	require.NoError(t, s.SavePendingRegistration(reg))

	got, ok := s.PendingRegistration()
	require.True(t, ok)
	assert.Equal(t, reg, got)

	require.NoError(t, s.ClearPendingRegistration())
	_, ok = s.PendingRegistration()
	assert.False(t, ok)
	assert.NoError(t, s.ClearPendingRegistration())
}

func TestMemoryStoreMatchesFileStoreSemantics(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	token := signedToken(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()})

	m := NewMemoryStore()
	m.Now = func() time.Time { return now }

	assert.False(t, m.IsAuthenticated())
	require.NoError(t, m.SaveSession(token, Identity{Roles: []string{AdminRole}}))
	assert.True(t, m.IsAuthenticated())
	assert.True(t, m.IsAdmin())

	g := m.Generation()
	require.NoError(t, m.ClearSession())
	assert.False(t, m.IsAuthenticated())
	assert.Greater(t, m.Generation(), g)
}

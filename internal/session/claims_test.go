package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestDecodeClaims(t *testing.T) {
	exp := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	token := signedToken(t, jwt.MapClaims{
		"sub":   "user-1",
		"roles": []string{"ROLE_USER", AdminRole},
		"exp":   exp.Unix(),
	})

	claims, err := DecodeClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, []string{"ROLE_USER", AdminRole}, claims.Roles)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.Time.Equal(exp))
}

func TestDecodeClaimsGarbage(t *testing.T) {
	_, err := DecodeClaims("not-a-token")
	assert.Error(t, err)
}

func TestExpiredAtBoundary(t *testing.T) {
	exp := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	claims := &Claims{}
	claims.ExpiresAt = jwt.NewNumericDate(exp)

	assert.False(t, claims.ExpiredAt(exp.Add(-time.Second)), "before expiry")
	assert.True(t, claims.ExpiredAt(exp), "exactly at expiry")
	assert.True(t, claims.ExpiredAt(exp.Add(time.Second)), "after expiry")
}

func TestExpiredAtNoExpiry(t *testing.T) {
	claims := &Claims{}
	assert.False(t, claims.ExpiredAt(time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCredentialExpiredUndecodable(t *testing.T) {
	assert.True(t, credentialExpired("garbage", time.Now()))
}

package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the fields the client reads out of the bearer credential.
// The token is decoded without signature verification; it is only used
// for UI gating, never as proof of anything.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// DecodeClaims parses the credential payload without verifying it.
func DecodeClaims(credential string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ExpiredAt reports whether the claims are expired at the given instant.
// A credential is expired exactly at its expiry timestamp, not one tick
// later. Claims without an expiry never expire.
func (c *Claims) ExpiredAt(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Before(c.ExpiresAt.Time)
}

// credentialExpired treats an undecodable credential as expired.
func credentialExpired(credential string, now time.Time) bool {
	claims, err := DecodeClaims(credential)
	if err != nil {
		return true
	}
	return claims.ExpiredAt(now)
}

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// DisplayClaims are unverified fields extracted from a token purely for
// display (session countdown, whoami). The token stays an opaque
// credential: nothing here may feed an authorization decision — the
// server re-validates the signature on every request.
type DisplayClaims struct {
	Username  string
	ExpiresAt time.Time
}

// DecodeUnverified parses the three-part token structure without checking
// the signature and extracts display fields.
func DecodeUnverified(tokenString string) (*DisplayClaims, error) {
	var claims Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, &claims); err != nil {
		return nil, fmt.Errorf("auth: decode token: %w", err)
	}

	dc := &DisplayClaims{Username: claims.Username}
	if claims.ExpiresAt != nil {
		dc.ExpiresAt = claims.ExpiresAt.Time
	}
	return dc, nil
}

// Remaining returns the time until expiry, or zero if already expired or
// no expiry is present.
func (c *DisplayClaims) Remaining(now time.Time) time.Duration {
	if c.ExpiresAt.IsZero() {
		return 0
	}
	d := c.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

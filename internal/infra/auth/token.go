// Package auth inspects the backend-issued access token. The client
// never validates the signature (the signing key lives server-side);
// it only reads the registered claims to expire local sessions early
// instead of letting every subsequent call 401.
package auth

import (
	"time"

	"github.com/DT1234273/Lockdeal/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// TokenClaims is what the client reads out of the access token.
type TokenClaims struct {
	Subject   string
	Role      entity.Role
	ExpiresAt time.Time
}

type backendClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ParseClaims decodes the token without verifying its signature.
func ParseClaims(token string) (*TokenClaims, error) {
	parser := jwt.NewParser()

	var claims backendClaims
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil, errors.Wrap(err, "parse access token")
	}

	out := &TokenClaims{
		Subject: claims.Subject,
		Role:    entity.Role(claims.Role),
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}

	return out, nil
}

// IsExpired reports whether the token carries an exp claim in the past.
// Tokens without an exp claim are treated as live; the backend decides.
func IsExpired(token string, now time.Time) bool {
	claims, err := ParseClaims(token)
	if err != nil {
		// Unparseable tokens are kept; a wrong guess here would log the
		// user out for a token the backend might still accept.
		return false
	}
	if claims.ExpiresAt.IsZero() {
		return false
	}

	return claims.ExpiresAt.Before(now)
}

package security

import (
	"context"
	"errors"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates bearer tokens against the identity provider's JWKS.
type Verifier struct {
	keys keyfunc.Keyfunc
}

// NewVerifier fetches the JWKS at jwksURI and keeps it refreshed in the
// background until ctx is cancelled.
func NewVerifier(ctx context.Context, jwksURI string) (*Verifier, error) {
	keys, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURI})
	if err != nil {
		return nil, fmt.Errorf("security: load jwks: %w", err)
	}
	return &Verifier{keys: keys}, nil
}

// Verify parses and validates a raw bearer token and returns its claims.
// Expiry errors stay matchable via errors.Is(err, jwt.ErrTokenExpired).
func (v *Verifier) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, v.keys.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("security: parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("security: token rejected")
	}
	return claims, nil
}

package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. Sensible security defaults, overridable per service.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 60 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	// Advisory; enforcement happens wherever the opaque token is stored.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims are the access-token claims used across the service. Changes should
// stay additive to preserve compatibility for downstream consumers.
type Claims struct {
	jwt.RegisteredClaims

	// Email for the authenticated user. Also carried as the subject; kept
	// as its own claim so downstream middleware doesn't have to know that.
	Email string `json:"email,omitempty"`

	// UID is the user's internal identifier.
	UID string `json:"uid,omitempty"`

	// Roles holds the user's role names.
	Roles []string `json:"roles,omitempty"`

	// UserClaims carries arbitrary per-user claims attached by the store.
	UserClaims map[string]string `json:"user_claims,omitempty"`
}

// NewTokenClaims builds claims with the registered time window, issuer and
// audience filled in. The caller sets subject, jti and the identity fields.
func NewTokenClaims(ttl time.Duration, issuer string, audience []string, now time.Time) Claims {
	now = now.UTC()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// ValidateIssuer checks the issuer against an expected value. An empty
// expectation enforces nothing.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience checks that at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}

	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateExpiry ensures the token is inside its exp/nbf window.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}

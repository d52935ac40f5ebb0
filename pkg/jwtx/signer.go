package jwtx

import (
	"errors"
	"time"
)

// Signer is our interface for anything that can sign access tokens.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
	Validate() error
}

// Verifier validates a token and returns the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifyOptions captures common expectations used by verifiers.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Audience values the token must contain (claims.aud). Empty means "don't care".
	Audience []string

	// Leeway allows small clock skew when validating exp/nbf.
	Leeway time.Duration
}

var (
	ErrKeyTooShort = errors.New("jwtx: signing key shorter than 32 bytes")
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrAudience    = errors.New("jwtx: audience mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// NewSignerHS256 creates an HS256 signer from a symmetric key. The key must
// be at least 32 bytes; anything shorter is a configuration error surfaced
// at construction, not at signing time.
func NewSignerHS256(key []byte) (Signer, error) {
	return newHS256Signer(key)
}

// NewVerifierHS256 creates a Verifier sharing the signer's symmetric key.
func NewVerifierHS256(key []byte, opts VerifyOptions) (Verifier, error) {
	return newHS256Verifier(key, opts)
}

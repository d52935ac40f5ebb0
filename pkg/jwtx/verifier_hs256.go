package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// HS256Verifier verifies HS256 tokens with the shared symmetric key.
type HS256Verifier struct {
	key  []byte
	opts VerifyOptions
}

func newHS256Verifier(key []byte, opts VerifyOptions) (*HS256Verifier, error) {
	if len(key) < MinKeyBytes {
		return nil, ErrKeyTooShort
	}
	return &HS256Verifier{key: key, opts: opts}, nil
}

// Verify parses and validates the token signature and time window, then
// enforces the configured issuer and audience expectations.
func (v *HS256Verifier) Verify(token string) (Claims, error) {
	var claims Claims

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.opts.Leeway),
	)

	_, err := parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateAudience(v.opts.Audience); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

// DecodeUnverified structurally parses a token WITHOUT checking its
// signature or expiry. Exists for flows that need to read claims out of an
// expired token (refresh exchange); never use it for authentication.
func DecodeUnverified(token string) (Claims, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Claims{}, ErrMalformed
	}
	return claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrAlgMismatch
	default:
		return err
	}
}

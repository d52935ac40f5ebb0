package jwtx

import (
	"github.com/golang-jwt/jwt/v5"
)

// MinKeyBytes is the minimum symmetric key length for HS256. The HMAC key
// should be at least as long as the hash output.
const MinKeyBytes = 32

// HS256Signer implements the Signer interface using HMAC SHA-256.
type HS256Signer struct {
	key []byte
	alg string
}

func newHS256Signer(key []byte) (*HS256Signer, error) {
	if len(key) < MinKeyBytes {
		return nil, ErrKeyTooShort
	}

	return &HS256Signer{
		key: key,
		alg: jwt.SigningMethodHS256.Alg(),
	}, nil
}

func (s *HS256Signer) Alg() string { return s.alg }

// Sign takes claims and turns them into a signed compact JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.key)
}

// Validate does a quick sanity check that the key is usable.
func (s *HS256Signer) Validate() error {
	if len(s.key) < MinKeyBytes {
		return ErrKeyTooShort
	}
	return nil
}

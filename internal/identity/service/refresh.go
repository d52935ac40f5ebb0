package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/gatehouselabs/gatehouse/internal/identity/domain"
	"github.com/gatehouselabs/gatehouse/internal/identity/store"
	"github.com/gatehouselabs/gatehouse/pkg/cryptox"
)

// RefreshTokenService issues and checks opaque refresh tokens.
//
// Tokens are stored as fingerprints keyed by the user's security stamp, so
// rotating the stamp invalidates every stored token without touching the
// token rows. At most one refresh token exists per (user, issuer); issuing
// a new one replaces the old.
type RefreshTokenService struct {
	Store  store.Store
	Issuer string
	TTL    time.Duration
}

// Create mints a fresh opaque token for user and persists its fingerprint,
// replacing any existing token for this issuer. The removal and the insert
// run in one transaction, removal first, so a failure partway through never
// leaves the prior token usable.
func (s *RefreshTokenService) Create(ctx context.Context, user domain.User) (string, error) {
	opaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	row := domain.UserToken{
		UserID:    user.ID,
		Issuer:    s.Issuer,
		Name:      domain.TokenName,
		TokenHash: cryptox.StampedFingerprint(user.SecurityStamp, opaque),
		ExpiresAt: now.Add(s.TTL),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.UserTokens().RemoveUserToken(ctx, user.ID, s.Issuer, domain.TokenName); err != nil {
			return err
		}
		return tx.UserTokens().SetUserToken(ctx, row)
	})
	if err != nil {
		return "", err
	}

	return opaque, nil
}

// Verify reports whether candidate matches the stored token for user.
// A missing row, an expired row, or a fingerprint mismatch all return
// (false, nil); errors are reserved for store failures.
func (s *RefreshTokenService) Verify(ctx context.Context, user domain.User, candidate string) (bool, error) {
	if candidate == "" {
		return false, nil
	}

	row, err := s.Store.UserTokens().GetUserToken(ctx, user.ID, s.Issuer, domain.TokenName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if time.Now().UTC().After(row.ExpiresAt) {
		return false, nil
	}

	want := cryptox.StampedFingerprint(user.SecurityStamp, candidate)
	return subtle.ConstantTimeCompare([]byte(want), []byte(row.TokenHash)) == 1, nil
}

// Revoke drops the stored refresh token for user, if any.
func (s *RefreshTokenService) Revoke(ctx context.Context, user domain.User) error {
	return s.Store.UserTokens().RemoveUserToken(ctx, user.ID, s.Issuer, domain.TokenName)
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gatehouselabs/gatehouse/internal/identity/domain"
	"github.com/gatehouselabs/gatehouse/internal/identity/store"
	"github.com/gatehouselabs/gatehouse/pkg/cryptox"
	"github.com/gatehouselabs/gatehouse/pkg/jwtx"
	"github.com/gatehouselabs/gatehouse/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrUnauthenticated is the single rejection surfaced by Login and
	// Refresh. Every failure mode maps onto it so the response reveals
	// nothing about which check tripped.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// AuthService orchestrates the token protocol: credential login, the
// refresh exchange, and whole-account session revocation.
type AuthService struct {
	Store       store.Store
	Signer      jwtx.Signer
	Credentials *CredentialVerifier
	Claims      *ClaimsBuilder
	Refresh     *RefreshTokenService

	Issuer    string
	Audience  string
	AccessTTL time.Duration
}

// Login verifies the credentials and issues a fresh token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
	user, err := s.Credentials.Verify(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	return s.issuePair(ctx, user)
}

// RefreshTokens exchanges a prior token pair for a new one.
//
// The access token is decoded without signature or expiry checks; only its
// claims are needed to locate the account. The stored refresh token is the
// credential being verified. Any verification failure revokes every session
// for the account before rejecting, on the assumption the pair leaked.
func (s *AuthService) RefreshTokens(ctx context.Context, prior domain.AuthResponse) (*domain.AuthResponse, error) {
	l := slogx.FromContext(ctx)

	// 1. Structural decode. Expired access tokens are expected here.
	claims, err := jwtx.DecodeUnverified(prior.AccessToken)
	if err != nil || claims.Email == "" {
		return nil, ErrUnauthenticated
	}

	// 2. Locate the account named by the token.
	user, err := s.Store.Users().GetUserByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	// 3. The claimed identity and the token's account must agree.
	if prior.UserID == "" || user.ID != prior.UserID {
		return nil, ErrUnauthenticated
	}

	// 4. Check the refresh token against the stored fingerprint.
	ok, err := s.Refresh.Verify(ctx, user, prior.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !ok {
		if err := s.RevokeAll(ctx, user); err != nil {
			return nil, err
		}
		l.Warn("refresh token rejected, account sessions revoked",
			slog.String("user_id", user.ID),
		)
		return nil, ErrUnauthenticated
	}

	return s.issuePair(ctx, user)
}

// Issue creates a token pair for an already-authenticated user. Used by
// registration, which has just created the account.
func (s *AuthService) Issue(ctx context.Context, user domain.User) (*domain.AuthResponse, error) {
	return s.issuePair(ctx, user)
}

// RevokeAll rotates the user's security stamp. Every refresh token stored
// under the old stamp stops verifying; outstanding access tokens keep
// working until their natural expiry.
func (s *AuthService) RevokeAll(ctx context.Context, user domain.User) error {
	stamp, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return err
	}
	return s.Store.Users().UpdateSecurityStamp(ctx, user.ID, stamp)
}

func (s *AuthService) issuePair(ctx context.Context, user domain.User) (*domain.AuthResponse, error) {
	claims, err := s.Claims.BuildClaims(ctx, user)
	if err != nil {
		return nil, err
	}

	access, err := s.signAccess(claims)
	if err != nil {
		return nil, err
	}

	refresh, err := s.Refresh.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResponse{
		UserID:       user.ID,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (s *AuthService) signAccess(claims []domain.Claim) (string, error) {
	token := jwtx.NewTokenClaims(s.AccessTTL, s.Issuer, []string{s.Audience}, time.Now())
	for _, c := range claims {
		switch c.Type {
		case domain.ClaimTypeSubject:
			token.Subject = c.Value
		case domain.ClaimTypeJTI:
			token.ID = c.Value
		case domain.ClaimTypeEmail:
			token.Email = c.Value
		case domain.ClaimTypeUID:
			token.UID = c.Value
		case domain.ClaimTypeRole:
			token.Roles = append(token.Roles, c.Value)
		default:
			if token.UserClaims == nil {
				token.UserClaims = make(map[string]string)
			}
			token.UserClaims[c.Type] = c.Value
		}
	}
	return s.Signer.Sign(token)
}

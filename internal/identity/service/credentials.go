package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gatehouselabs/gatehouse/internal/identity/domain"
	"github.com/gatehouselabs/gatehouse/internal/identity/store"
	"github.com/gatehouselabs/gatehouse/pkg/cryptox"
	"github.com/gatehouselabs/gatehouse/pkg/slogx"
)

// CredentialVerifier checks an email/password pair against the user store.
//
// Lookup misses and password mismatches collapse into the same error so the
// caller cannot tell which half failed.
type CredentialVerifier struct {
	Store store.Store
}

// Verify returns the user when the credentials match.
//
// Email matching is case-insensitive; the store keeps emails lowercased.
func (v *CredentialVerifier) Verify(ctx context.Context, email, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	user, err := v.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("login failed, unknown email", slog.String("email", email))
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Info("login failed, password mismatch", slog.String("email", email))
			return domain.User{}, ErrInvalidCredentials
		}
		// Unparseable hash is a data problem, not a caller problem.
		l.Error("password hash verification errored",
			slog.Any("error", err),
			slog.String("user_id", user.ID),
		)
		return domain.User{}, err
	}

	l.Info("login succeeded", slog.String("email", email))
	return user, nil
}

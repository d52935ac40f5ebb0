package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gatehouselabs/gatehouse/internal/identity/domain"
	"github.com/gatehouselabs/gatehouse/internal/identity/store"
	"github.com/gatehouselabs/gatehouse/pkg/cryptox"
	"github.com/gatehouselabs/gatehouse/pkg/idx"
	"github.com/gatehouselabs/gatehouse/pkg/slogx"
)

const minPasswordLength = 8

// ValidationErrors collects registration problems. Registration either
// succeeds or reports the full list; it never stops at the first failure.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, "; ")
}

// RegisterProfile is the input to Register.
type RegisterProfile struct {
	Email    string
	Password string
}

// UserService owns account lifecycle and profile reads.
type UserService struct {
	Store store.Store
}

// Register creates a new account with the default role. Validation problems
// come back as ValidationErrors; a duplicate email is reported the same way
// rather than as a store error.
func (s *UserService) Register(ctx context.Context, profile RegisterProfile) (domain.User, error) {
	l := slogx.FromContext(ctx)

	email := strings.ToLower(strings.TrimSpace(profile.Email))

	var problems ValidationErrors
	if email == "" {
		problems = append(problems, "email is required")
	} else if !strings.Contains(email, "@") || strings.ContainsAny(email, " \t") {
		problems = append(problems, "email is not valid")
	}
	if len(profile.Password) < minPasswordLength {
		problems = append(problems, "password must be at least 8 characters")
	}
	if len(problems) > 0 {
		return domain.User{}, problems
	}

	hash, err := cryptox.HashPassword(profile.Password)
	if err != nil {
		return domain.User{}, err
	}

	stamp, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:            idx.New().String(),
		Email:         email,
		PasswordHash:  hash,
		SecurityStamp: stamp,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return err
		}
		return tx.Roles().AddUserRole(ctx, user.ID, domain.RoleUser)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ValidationErrors{"email is already registered"}
		}
		return domain.User{}, err
	}

	l.Info("user registered", slog.String("user_id", user.ID))
	return user, nil
}

// GetUserByID returns the stored user.
func (s *UserService) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, id)
}

// GetUserByEmail returns the stored user for an email, matched
// case-insensitively.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.Store.Users().GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// Profile is the assembled view of an account for the userinfo endpoint.
type Profile struct {
	User   domain.User
	Roles  []string
	Claims []domain.Claim
}

// GetProfile loads the user together with roles and custom claims.
func (s *UserService) GetProfile(ctx context.Context, userID string) (Profile, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	roles, err := s.Store.Roles().GetUserRoles(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	claims, err := s.Store.UserClaims().GetUserClaims(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	return Profile{User: user, Roles: roles, Claims: claims}, nil
}

// AddRole grants role to the user. The role must already exist.
func (s *UserService) AddRole(ctx context.Context, userID, role string) error {
	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		return err
	}
	return s.Store.Roles().AddUserRole(ctx, userID, role)
}

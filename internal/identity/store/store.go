package store

import (
	"context"
	"errors"
	"time"

	"github.com/gatehouselabs/gatehouse/internal/identity/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories keep concerns tidy and let tests swap a
// single repo without faking the whole store.
type Store interface {
	Users() Users
	Roles() Roles
	UserClaims() UserClaims
	UserTokens() UserTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back if fn errors
	// and committing otherwise. Preferred over Tx for multi-step operations
	// that must be atomic (e.g. refresh token rotation).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks up a user by email. The match is
	// case-insensitive; emails are stored lowercased.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id and security stamp provided by the
	// caller). Returns ErrAlreadyExists if the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateSecurityStamp replaces the user's security stamp and bumps
	// updated_at. Every credential bound to the old stamp dies with it.
	UpdateSecurityStamp(ctx context.Context, userID, stamp string) error

	// DeleteUser cascades to user_roles, user_claims and user_tokens.
	DeleteUser(ctx context.Context, userID string) error
}

type Roles interface {
	// RoleExists reports whether a role name is known.
	RoleExists(ctx context.Context, name string) (bool, error)

	// ListRoles returns all role names.
	ListRoles(ctx context.Context) ([]string, error)

	// AddUserRole assigns a role to a user. Assigning an already-held role
	// is a no-op, not an error.
	AddUserRole(ctx context.Context, userID, role string) error

	// GetUserRoles returns the role names held by a user.
	GetUserRoles(ctx context.Context, userID string) ([]string, error)
}

type UserClaims interface {
	// AddUserClaim attaches an arbitrary claim to a user.
	AddUserClaim(ctx context.Context, userID string, c domain.Claim) error

	// GetUserClaims returns all claims attached to a user.
	GetUserClaims(ctx context.Context, userID string) ([]domain.Claim, error)
}

type UserTokens interface {
	// GetUserToken fetches the token stored under (userID, issuer, name).
	GetUserToken(ctx context.Context, userID, issuer, name string) (domain.UserToken, error)

	// SetUserToken stores a token record for its key, replacing any
	// existing row.
	SetUserToken(ctx context.Context, t domain.UserToken) error

	// RemoveUserToken deletes the token under the key. Removing a missing
	// token is a no-op.
	RemoveUserToken(ctx context.Context, userID, issuer, name string) error

	// DeleteExpiredUserTokens removes rows past their expiry (housekeeping).
	DeleteExpiredUserTokens(ctx context.Context, now time.Time) error
}

package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/gatehouselabs/gatehouse/internal/identity/domain"
	"github.com/gatehouselabs/gatehouse/internal/identity/store"
	"github.com/gatehouselabs/gatehouse/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestUser(t *testing.T, st store.Store) domain.User {
	t.Helper()

	user := domain.User{
		ID:            idx.New().String(),
		Email:         "alice@example.com",
		PasswordHash:  "argon2id:hash",
		SecurityStamp: "stamp-1",
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), user))
	return user
}

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := newTestUser(t, st)

	t.Run("round trip by id and email", func(t *testing.T) {
		byID, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, user.Email, byID.Email)
		require.Equal(t, user.SecurityStamp, byID.SecurityStamp)
		require.False(t, byID.CreatedAt.IsZero())

		byEmail, err := st.Users().GetUserByEmail(ctx, "ALICE@EXAMPLE.COM")
		require.NoError(t, err)
		require.Equal(t, user.ID, byEmail.ID)
	})

	t.Run("duplicate email rejected case-insensitively", func(t *testing.T) {
		dup := domain.User{
			ID:            idx.New().String(),
			Email:         "Alice@Example.com",
			PasswordHash:  "hash",
			SecurityStamp: "stamp",
		}
		err := st.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("security stamp update", func(t *testing.T) {
		require.NoError(t, st.Users().UpdateSecurityStamp(ctx, user.ID, "stamp-2"))

		got, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, "stamp-2", got.SecurityStamp)

		err = st.Users().UpdateSecurityStamp(ctx, "missing", "stamp-3")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := st.Users().GetUserByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestRolesRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := newTestUser(t, st)

	t.Run("seeded roles present", func(t *testing.T) {
		roles, err := st.Roles().ListRoles(ctx)
		require.NoError(t, err)
		require.ElementsMatch(t, []string{domain.RoleUser, domain.RoleAdmin}, roles)
	})

	t.Run("assignment is idempotent", func(t *testing.T) {
		require.NoError(t, st.Roles().AddUserRole(ctx, user.ID, domain.RoleUser))
		require.NoError(t, st.Roles().AddUserRole(ctx, user.ID, domain.RoleUser))

		roles, err := st.Roles().GetUserRoles(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, []string{domain.RoleUser}, roles)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		err := st.Roles().AddUserRole(ctx, user.ID, "superuser")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestUserClaimsRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := newTestUser(t, st)

	require.NoError(t, st.UserClaims().AddUserClaim(ctx, user.ID, domain.Claim{Type: "plan", Value: "gold"}))
	require.NoError(t, st.UserClaims().AddUserClaim(ctx, user.ID, domain.Claim{Type: "region", Value: "apac"}))

	claims, err := st.UserClaims().GetUserClaims(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, []domain.Claim{
		{Type: "plan", Value: "gold"},
		{Type: "region", Value: "apac"},
	}, claims, "claims keep insertion order")
}

func TestUserTokensRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := newTestUser(t, st)

	token := domain.UserToken{
		UserID:    user.ID,
		Issuer:    "gatehouse",
		Name:      domain.TokenName,
		TokenHash: "hash-1",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, st.UserTokens().SetUserToken(ctx, token))

	t.Run("round trip", func(t *testing.T) {
		got, err := st.UserTokens().GetUserToken(ctx, user.ID, "gatehouse", domain.TokenName)
		require.NoError(t, err)
		require.Equal(t, "hash-1", got.TokenHash)
	})

	t.Run("set replaces on conflict", func(t *testing.T) {
		token.TokenHash = "hash-2"
		require.NoError(t, st.UserTokens().SetUserToken(ctx, token))

		got, err := st.UserTokens().GetUserToken(ctx, user.ID, "gatehouse", domain.TokenName)
		require.NoError(t, err)
		require.Equal(t, "hash-2", got.TokenHash)
	})

	t.Run("expired sweep", func(t *testing.T) {
		stale := domain.UserToken{
			UserID:    user.ID,
			Issuer:    "old-issuer",
			Name:      domain.TokenName,
			TokenHash: "hash-old",
			ExpiresAt: time.Now().UTC().Add(-time.Hour),
		}
		require.NoError(t, st.UserTokens().SetUserToken(ctx, stale))

		require.NoError(t, st.UserTokens().DeleteExpiredUserTokens(ctx, time.Now().UTC()))

		_, err := st.UserTokens().GetUserToken(ctx, user.ID, "old-issuer", domain.TokenName)
		require.ErrorIs(t, err, store.ErrNotFound)

		// The live token survives the sweep.
		_, err = st.UserTokens().GetUserToken(ctx, user.ID, "gatehouse", domain.TokenName)
		require.NoError(t, err)
	})

	t.Run("deleting the user cascades", func(t *testing.T) {
		require.NoError(t, st.Users().DeleteUser(ctx, user.ID))

		_, err := st.UserTokens().GetUserToken(ctx, user.ID, "gatehouse", domain.TokenName)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	user := domain.User{
		ID:            idx.New().String(),
		Email:         "bob@example.com",
		PasswordHash:  "hash",
		SecurityStamp: "stamp",
	}

	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return err
		}
		// Unknown role forces the whole transaction to roll back.
		return tx.Roles().AddUserRole(ctx, user.ID, "superuser")
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Users().GetUserByID(ctx, user.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

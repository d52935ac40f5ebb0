package identity_test

import (
	"context"
	"testing"

	"github.com/gatehouselabs/gatehouse/pkg/idsdk"
	"github.com/stretchr/testify/require"
)

func TestRefreshFlow(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := idsdk.NewClient(baseURL)
	ctx := context.Background()

	pair := registerAccount(t, client, "alice@example.com")

	fresh, err := client.Refresh(ctx, *pair)
	require.NoError(t, err)
	assertAuthResponse(t, fresh)
	require.Equal(t, pair.UserID, fresh.UserID)
	require.NotEqual(t, pair.RefreshToken, fresh.RefreshToken, "refresh token must rotate")

	t.Run("replaced pair no longer refreshes", func(t *testing.T) {
		_, err := client.Refresh(ctx, *pair)
		assertUnauthorized(t, err, "Refresh with replaced pair")
	})

	t.Run("new access token works", func(t *testing.T) {
		info, err := client.UserInfo(ctx, fresh.AccessToken)
		require.NoError(t, err)
		require.Equal(t, fresh.UserID, info.UserID)
	})
}

func TestRefreshTamperRevokesSessions(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := idsdk.NewClient(baseURL)
	ctx := context.Background()

	pair := registerAccount(t, client, "alice@example.com")

	// A tampered refresh token fails and burns the real one with it.
	tampered := *pair
	tampered.RefreshToken = pair.RefreshToken + "x"
	_, err := client.Refresh(ctx, tampered)
	assertUnauthorized(t, err, "Refresh with tampered token")

	_, err = client.Refresh(ctx, *pair)
	assertUnauthorized(t, err, "Refresh with genuine pair after tamper attempt")

	// Logging in again restores the account.
	recovered, err := client.Login(ctx, "alice@example.com", testPassword)
	require.NoError(t, err)

	again, err := client.Refresh(ctx, *recovered)
	require.NoError(t, err)
	assertAuthResponse(t, again)
}

func TestRefreshRejectsForeignPair(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := idsdk.NewClient(baseURL)
	ctx := context.Background()

	alice := registerAccount(t, client, "alice@example.com")
	mallory := registerAccount(t, client, "mallory@example.com")

	// Mallory presents Alice's tokens under their own user id.
	stolen := idsdk.AuthResponse{
		UserID:       mallory.UserID,
		AccessToken:  alice.AccessToken,
		RefreshToken: alice.RefreshToken,
	}
	_, err := client.Refresh(ctx, stolen)
	assertUnauthorized(t, err, "Refresh with mismatched identity")
}

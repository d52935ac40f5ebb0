package identity_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gatehouselabs/gatehouse/pkg/idsdk"
	"github.com/stretchr/testify/require"
)

func TestUserInfo(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := idsdk.NewClient(baseURL)
	ctx := context.Background()

	pair := registerAccount(t, client, "alice@example.com")

	info, err := client.UserInfo(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, pair.UserID, info.UserID)
	require.Equal(t, "alice@example.com", info.Email)
	require.Contains(t, info.Roles, "user")

	t.Run("rejects garbage token", func(t *testing.T) {
		_, err := client.UserInfo(ctx, "not-a-token")
		assertUnauthorized(t, err, "UserInfo with garbage token")
	})

	t.Run("rejects missing token", func(t *testing.T) {
		_, err := client.UserInfo(ctx, "")
		assertUnauthorized(t, err, "UserInfo without token")
	})
}

func TestRoleAssignment(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := idsdk.NewClient(baseURL)
	ctx := context.Background()

	alice := registerAccount(t, client, "alice@example.com")
	bob := registerAccount(t, client, "bob@example.com")

	t.Run("non-admin cannot grant roles", func(t *testing.T) {
		err := client.AddRole(ctx, alice.AccessToken, bob.UserID, "admin")

		var apiErr *idsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	})
}

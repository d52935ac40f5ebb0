package service

import (
	"context"
	"testing"

	"github.com/gatehouselabs/gatehouse/internal/identity/domain"
	"github.com/stretchr/testify/require"
)

func claimValues(claims []domain.Claim, claimType string) []string {
	var out []string
	for _, c := range claims {
		if c.Type == claimType {
			out = append(out, c.Value)
		}
	}
	return out
}

func TestBuildClaims(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	user := h.register(t, "alice@example.com", "correct-horse-battery")

	require.NoError(t, h.Store.Roles().AddUserRole(ctx, user.ID, domain.RoleAdmin))
	require.NoError(t, h.Store.UserClaims().AddUserClaim(ctx, user.ID,
		domain.Claim{Type: "plan", Value: "gold"}))

	builder := &ClaimsBuilder{Store: h.Store}
	claims, err := builder.BuildClaims(ctx, user)
	require.NoError(t, err)

	require.Equal(t, []string{"alice@example.com"}, claimValues(claims, domain.ClaimTypeSubject))
	require.Equal(t, []string{"alice@example.com"}, claimValues(claims, domain.ClaimTypeEmail))
	require.Equal(t, []string{user.ID}, claimValues(claims, domain.ClaimTypeUID))
	require.ElementsMatch(t, []string{domain.RoleUser, domain.RoleAdmin},
		claimValues(claims, domain.ClaimTypeRole))
	require.Equal(t, []string{"gold"}, claimValues(claims, "plan"))
}

func TestBuildClaimsTokenIDIsFresh(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	user := h.register(t, "alice@example.com", "correct-horse-battery")

	builder := &ClaimsBuilder{Store: h.Store}
	seen := make(map[string]struct{})
	for range 50 {
		claims, err := builder.BuildClaims(ctx, user)
		require.NoError(t, err)

		ids := claimValues(claims, domain.ClaimTypeJTI)
		require.Len(t, ids, 1)

		_, dup := seen[ids[0]]
		require.False(t, dup, "token id must differ across builds")
		seen[ids[0]] = struct{}{}
	}
}

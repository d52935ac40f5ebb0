package service

import (
	"context"

	"github.com/gatehouselabs/gatehouse/internal/identity/domain"
	"github.com/gatehouselabs/gatehouse/internal/identity/store"
	"github.com/google/uuid"
)

// ClaimsBuilder assembles the full claim list for a user's access token:
// subject, a fresh token id, the identity claims, role claims, and any
// custom claims attached in the store.
type ClaimsBuilder struct {
	Store store.Store
}

// BuildClaims returns the ordered claim list for user. Two calls for the
// same user differ at least in the token id.
func (b *ClaimsBuilder) BuildClaims(ctx context.Context, user domain.User) ([]domain.Claim, error) {
	roles, err := b.Store.Roles().GetUserRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	custom, err := b.Store.UserClaims().GetUserClaims(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	claims := make([]domain.Claim, 0, 4+len(roles)+len(custom))
	claims = append(claims,
		domain.Claim{Type: domain.ClaimTypeSubject, Value: user.Email},
		domain.Claim{Type: domain.ClaimTypeJTI, Value: uuid.NewString()},
		domain.Claim{Type: domain.ClaimTypeEmail, Value: user.Email},
		domain.Claim{Type: domain.ClaimTypeUID, Value: user.ID},
	)
	for _, role := range roles {
		claims = append(claims, domain.Claim{Type: domain.ClaimTypeRole, Value: role})
	}
	claims = append(claims, custom...)

	return claims, nil
}

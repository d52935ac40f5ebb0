package sqlite

import (
	"context"

	"github.com/gatehouselabs/gatehouse/internal/identity/domain"
)

type userClaimsRepo struct {
	q querier
}

func (r *userClaimsRepo) AddUserClaim(ctx context.Context, userID string, c domain.Claim) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO user_claims (user_id, claim_type, claim_value) VALUES (?, ?, ?)`,
		userID, c.Type, c.Value)
	return err
}

func (r *userClaimsRepo) GetUserClaims(ctx context.Context, userID string) ([]domain.Claim, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT claim_type, claim_value FROM user_claims WHERE user_id = ? ORDER BY rowid`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []domain.Claim
	for rows.Next() {
		var c domain.Claim
		if err := rows.Scan(&c.Type, &c.Value); err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

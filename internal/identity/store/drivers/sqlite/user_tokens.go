package sqlite

import (
	"context"
	"time"

	"github.com/gatehouselabs/gatehouse/internal/identity/domain"
)

type userTokensRepo struct {
	q querier
}

func (r *userTokensRepo) GetUserToken(
	ctx context.Context,
	userID, issuer, name string,
) (domain.UserToken, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT user_id, issuer, name, token_hash, expires_at, created_at, updated_at
		 FROM user_tokens WHERE user_id = ? AND issuer = ? AND name = ?`,
		userID, issuer, name)

	var t domain.UserToken
	err := row.Scan(&t.UserID, &t.Issuer, &t.Name, &t.TokenHash,
		&t.ExpiresAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.UserToken{}, mapNotFound(err)
	}
	return t, nil
}

func (r *userTokensRepo) SetUserToken(ctx context.Context, t domain.UserToken) error {
	// Upsert on the (user_id, issuer, name) key so callers racing on the
	// same slot resolve to last-write-wins.
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO user_tokens (user_id, issuer, name, token_hash, expires_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, issuer, name)
		 DO UPDATE SET token_hash = excluded.token_hash,
		               expires_at = excluded.expires_at,
		               updated_at = CURRENT_TIMESTAMP`,
		t.UserID, t.Issuer, t.Name, t.TokenHash, t.ExpiresAt.UTC())
	return err
}

func (r *userTokensRepo) RemoveUserToken(ctx context.Context, userID, issuer, name string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM user_tokens WHERE user_id = ? AND issuer = ? AND name = ?`,
		userID, issuer, name)
	return err
}

func (r *userTokensRepo) DeleteExpiredUserTokens(ctx context.Context, now time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM user_tokens WHERE expires_at < ?`, now.UTC())
	return err
}

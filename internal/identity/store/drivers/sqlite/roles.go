package sqlite

import (
	"context"

	"github.com/gatehouselabs/gatehouse/internal/identity/store"
)

type rolesRepo struct {
	q querier
}

func (r *rolesRepo) RoleExists(ctx context.Context, name string) (bool, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM roles WHERE name = ?`, name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *rolesRepo) ListRoles(ctx context.Context) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT name FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *rolesRepo) AddUserRole(ctx context.Context, userID, role string) error {
	exists, err := r.RoleExists(ctx, role)
	if err != nil {
		return err
	}
	if !exists {
		return store.ErrNotFound
	}

	// INSERT OR IGNORE keeps re-assignment idempotent.
	_, err = r.q.ExecContext(ctx,
		`INSERT OR IGNORE INTO user_roles (user_id, role_name) VALUES (?, ?)`,
		userID, role)
	return err
}

func (r *rolesRepo) GetUserRoles(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT role_name FROM user_roles WHERE user_id = ? ORDER BY role_name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

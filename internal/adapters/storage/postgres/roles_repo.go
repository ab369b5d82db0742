package postgres

import (
	"context"
	"database/sql"
	"errors"

	"refugio-adopciones/internal/ports/auth"
)

// RolesRepo lee user_roles. Sin fila => member.
type RolesRepo struct {
	db *sql.DB
}

func NewRolesRepo(db *sql.DB) *RolesRepo {
	return &RolesRepo{db: db}
}

func (r *RolesRepo) RoleOf(ctx context.Context, userID string) (auth.Role, error) {
	var role string
	err := r.db.QueryRowContext(ctx, `SELECT role FROM user_roles WHERE user_id = $1`, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.RoleMember, nil
		}
		return "", err
	}
	return auth.Role(role), nil
}

// SetRole hace upsert; lo usa `seed` para dar de alta los ADMIN_USER_IDS.
func (r *RolesRepo) SetRole(ctx context.Context, userID string, role auth.Role) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role
	`, userID, string(role))
	return err
}

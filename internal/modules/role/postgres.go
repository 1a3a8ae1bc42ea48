package role

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func viewsToStrings(views []View) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = string(v)
	}
	return out
}

func stringsToViews(raw []string) []View {
	out := make([]View, len(raw))
	for i, s := range raw {
		out[i] = View(s)
	}
	return out
}

func (r *postgresRepo) Create(ctx context.Context, role *Role) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO roles (id, name, permissions)
		VALUES ($1, $2, $3)`,
		role.ID, role.Name, pq.Array(viewsToStrings(role.Permissions)))
	return err
}

func scanRole(scan func(...interface{}) error) (*Role, error) {
	role := &Role{}
	var perms []string
	err := scan(&role.ID, &role.Name, pq.Array(&perms), &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return nil, err
	}
	role.Permissions = stringsToViews(perms)
	return role, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Role, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, permissions, created_at, updated_at
		FROM roles WHERE id=$1`, uid)
	return scanRole(row.Scan)
}

func (r *postgresRepo) List(ctx context.Context) ([]*Role, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, permissions, created_at, updated_at
		FROM roles ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*Role
	for rows.Next() {
		role, err := scanRole(rows.Scan)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, role *Role) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE roles SET name=$1, permissions=$2, updated_at=NOW() WHERE id=$3`,
		role.Name, pq.Array(viewsToStrings(role.Permissions)), role.ID)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var assigned bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE role_id=$1)`, uid).Scan(&assigned)
	if err != nil {
		return fmt.Errorf("check role assignment: %w", err)
	}
	if assigned {
		return ErrRoleAssigned
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM roles WHERE id=$1`, uid)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

func (r *postgresRepo) PermissionsForRole(ctx context.Context, roleID string) ([]string, error) {
	uid, err := uuid.Parse(roleID)
	if err != nil {
		return nil, err
	}
	var perms []string
	err = r.db.QueryRowContext(ctx,
		`SELECT permissions FROM roles WHERE id=$1`, uid).Scan(pq.Array(&perms))
	if err != nil {
		return nil, err
	}
	return perms, nil
}

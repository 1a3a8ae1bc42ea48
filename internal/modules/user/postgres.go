package user

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/hotelops/minibar-backend/internal/modules/auth"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL user repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, username, passkey_hash, role_id)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Username, user.PasskeyHash, user.RoleID)
	return err
}

func scanUser(scan func(...interface{}) error) (*User, error) {
	user := &User{}
	err := scan(&user.ID, &user.Username, &user.PasskeyHash, &user.RoleID,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *postgresRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, passkey_hash, role_id, created_at, updated_at
		FROM users WHERE id = $1`, parsedID)
	return scanUser(row.Scan)
}

func (r *postgresRepository) ListUsers(ctx context.Context) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, passkey_hash, role_id, created_at, updated_at
		FROM users ORDER BY username ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *postgresRepository) UpdateUser(ctx context.Context, user *User) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET username=$1, passkey_hash=$2, role_id=$3, updated_at=NOW()
		WHERE id=$4`,
		user.Username, user.PasskeyHash, user.RoleID, user.ID)
	return err
}

func (r *postgresRepository) DeleteUser(ctx context.Context, id string) error {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, parsedID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *postgresRepository) CredentialByUsername(ctx context.Context, username string) (*auth.Credential, error) {
	cred := &auth.Credential{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, passkey_hash, role_id
		FROM users WHERE username = $1`, username).Scan(
		&cred.UserID, &cred.Username, &cred.PasskeyHash, &cred.RoleID)
	if err != nil {
		return nil, err
	}
	return cred, nil
}

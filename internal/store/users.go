package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"logitrack/internal/model"
)

const userColumns = "id, username, password_hash, role, created_at, deleted_at"

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.DeletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a staff account and returns the stored record.
func CreateUser(ctx context.Context, db *sql.DB, username, passwordHash, role string) (*model.User, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`,
		username, passwordHash, role,
	)
	if err != nil {
		return nil, fmt.Errorf("creating account %q: %w", username, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading new account id: %w", err)
	}
	return GetUser(ctx, db, id)
}

// GetUser returns the account with the given id, or nil when none exists.
func GetUser(ctx context.Context, db *sql.DB, id int64) (*model.User, error) {
	u, err := scanUser(db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("loading account %d: %w", id, err)
	}
	return u, nil
}

// GetUserByUsername looks an account up by name. Soft-deleted accounts are
// returned too; login needs to tell a locked-out account from a typo.
func GetUserByUsername(ctx context.Context, db *sql.DB, username string) (*model.User, error) {
	u, err := scanUser(db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
	if err != nil {
		return nil, fmt.Errorf("loading account %q: %w", username, err)
	}
	return u, nil
}

// ListUsers returns the active accounts ordered by id.
func ListUsers(ctx context.Context, db *sql.DB) ([]model.User, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE deleted_at IS NULL ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.DeletedAt); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUserRole changes an active account's role.
func UpdateUserRole(ctx context.Context, db *sql.DB, id int64, role string) error {
	if _, err := db.ExecContext(ctx,
		`UPDATE users SET role = ? WHERE id = ? AND deleted_at IS NULL`,
		role, id,
	); err != nil {
		return fmt.Errorf("updating role for account %d: %w", id, err)
	}
	return nil
}

// UpdateUserPassword replaces an active account's password hash.
func UpdateUserPassword(ctx context.Context, db *sql.DB, id int64, passwordHash string) error {
	if _, err := db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ? AND deleted_at IS NULL`,
		passwordHash, id,
	); err != nil {
		return fmt.Errorf("updating password for account %d: %w", id, err)
	}
	return nil
}

// DeleteUser soft-deletes an account. The row stays so past logins remain
// attributable and the username cannot be silently reused for login.
func DeleteUser(ctx context.Context, db *sql.DB, id int64) error {
	if _, err := db.ExecContext(ctx,
		`UPDATE users SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	); err != nil {
		return fmt.Errorf("deleting account %d: %w", id, err)
	}
	return nil
}

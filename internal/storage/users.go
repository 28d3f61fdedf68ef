package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// UpsertUser creates the user for an identity key or updates its role.
func (db *DB) UpsertUser(ctx context.Context, identityKey string, role Role) (User, error) {
	query := `INSERT INTO users (id, identity_key, role)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (identity_key) DO UPDATE SET role = EXCLUDED.role
	          RETURNING id, identity_key, role, created_at`

	var u User
	err := db.connection.QueryRowContext(ctx, query, uuid.New().String(), identityKey, string(role)).
		Scan(&u.ID, &u.IdentityKey, &u.Role, &u.CreatedAt)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

// UserByIdentityKey returns ErrNotFound when no user exists for the key.
func (db *DB) UserByIdentityKey(ctx context.Context, identityKey string) (User, error) {
	query := `SELECT id, identity_key, role, created_at FROM users WHERE identity_key = $1`

	var u User
	err := db.connection.QueryRowContext(ctx, query, identityKey).
		Scan(&u.ID, &u.IdentityKey, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

// UserByID returns ErrNotFound when the id is unknown.
func (db *DB) UserByID(ctx context.Context, id string) (User, error) {
	query := `SELECT id, identity_key, role, created_at FROM users WHERE id = $1`

	var u User
	err := db.connection.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.IdentityKey, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

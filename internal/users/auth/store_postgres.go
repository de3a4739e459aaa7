// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/katha/internal/platform/apperr"
	"github.com/taibuivan/katha/internal/platform/database/schema"
	"github.com/taibuivan/katha/internal/platform/dberr"
)

// # PostgreSQL User Repository

// PostgresUserRepository implements [UserRepository] on users.account.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a PostgreSQL backed [UserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var account = schema.UserAccount

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsArtist,
		&user.Role,
		&user.Bio,
		&user.AvatarPath,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

/*
Create inserts a new account row.

Description: Timestamps are stamped here. Unique violations on username or
email are translated to field-level validation errors.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: VALIDATION_ERROR on collisions, wrapped storage errors otherwise
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		account.Table, schema.Select("", account.Columns()))

	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.IsArtist,
		user.Role,
		user.Bio,
		user.AvatarPath,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return dberr.Wrap(err, "User", "create user")
}

func (repository *PostgresUserRepository) findBy(context context.Context, column, value string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.Select("", account.Columns()), account.Table, column)

	user, err := scanUser(repository.pool.QueryRow(context, query, value))
	if err != nil {
		return nil, dberr.Wrap(err, "User", "find user")
	}
	return user, nil
}

// FindByID returns the account with the given ID.
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findBy(context, account.ID, id)
}

// FindByEmail matches email case-insensitively.
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE LOWER(%s) = LOWER($1)`,
		schema.Select("", account.Columns()), account.Table, account.Email)

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "User", "find user by email")
	}
	return user, nil
}

// FindByUsername returns the account named username (exact match).
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findBy(context, account.Username, username)
}

// SetArtist flips the creator flag of an account.
func (repository *PostgresUserRepository) SetArtist(context context.Context, id string, isArtist bool) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		account.Table, account.IsArtist, account.UpdatedAt, account.ID)

	tag, err := repository.pool.Exec(context, query, id, isArtist)
	if err != nil {
		return dberr.Wrap(err, "User", "set artist flag")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

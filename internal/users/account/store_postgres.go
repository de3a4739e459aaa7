// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/katha/internal/platform/apperr"
	"github.com/taibuivan/katha/internal/platform/database/schema"
	"github.com/taibuivan/katha/internal/platform/dberr"
	"github.com/taibuivan/katha/internal/users/auth"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] on users.account and users.follow.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed [Repository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var (
	users   = schema.UserAccount
	follows = schema.UserFollow
)

func scanUser(row pgx.Row) (*auth.User, error) {
	user := &auth.User{}
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

// FindByID returns the account with the given ID.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.Select("", users.Columns()), users.Table, users.ID)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "User", "find user")
	}
	return user, nil
}

// FollowCounts counts both directions of the follow graph for id.
func (repository *PostgresRepository) FollowCounts(context context.Context, id string) (int, int, error) {
	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %[1]s WHERE %[2]s = $1),
			(SELECT COUNT(*) FROM %[1]s WHERE %[3]s = $1)`,
		follows.Table, follows.FollowedID, follows.FollowerID)

	var followers, following int
	if err := repository.pool.QueryRow(context, query, id).Scan(&followers, &following); err != nil {
		return 0, 0, fmt.Errorf("postgres: failed to count follows: %w", err)
	}
	return followers, following, nil
}

// IsFollowing reports whether followerID follows followedID.
func (repository *PostgresRepository) IsFollowing(context context.Context, followerID, followedID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		follows.Table, follows.FollowerID, follows.FollowedID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, followerID, followedID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to check follow: %w", err)
	}
	return exists, nil
}

/*
UpdateProfile writes username, bio and avatar path.

Returns:
  - error: VALIDATION_ERROR on a username collision, NOT_FOUND for a missing row
*/
func (repository *PostgresRepository) UpdateProfile(context context.Context, user *auth.User) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		users.Table, users.Username, users.Bio, users.AvatarPath, users.UpdatedAt,
		users.ID, users.UpdatedAt)

	err := repository.pool.QueryRow(context, query, user.ID, user.Username, user.Bio, user.AvatarPath).
		Scan(&user.UpdatedAt)
	return dberr.Wrap(err, "User", "update profile")
}

// Follow inserts the pair and reports whether a new row was created.
func (repository *PostgresRepository) Follow(context context.Context, followerID, followedID string) (bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, NOW())
		ON CONFLICT (%s, %s) DO NOTHING`,
		follows.Table, follows.FollowerID, follows.FollowedID, follows.CreatedAt,
		follows.FollowerID, follows.FollowedID)

	tag, err := repository.pool.Exec(context, query, followerID, followedID)
	if err != nil {
		return false, dberr.Wrap(err, "Follow", "follow user")
	}
	return tag.RowsAffected() > 0, nil
}

// Unfollow deletes the pair if present.
func (repository *PostgresRepository) Unfollow(context context.Context, followerID, followedID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		follows.Table, follows.FollowerID, follows.FollowedID)

	if _, err := repository.pool.Exec(context, query, followerID, followedID); err != nil {
		return fmt.Errorf("postgres: failed to unfollow user: %w", err)
	}
	return nil
}

// ListFollowers pages the accounts following userID.
func (repository *PostgresRepository) ListFollowers(context context.Context, userID string, limit, offset int) ([]FollowEntry, int, error) {
	return repository.listFollows(context, follows.FollowedID, follows.FollowerID, userID, limit, offset)
}

// ListFollowing pages the accounts userID follows.
func (repository *PostgresRepository) ListFollowing(context context.Context, userID string, limit, offset int) ([]FollowEntry, int, error) {
	return repository.listFollows(context, follows.FollowerID, follows.FollowedID, userID, limit, offset)
}

// listFollows filters users.follow on matchColumn and joins the account named by otherColumn.
func (repository *PostgresRepository) listFollows(context context.Context, matchColumn, otherColumn, userID string, limit, offset int) ([]FollowEntry, int, error) {
	query := fmt.Sprintf(`
		SELECT u.%s, u.%s, u.%s, u.%s, f.%s, COUNT(*) OVER()
		FROM %s f
		JOIN %s u ON u.%s = f.%s
		WHERE f.%s = $1
		ORDER BY f.%s DESC, u.%s
		LIMIT $2 OFFSET $3`,
		users.ID, users.Username, users.AvatarPath, users.IsArtist, follows.CreatedAt,
		follows.Table,
		users.Table, users.ID, otherColumn,
		matchColumn,
		follows.CreatedAt, users.Username)

	rows, err := repository.pool.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list follows: %w", err)
	}
	defer rows.Close()

	entries := []FollowEntry{}
	total := 0
	for rows.Next() {
		var entry FollowEntry
		if err := rows.Scan(&entry.UserID, &entry.Username, &entry.AvatarPath, &entry.IsArtist, &entry.FollowedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan follow: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to iterate follows: %w", err)
	}

	return entries, total, nil
}

// SetArtist writes the creator flag and returns the updated row.
func (repository *PostgresRepository) SetArtist(context context.Context, id string, isArtist bool) (*auth.User, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 RETURNING %s`,
		users.Table, users.IsArtist, users.UpdatedAt, users.ID, schema.Select("", users.Columns()))

	user, err := scanUser(repository.pool.QueryRow(context, query, id, isArtist))
	if err != nil {
		return nil, dberr.Wrap(err, "User", "set artist flag")
	}
	return user, nil
}

// List pages accounts, newest first.
func (repository *PostgresRepository) List(context context.Context, filter UserFilter, limit, offset int) ([]*auth.User, int, error) {
	where := "TRUE"
	switch filter {
	case FilterArtists:
		where = users.IsArtist
	case FilterReaders:
		where = "NOT " + users.IsArtist
	case FilterAll:
	default:
		return nil, 0, apperr.ValidationError("Unknown user filter")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, users.Table, where)
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to count users: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s DESC, %s LIMIT $1 OFFSET $2`,
		schema.Select("", users.Columns()), users.Table, where, users.CreatedAt, users.ID)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list users: %w", err)
	}
	defer rows.Close()

	list := []*auth.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan user: %w", err)
		}
		list = append(list, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to iterate users: %w", err)
	}

	return list, total, nil
}

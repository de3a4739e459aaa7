// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/katha/internal/core/cascade"
	"github.com/taibuivan/katha/internal/core/rating"
	"github.com/taibuivan/katha/internal/platform/database/schema"
	"github.com/taibuivan/katha/internal/platform/dberr"
	"github.com/taibuivan/katha/internal/platform/postgres"
)

// # PostgreSQL Repository

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed comic [Repository].
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

var (
	comics      = schema.CoreComic
	accounts    = schema.UserAccount
	seriesTable = schema.CoreSeries
	follows     = schema.SocialComicFollow
)

// selectComic projects every comic column plus the author's username.
var selectComic = fmt.Sprintf(`
	SELECT %s, u.%s
	FROM %s c
	JOIN %s u ON u.%s = c.%s`,
	schema.Select("c", comics.Columns()), accounts.Username,
	comics.Table,
	accounts.Table, accounts.ID, comics.AuthorID)

func scanComic(row pgx.Row) (*Comic, error) {
	comic := &Comic{}
	var tags *string
	err := row.Scan(
		&comic.ID,
		&comic.AuthorID,
		&comic.SeriesID,
		&comic.Title,
		&comic.Description,
		&comic.CoverPath,
		&comic.Genre,
		&comic.Status,
		&comic.Schedule,
		&comic.ContentType,
		&tags,
		&comic.IsPublished,
		&comic.IsEditorPick,
		&comic.TotalViews,
		&comic.TotalRating,
		&comic.RatingCount,
		&comic.CreatedAt,
		&comic.UpdatedAt,
		&comic.AuthorName,
	)
	if err != nil {
		return nil, err
	}

	comic.Tags = decodeTags(tags)
	comic.refreshAverage()
	return comic, nil
}

// decodeTags reads the JSON list stored in the tags column. NULL and
// malformed values read as no tags.
func decodeTags(raw *string) []string {
	tags := []string{}
	if raw == nil || *raw == "" {
		return tags
	}
	if err := json.Unmarshal([]byte(*raw), &tags); err != nil {
		return []string{}
	}
	return tags
}

func encodeTags(tags []string) (*string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("comic: failed to encode tags: %w", err)
	}
	value := string(encoded)
	return &value, nil
}

// # Lifecycle

func (repository *repository) Create(context context.Context, comic *Comic) error {
	tags, err := encodeTags(comic.Tags)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		comics.Table, schema.Select("", comics.Columns()))

	now := time.Now().UTC()
	comic.CreatedAt, comic.UpdatedAt = now, now

	_, err = repository.pool.Exec(context, query,
		comic.ID,
		comic.AuthorID,
		comic.SeriesID,
		comic.Title,
		comic.Description,
		comic.CoverPath,
		comic.Genre,
		comic.Status,
		comic.Schedule,
		comic.ContentType,
		tags,
		comic.IsPublished,
		comic.IsEditorPick,
		comic.TotalViews,
		comic.TotalRating,
		comic.RatingCount,
		comic.CreatedAt,
		comic.UpdatedAt,
	)
	return dberr.Wrap(err, "Comic", "create comic")
}

func (repository *repository) FindByID(context context.Context, id string) (*Comic, error) {
	query := selectComic + fmt.Sprintf(` WHERE c.%s = $1`, comics.ID)

	comic, err := scanComic(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Comic", "find comic")
	}
	return comic, nil
}

func (repository *repository) Update(context context.Context, comic *Comic) error {
	tags, err := encodeTags(comic.Tags)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
			%s = $8, %s = $9, %s = $10, %s = $11, %s = $12, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		comics.Table,
		comics.SeriesID, comics.Title, comics.Description, comics.CoverPath, comics.Genre, comics.Status,
		comics.Schedule, comics.ContentType, comics.Tags, comics.IsPublished, comics.IsEditorPick, comics.UpdatedAt,
		comics.ID,
		comics.UpdatedAt)

	err = repository.pool.QueryRow(context, query,
		comic.ID,
		comic.SeriesID,
		comic.Title,
		comic.Description,
		comic.CoverPath,
		comic.Genre,
		comic.Status,
		comic.Schedule,
		comic.ContentType,
		tags,
		comic.IsPublished,
		comic.IsEditorPick,
	).Scan(&comic.UpdatedAt)
	return dberr.Wrap(err, "Comic", "update comic")
}

func (repository *repository) Delete(context context.Context, id string) ([]string, error) {
	var paths []string
	err := postgres.InTx(context, repository.pool, func(transaction pgx.Tx) error {
		var err error
		paths, err = cascade.DeleteComics(context, transaction, []string{id})
		return err
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// # Listing

/*
List builds the WHERE clause from query and pages the result.

Description: COUNT(*) OVER() returns the total alongside the page so one round
trip serves both.
*/
func (repository *repository) List(context context.Context, query Query) ([]*Comic, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
	SELECT %s, u.%s, COUNT(*) OVER()
	FROM %s c
	JOIN %s u ON u.%s = c.%s
	WHERE TRUE`,
		schema.Select("c", comics.Columns()), accounts.Username,
		comics.Table,
		accounts.Table, accounts.ID, comics.AuthorID))

	if query.AuthorID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s = $%d", comics.AuthorID, argID))
		args = append(args, query.AuthorID)
		argID++
	}

	if query.PublishedOnly {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s", comics.IsPublished))
	}

	if query.Unpublished {
		queryBuilder.WriteString(fmt.Sprintf(" AND NOT c.%s", comics.IsPublished))
	}

	if query.EditorPick {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s", comics.IsEditorPick))
	}

	if query.Title != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND c.%s ILIKE $%d ESCAPE '\'`, comics.Title, argID))
		args = append(args, "%"+escapeLike(query.Title)+"%")
		argID++
	}

	if query.Genre != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND LOWER(c.%s) = LOWER($%d)", comics.Genre, argID))
		args = append(args, query.Genre)
		argID++
	}

	if query.CreatedAfter != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s >= $%d", comics.CreatedAt, argID))
		args = append(args, *query.CreatedAfter)
		argID++
	}

	orderColumn := comics.CreatedAt
	if query.ByUpdated {
		orderColumn = comics.UpdatedAt
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY c.%s DESC, c.%s DESC LIMIT $%d OFFSET $%d",
		orderColumn, comics.ID, argID, argID+1))
	args = append(args, query.Limit, query.Offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list comics: %w", err)
	}
	defer rows.Close()

	list := []*Comic{}
	total := 0
	for rows.Next() {
		comic := &Comic{}
		var tags *string
		err := rows.Scan(
			&comic.ID, &comic.AuthorID, &comic.SeriesID, &comic.Title, &comic.Description,
			&comic.CoverPath, &comic.Genre, &comic.Status, &comic.Schedule, &comic.ContentType,
			&tags, &comic.IsPublished, &comic.IsEditorPick, &comic.TotalViews, &comic.TotalRating,
			&comic.RatingCount, &comic.CreatedAt, &comic.UpdatedAt, &comic.AuthorName, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan comic: %w", err)
		}
		comic.Tags = decodeTags(tags)
		comic.refreshAverage()
		list = append(list, comic)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to iterate comics: %w", err)
	}

	return list, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}

func (repository *repository) SeriesAuthor(context context.Context, seriesID string) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, seriesTable.AuthorID, seriesTable.Table, seriesTable.ID)

	var authorID string
	if err := repository.pool.QueryRow(context, query, seriesID).Scan(&authorID); err != nil {
		return "", dberr.Wrap(err, "Series", "find series author")
	}
	return authorID, nil
}

// # Ratings & Follows

func (repository *repository) Rate(context context.Context, userID, comicID string, score int) (rating.Result, error) {
	var result rating.Result
	err := postgres.InTx(context, repository.pool, func(transaction pgx.Tx) error {
		var err error
		result, err = rating.Upsert(context, transaction, rating.Comic, userID, comicID, score)
		return err
	})
	return result, err
}

func (repository *repository) UserRating(context context.Context, userID, comicID string) (*int, error) {
	return rating.UserScore(context, repository.pool, rating.Comic, userID, comicID)
}

func (repository *repository) Follow(context context.Context, userID, comicID string) (bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, NOW())
		ON CONFLICT (%s, %s) DO NOTHING`,
		follows.Table, follows.UserID, follows.ComicID, follows.CreatedAt,
		follows.UserID, follows.ComicID)

	tag, err := repository.pool.Exec(context, query, userID, comicID)
	if err != nil {
		return false, dberr.Wrap(err, "Comic", "follow comic")
	}
	return tag.RowsAffected() > 0, nil
}

func (repository *repository) Unfollow(context context.Context, userID, comicID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, follows.Table, follows.UserID, follows.ComicID)

	if _, err := repository.pool.Exec(context, query, userID, comicID); err != nil {
		return fmt.Errorf("postgres: failed to unfollow comic: %w", err)
	}
	return nil
}

func (repository *repository) FollowerCount(context context.Context, comicID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, follows.Table, follows.ComicID)

	var count int
	if err := repository.pool.QueryRow(context, query, comicID).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres: failed to count comic followers: %w", err)
	}
	return count, nil
}

func (repository *repository) IsFollowing(context context.Context, userID, comicID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`, follows.Table, follows.UserID, follows.ComicID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, userID, comicID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to check comic follow: %w", err)
	}
	return exists, nil
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package series

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/katha/internal/core/cascade"
	"github.com/taibuivan/katha/internal/platform/database/schema"
	"github.com/taibuivan/katha/internal/platform/dberr"
	"github.com/taibuivan/katha/internal/platform/postgres"
)

// # PostgreSQL Repository

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed series [Repository].
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

var (
	seriesTable = schema.CoreSeries
	comicTable  = schema.CoreComic
)

// selectSeries reads every series column plus the number of comics filed under it.
var selectSeries = fmt.Sprintf(`
	SELECT %s,
		(SELECT COUNT(*) FROM %s c WHERE c.%s = s.%s)
	FROM %s s`,
	schema.Select("s", seriesTable.Columns()),
	comicTable.Table, comicTable.SeriesID, seriesTable.ID,
	seriesTable.Table)

func scanSeries(row pgx.Row) (*Series, error) {
	series := &Series{}
	err := row.Scan(
		&series.ID,
		&series.AuthorID,
		&series.Name,
		&series.Description,
		&series.CoverPath,
		&series.Genre,
		&series.Status,
		&series.Schedule,
		&series.CreatedAt,
		&series.UpdatedAt,
		&series.ComicCount,
	)
	return series, err
}

func (repository *repository) Create(context context.Context, series *Series) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		seriesTable.Table, schema.Select("", seriesTable.Columns()))

	now := time.Now().UTC()
	series.CreatedAt, series.UpdatedAt = now, now

	_, err := repository.pool.Exec(context, query,
		series.ID,
		series.AuthorID,
		series.Name,
		series.Description,
		series.CoverPath,
		series.Genre,
		series.Status,
		series.Schedule,
		series.CreatedAt,
		series.UpdatedAt,
	)
	return dberr.Wrap(err, "Series", "create series")
}

func (repository *repository) FindByID(context context.Context, id string) (*Series, error) {
	query := selectSeries + fmt.Sprintf(` WHERE s.%s = $1`, seriesTable.ID)

	series, err := scanSeries(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Series", "find series")
	}
	return series, nil
}

func (repository *repository) ListByAuthor(context context.Context, authorID string) ([]*Series, error) {
	query := selectSeries + fmt.Sprintf(` WHERE s.%s = $1 ORDER BY s.%s DESC`, seriesTable.AuthorID, seriesTable.UpdatedAt)

	rows, err := repository.pool.Query(context, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list series: %w", err)
	}
	defer rows.Close()

	list := []*Series{}
	for rows.Next() {
		series, err := scanSeries(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan series: %w", err)
		}
		list = append(list, series)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate series: %w", err)
	}
	return list, nil
}

func (repository *repository) Update(context context.Context, series *Series) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		seriesTable.Table,
		seriesTable.Name, seriesTable.Description, seriesTable.CoverPath,
		seriesTable.Genre, seriesTable.Status, seriesTable.Schedule, seriesTable.UpdatedAt,
		seriesTable.ID,
		seriesTable.UpdatedAt)

	err := repository.pool.QueryRow(context, query,
		series.ID,
		series.Name,
		series.Description,
		series.CoverPath,
		series.Genre,
		series.Status,
		series.Schedule,
	).Scan(&series.UpdatedAt)
	return dberr.Wrap(err, "Series", "update series")
}

func (repository *repository) Delete(context context.Context, id string) ([]string, error) {
	var removed []string

	err := postgres.InTx(context, repository.pool, func(transaction pgx.Tx) error {
		rows, err := transaction.Query(context,
			fmt.Sprintf(`SELECT %s::text FROM %s WHERE %s = $1`, comicTable.ID, comicTable.Table, comicTable.SeriesID), id)
		if err != nil {
			return fmt.Errorf("postgres: failed to list series comics: %w", err)
		}
		comicIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return fmt.Errorf("postgres: failed to collect series comics: %w", err)
		}

		paths, err := cascade.DeleteComics(context, transaction, comicIDs)
		if err != nil {
			return err
		}

		var coverPath string
		err = transaction.QueryRow(context,
			fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 RETURNING %s`, seriesTable.Table, seriesTable.ID, seriesTable.CoverPath), id).
			Scan(&coverPath)
		if err != nil {
			return dberr.Wrap(err, "Series", "delete series")
		}

		removed = paths
		if coverPath != "" {
			removed = append(removed, coverPath)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (repository *repository) ComicContentTypes(context context.Context, seriesID string) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s, %s`,
		comicTable.ContentType, comicTable.Table, comicTable.SeriesID, comicTable.CreatedAt, comicTable.ID)

	rows, err := repository.pool.Query(context, query, seriesID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to read content types: %w", err)
	}
	types, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to collect content types: %w", err)
	}
	return types, nil
}

func (repository *repository) ListComics(context context.Context, seriesID string, publishedOnly bool) ([]ComicCard, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND ($2 = FALSE OR %s)
		ORDER BY %s, %s`,
		comicTable.ID, comicTable.Title, comicTable.CoverPath, comicTable.ContentType, comicTable.IsPublished, comicTable.UpdatedAt,
		comicTable.Table,
		comicTable.SeriesID, comicTable.IsPublished,
		comicTable.CreatedAt, comicTable.ID)

	rows, err := repository.pool.Query(context, query, seriesID, publishedOnly)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list series comics: %w", err)
	}

	cards, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ComicCard, error) {
		var card ComicCard
		err := row.Scan(&card.ID, &card.Title, &card.CoverPath, &card.ContentType, &card.IsPublished, &card.UpdatedAt)
		return card, err
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to scan series comics: %w", err)
	}
	return cards, nil
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/katha/internal/platform/database/schema"
)

// # PostgreSQL Repository

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed analytics [Repository].
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

var (
	comicTable = schema.CoreComic
	viewLog    = schema.LibraryViewLog
)

// summaryColumns is the projection shared by every [ComicSummary] query.
var summaryColumns = schema.Select("c", []string{
	comicTable.ID, comicTable.AuthorID, comicTable.Title, comicTable.Genre,
	comicTable.CoverPath, comicTable.ContentType, comicTable.IsPublished,
	comicTable.TotalViews, comicTable.TotalRating, comicTable.RatingCount,
	comicTable.CreatedAt, comicTable.UpdatedAt,
})

func scanSummaries(rows pgx.Rows, withWindow bool) ([]ComicSummary, error) {
	defer rows.Close()

	var comics []ComicSummary
	for rows.Next() {
		var comic ComicSummary
		dest := []any{
			&comic.ID, &comic.AuthorID, &comic.Title, &comic.Genre,
			&comic.CoverPath, &comic.ContentType, &comic.IsPublished,
			&comic.TotalViews, &comic.TotalRating, &comic.RatingCount,
			&comic.CreatedAt, &comic.UpdatedAt,
		}
		if withWindow {
			dest = append(dest, &comic.WindowViews)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan comic summary: %w", err)
		}
		comic.AverageRating = AverageRating(comic.TotalRating, comic.RatingCount)
		comics = append(comics, comic)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate comic summaries: %w", err)
	}
	return comics, nil
}

func (repository *repository) comicTotals(context context.Context, column, value string) ([]ComicTotals, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s`,
		comicTable.ID, comicTable.ContentType, comicTable.TotalViews, comicTable.TotalRating, comicTable.RatingCount,
		comicTable.Table, column, comicTable.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, value)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query comic totals: %w", err)
	}
	defer rows.Close()

	var totals []ComicTotals
	for rows.Next() {
		var total ComicTotals
		if err := rows.Scan(&total.ID, &total.ContentType, &total.TotalViews, &total.TotalRating, &total.RatingCount); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan comic totals: %w", err)
		}
		totals = append(totals, total)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate comic totals: %w", err)
	}
	return totals, nil
}

func (repository *repository) ComicTotalsByAuthor(context context.Context, authorID string) ([]ComicTotals, error) {
	return repository.comicTotals(context, comicTable.AuthorID, authorID)
}

func (repository *repository) ComicTotalsBySeries(context context.Context, seriesID string) ([]ComicTotals, error) {
	return repository.comicTotals(context, comicTable.SeriesID, seriesID)
}

func (repository *repository) count(context context.Context, query string, args ...any) (int, error) {
	var count int
	if err := repository.pool.QueryRow(context, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres: failed to count: %w", err)
	}
	return count, nil
}

func (repository *repository) FollowersOfAuthor(context context.Context, authorID string) (int, error) {
	return repository.count(context, `
		SELECT COUNT(*) FROM social.comicfollow f
		JOIN core.comic c ON c.id = f.comicid
		WHERE c.authorid = $1`, authorID)
}

func (repository *repository) FollowersOfSeries(context context.Context, seriesID string) (int, error) {
	return repository.count(context, `
		SELECT COUNT(*) FROM social.comicfollow f
		JOIN core.comic c ON c.id = f.comicid
		WHERE c.seriesid = $1`, seriesID)
}

func (repository *repository) AuthorViewsSince(context context.Context, authorID string, since time.Time) (int, error) {
	return repository.count(context, `
		SELECT COUNT(*) FROM library.viewlog v
		JOIN core.comic c ON c.id = v.comicid
		WHERE c.authorid = $1 AND v.viewedat >= $2`, authorID, since)
}

func (repository *repository) CommentsForAuthor(context context.Context, authorID string) (int, error) {
	return repository.count(context, `
		SELECT COUNT(*) FROM social.comment m
		JOIN core.chapter ch ON ch.id = m.chapterid
		JOIN core.comic c ON c.id = ch.comicid
		WHERE c.authorid = $1`, authorID)
}

// # Activity Sources

func (repository *repository) RecentChapters(context context.Context, authorID string, limit int) ([]ChapterEvent, error) {
	rows, err := repository.pool.Query(context, `
		SELECT ch.id, ch.title, c.id, c.title, ch.createdat
		FROM core.chapter ch
		JOIN core.comic c ON c.id = ch.comicid
		WHERE c.authorid = $1
		ORDER BY ch.createdat DESC
		LIMIT $2`, authorID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query recent chapters: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (ChapterEvent, error) {
		var event ChapterEvent
		err := row.Scan(&event.ChapterID, &event.ChapterTitle, &event.ComicID, &event.ComicTitle, &event.CreatedAt)
		return event, err
	})
}

func (repository *repository) RecentComments(context context.Context, authorID string, limit int) ([]CommentEvent, error) {
	rows, err := repository.pool.Query(context, `
		SELECT ch.id, ch.title, c.id, u.username, m.createdat
		FROM social.comment m
		JOIN core.chapter ch ON ch.id = m.chapterid
		JOIN core.comic c ON c.id = ch.comicid
		JOIN users.account u ON u.id = m.userid
		WHERE c.authorid = $1
		ORDER BY m.createdat DESC
		LIMIT $2`, authorID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query recent comments: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (CommentEvent, error) {
		var event CommentEvent
		err := row.Scan(&event.ChapterID, &event.ChapterTitle, &event.ComicID, &event.Username, &event.CreatedAt)
		return event, err
	})
}

func (repository *repository) RecentRatings(context context.Context, authorID string, limit int) ([]RatingEvent, error) {
	rows, err := repository.pool.Query(context, `
		SELECT c.id, c.title, r.score, r.createdat
		FROM social.comicrating r
		JOIN core.comic c ON c.id = r.comicid
		WHERE c.authorid = $1
		ORDER BY r.createdat DESC
		LIMIT $2`, authorID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query recent ratings: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (RatingEvent, error) {
		var event RatingEvent
		err := row.Scan(&event.ComicID, &event.ComicTitle, &event.Score, &event.CreatedAt)
		return event, err
	})
}

// # Rankings

/*
Trending joins the view log to published comics and ranks by row count in the
window. The inner join drops comics without views; ties fall back to creation
order.
*/
func (repository *repository) Trending(context context.Context, since time.Time, limit int) ([]ComicSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(v.%s) AS windowviews
		FROM %s c
		JOIN %s v ON v.%s = c.%s
		WHERE c.%s = TRUE AND v.%s >= $1
		GROUP BY c.%s
		ORDER BY windowviews DESC, c.%s ASC
		LIMIT $2`,
		summaryColumns, viewLog.ID,
		comicTable.Table,
		viewLog.Table, viewLog.ComicID, comicTable.ID,
		comicTable.IsPublished, viewLog.ViewedAt,
		comicTable.ID,
		comicTable.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query trending comics: %w", err)
	}
	return scanSummaries(rows, true)
}

func (repository *repository) TopRated(context context.Context, limit int) ([]ComicSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s c
		WHERE c.%s = TRUE AND c.%s > 0
		ORDER BY c.%s DESC, c.%s ASC
		LIMIT $1`,
		summaryColumns, comicTable.Table,
		comicTable.IsPublished, comicTable.RatingCount,
		comicTable.TotalRating, comicTable.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query top rated comics: %w", err)
	}
	return scanSummaries(rows, false)
}

func (repository *repository) GenreDistribution(context context.Context) ([]GenreStat, error) {
	rows, err := repository.pool.Query(context, `
		SELECT genre, COUNT(*), AVG(totalrating)::float8
		FROM core.comic
		WHERE ispublished = TRUE AND genre <> ''
		GROUP BY genre
		ORDER BY COUNT(*) DESC, genre ASC`)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query genre distribution: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (GenreStat, error) {
		var stat GenreStat
		err := row.Scan(&stat.Genre, &stat.Count, &stat.AvgRating)
		return stat, err
	})
}

func (repository *repository) DailyViews(context context.Context, start, end time.Time) ([]DailyCount, error) {
	rows, err := repository.pool.Query(context, `
		SELECT (viewedat AT TIME ZONE 'UTC')::date AS day, COUNT(*)
		FROM library.viewlog
		WHERE viewedat >= $1 AND viewedat < $2
		GROUP BY day
		ORDER BY day ASC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query daily views: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (DailyCount, error) {
		var daily DailyCount
		err := row.Scan(&daily.Date, &daily.Count)
		return daily, err
	})
}

// # Platform Totals

func (repository *repository) Overview(context context.Context) (Overview, error) {
	var overview Overview

	err := repository.pool.QueryRow(context, `
		SELECT
			(SELECT COUNT(*) FROM core.comic),
			(SELECT COUNT(*) FROM users.account),
			(SELECT COUNT(*) FROM users.account WHERE isartist = TRUE),
			(SELECT COALESCE(SUM(totalviews), 0)::bigint FROM core.comic)`,
	).Scan(&overview.TotalComics, &overview.TotalUsers, &overview.TotalArtists, &overview.TotalViews)
	if err != nil {
		return Overview{}, fmt.Errorf("postgres: failed to query platform overview: %w", err)
	}

	return overview, nil
}

func (repository *repository) ActiveUsers(context context.Context, since time.Time) (int, error) {
	return repository.count(context, `
		SELECT COUNT(DISTINCT userid) FROM library.viewlog
		WHERE userid IS NOT NULL AND viewedat >= $1`, since)
}

func (repository *repository) NewestComics(context context.Context, limit int) ([]ComicSummary, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s c ORDER BY c.%s DESC LIMIT $1`,
		summaryColumns, comicTable.Table, comicTable.CreatedAt)

	rows, err := repository.pool.Query(context, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query newest comics: %w", err)
	}
	return scanSummaries(rows, false)
}

func (repository *repository) NewestUsers(context context.Context, limit int) ([]UserSummary, error) {
	rows, err := repository.pool.Query(context, `
		SELECT id, username, isartist, role, createdat
		FROM users.account
		ORDER BY createdat DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query newest users: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (UserSummary, error) {
		var user UserSummary
		err := row.Scan(&user.ID, &user.Username, &user.IsArtist, &user.Role, &user.CreatedAt)
		return user, err
	})
}

func (repository *repository) RecentlyUpdatedComics(context context.Context, authorID string, limit int) ([]ComicSummary, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s c WHERE c.%s = $1 ORDER BY c.%s DESC LIMIT $2`,
		summaryColumns, comicTable.Table, comicTable.AuthorID, comicTable.UpdatedAt)

	rows, err := repository.pool.Query(context, query, authorID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query creator comics: %w", err)
	}
	return scanSummaries(rows, false)
}

func (repository *repository) RecentSeries(context context.Context, authorID string, limit int) ([]SeriesSummary, error) {
	series := schema.CoreSeries
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s DESC LIMIT $2`,
		series.ID, series.Name, series.Genre, series.Status, series.UpdatedAt,
		series.Table, series.AuthorID, series.UpdatedAt)

	rows, err := repository.pool.Query(context, query, authorID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query creator series: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (SeriesSummary, error) {
		var summary SeriesSummary
		err := row.Scan(&summary.ID, &summary.Name, &summary.Genre, &summary.Status, &summary.UpdatedAt)
		return summary, err
	})
}

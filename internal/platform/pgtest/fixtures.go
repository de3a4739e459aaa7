// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pgtest

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/katha/pkg/uuid"
)

// # Fixtures

// Exec runs statement and fails the test on error.
func Exec(t *testing.T, pool *pgxpool.Pool, statement string, args ...any) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), statement, args...); err != nil {
		t.Fatalf("pgtest: exec %q: %v", statement, err)
	}
}

// Count returns the result of a COUNT(*) style query.
func Count(t *testing.T, pool *pgxpool.Pool, query string, args ...any) int {
	t.Helper()

	var count int
	if err := pool.QueryRow(context.Background(), query, args...).Scan(&count); err != nil {
		t.Fatalf("pgtest: count %q: %v", query, err)
	}
	return count
}

// User inserts an account named username and returns its id.
func User(t *testing.T, pool *pgxpool.Pool, username string, isArtist bool) string {
	t.Helper()

	id := uuid.New()
	Exec(t, pool, `
		INSERT INTO users.account (id, username, email, passwordhash, isartist)
		VALUES ($1, $2, $3, 'x', $4)`,
		id, username, username+"@example.com", isArtist)
	return id
}

// ComicFixture holds the columns tests usually care about. Zero values take
// the column defaults, except CreatedAt which defaults to now.
type ComicFixture struct {
	Title       string
	Genre       string
	ContentType string
	SeriesID    *string
	Published   bool
	TotalViews  int64
	TotalRating float64
	RatingCount int
	CreatedAt   time.Time
}

// Comic inserts a comic owned by authorID and returns its id.
func Comic(t *testing.T, pool *pgxpool.Pool, authorID string, fixture ComicFixture) string {
	t.Helper()

	if fixture.Title == "" {
		fixture.Title = "Untitled"
	}
	if fixture.ContentType == "" {
		fixture.ContentType = "comic"
	}
	if fixture.CreatedAt.IsZero() {
		fixture.CreatedAt = time.Now()
	}

	id := uuid.New()
	Exec(t, pool, `
		INSERT INTO core.comic (id, authorid, seriesid, title, genre, contenttype, ispublished,
			totalviews, totalrating, ratingcount, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`,
		id, authorID, fixture.SeriesID, fixture.Title, fixture.Genre, fixture.ContentType, fixture.Published,
		fixture.TotalViews, fixture.TotalRating, fixture.RatingCount, fixture.CreatedAt)
	return id
}

// Series inserts a series owned by authorID and returns its id.
func Series(t *testing.T, pool *pgxpool.Pool, authorID, name string) string {
	t.Helper()

	id := uuid.New()
	Exec(t, pool, `INSERT INTO core.series (id, authorid, name) VALUES ($1, $2, $3)`, id, authorID, name)
	return id
}

// Chapter inserts a published chapter and returns its id.
func Chapter(t *testing.T, pool *pgxpool.Pool, comicID, title string, number float64) string {
	t.Helper()

	id := uuid.New()
	Exec(t, pool, `
		INSERT INTO core.chapter (id, comicid, title, chapternumber, ispublished, publishedat)
		VALUES ($1, $2, $3, $4, TRUE, NOW())`,
		id, comicID, title, number)
	return id
}

// View appends a view log row for comicID at the given time.
func View(t *testing.T, pool *pgxpool.Pool, comicID string, userID *string, at time.Time) {
	t.Helper()

	Exec(t, pool, `
		INSERT INTO library.viewlog (id, userid, comicid, viewedat) VALUES ($1, $2, $3, $4)`,
		uuid.New(), userID, comicID, at)
}

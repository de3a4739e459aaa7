// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"context"
	"time"
)

// # Read Models

// ComicSummary is the list-card shape of a comic used by dashboards and rankings.
type ComicSummary struct {
	ID            string    `json:"id"`
	AuthorID      string    `json:"author_id"`
	Title         string    `json:"title"`
	Genre         string    `json:"genre"`
	CoverPath     string    `json:"cover_path"`
	ContentType   string    `json:"content_type"`
	IsPublished   bool      `json:"is_published"`
	TotalViews    int64     `json:"total_views"`
	TotalRating   float64   `json:"total_rating"`
	RatingCount   int       `json:"rating_count"`
	AverageRating float64   `json:"average_rating"`
	WindowViews   int       `json:"window_views,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserSummary is the list-card shape of an account.
type UserSummary struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	IsArtist  bool      `json:"is_artist"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// SeriesSummary is the list-card shape of a series.
type SeriesSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Genre     string    `json:"genre"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Overview holds platform-wide totals.
type Overview struct {
	TotalComics  int   `json:"total_comics"`
	TotalUsers   int   `json:"total_users"`
	TotalArtists int   `json:"total_artists"`
	TotalViews   int64 `json:"total_views"`
}

// # Data Access

// Repository is the read-only query surface behind every dashboard.
type Repository interface {

	/*
		ComicTotalsByAuthor returns the counters of every comic owned by authorID,
		published or not.
	*/
	ComicTotalsByAuthor(context context.Context, authorID string) ([]ComicTotals, error)

	// ComicTotalsBySeries returns the counters of every comic in seriesID.
	// An unknown series yields an empty slice.
	ComicTotalsBySeries(context context.Context, seriesID string) ([]ComicTotals, error)

	// FollowersOfAuthor counts comic follows across all of authorID's comics.
	FollowersOfAuthor(context context.Context, authorID string) (int, error)

	// FollowersOfSeries counts comic follows across the comics of seriesID.
	FollowersOfSeries(context context.Context, seriesID string) (int, error)

	// AuthorViewsSince counts view log rows for authorID's comics at or after since.
	AuthorViewsSince(context context.Context, authorID string, since time.Time) (int, error)

	// CommentsForAuthor counts comments on chapters of authorID's comics.
	CommentsForAuthor(context context.Context, authorID string) (int, error)

	/*
		RecentChapters, RecentComments and RecentRatings return the newest events
		of each kind scoped to authorID's content, newest first.

		Parameters:
		  - context: context.Context
		  - authorID: string (UUID)
		  - limit: int

		Returns:
		  - Events ordered by creation time descending
		  - error: Database execution errors
	*/
	RecentChapters(context context.Context, authorID string, limit int) ([]ChapterEvent, error)
	RecentComments(context context.Context, authorID string, limit int) ([]CommentEvent, error)
	RecentRatings(context context.Context, authorID string, limit int) ([]RatingEvent, error)

	/*
		Trending ranks published comics by the number of views logged at or after
		since. Comics without views in the window are excluded.

		Parameters:
		  - context: context.Context
		  - since: time.Time (Window start)
		  - limit: int

		Returns:
		  - []ComicSummary: WindowViews populated, highest first
		  - error: Database execution errors
	*/
	Trending(context context.Context, since time.Time, limit int) ([]ComicSummary, error)

	// TopRated ranks published, rated comics by total rating descending.
	TopRated(context context.Context, limit int) ([]ComicSummary, error)

	// GenreDistribution groups published comics with a genre, averaging total rating.
	GenreDistribution(context context.Context) ([]GenreStat, error)

	// DailyViews counts views per UTC day in [start, end), ascending, skipping empty days.
	DailyViews(context context.Context, start, end time.Time) ([]DailyCount, error)

	// Overview returns platform-wide totals.
	Overview(context context.Context) (Overview, error)

	// ActiveUsers counts distinct signed-in viewers since a point in time.
	ActiveUsers(context context.Context, since time.Time) (int, error)

	// NewestComics returns the most recently created comics, any publish state.
	NewestComics(context context.Context, limit int) ([]ComicSummary, error)

	// NewestUsers returns the most recently registered accounts.
	NewestUsers(context context.Context, limit int) ([]UserSummary, error)

	// RecentlyUpdatedComics returns authorID's comics ordered by last update.
	RecentlyUpdatedComics(context context.Context, authorID string, limit int) ([]ComicSummary, error)

	// RecentSeries returns authorID's series ordered by last update.
	RecentSeries(context context.Context, authorID string, limit int) ([]SeriesSummary, error)
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"context"
	"time"

	"github.com/taibuivan/katha/internal/platform/constants"
	"github.com/taibuivan/katha/internal/platform/validate"
	"github.com/taibuivan/katha/pkg/slice"
)

// # Service Layer

// Service assembles dashboard views from [Repository] reads and the pure
// aggregation functions of this package.
type Service struct {
	repo               Repository
	trendingWindowDays int
	now                func() time.Time
}

// NewService constructs a [Service]. trendingWindowDays is the window used when
// callers ask for trending comics without one; non-positive means the default.
func NewService(repo Repository, trendingWindowDays int) *Service {
	if trendingWindowDays <= 0 {
		trendingWindowDays = constants.TrendingWindowDays
	}
	return &Service{repo: repo, trendingWindowDays: trendingWindowDays, now: time.Now}
}

// # Creator Aggregates

/*
CreatorStats computes the headline numbers for authorID.

Returns:
  - CreatorStats: Totals across every comic the creator owns
  - error: Repository failures
*/
func (service *Service) CreatorStats(context context.Context, authorID string) (CreatorStats, error) {
	comics, err := service.repo.ComicTotalsByAuthor(context, authorID)
	if err != nil {
		return CreatorStats{}, err
	}

	followers, err := service.repo.FollowersOfAuthor(context, authorID)
	if err != nil {
		return CreatorStats{}, err
	}

	since := WindowStart(service.now().UTC(), constants.RecentViewDays)
	recentViews, err := service.repo.AuthorViewsSince(context, authorID, since)
	if err != nil {
		return CreatorStats{}, err
	}

	comments, err := service.repo.CommentsForAuthor(context, authorID)
	if err != nil {
		return CreatorStats{}, err
	}

	return BuildCreatorStats(comics, followers, recentViews, comments), nil
}

// SeriesAnalytics summarises one series. An unknown series reads as all zero.
func (service *Service) SeriesAnalytics(context context.Context, seriesID string) (SeriesAnalytics, error) {
	comics, err := service.repo.ComicTotalsBySeries(context, seriesID)
	if err != nil {
		return SeriesAnalytics{}, err
	}

	followers, err := service.repo.FollowersOfSeries(context, seriesID)
	if err != nil {
		return SeriesAnalytics{}, err
	}

	return BuildSeriesAnalytics(comics, followers), nil
}

// RecentActivity returns the creator's merged activity feed, newest first.
func (service *Service) RecentActivity(context context.Context, authorID string, limit int) ([]ActivityItem, error) {
	chapters, err := service.repo.RecentChapters(context, authorID, constants.ActivityPerKind)
	if err != nil {
		return nil, err
	}

	comments, err := service.repo.RecentComments(context, authorID, constants.ActivityPerKind)
	if err != nil {
		return nil, err
	}

	ratings, err := service.repo.RecentRatings(context, authorID, constants.ActivityPerKind)
	if err != nil {
		return nil, err
	}

	return MergeActivity(chapters, comments, ratings, limit), nil
}

// CreatorDashboard is everything the creator landing page shows.
type CreatorDashboard struct {
	Stats         CreatorStats    `json:"stats"`
	RecentComics  []ComicSummary  `json:"recent_comics"`
	Series        []SeriesSummary `json:"series"`
	Activity      []ActivityItem  `json:"activity"`
	ContentByType map[string]int  `json:"content_by_type"`
}

// CreatorDashboard gathers stats, recent work, activity and the content mix of
// the recently updated comics for authorID.
func (service *Service) CreatorDashboard(context context.Context, authorID string) (*CreatorDashboard, error) {
	stats, err := service.CreatorStats(context, authorID)
	if err != nil {
		return nil, err
	}

	recent, err := service.repo.RecentlyUpdatedComics(context, authorID, constants.CreatorRecentComics)
	if err != nil {
		return nil, err
	}

	series, err := service.repo.RecentSeries(context, authorID, constants.CreatorRecentSeries)
	if err != nil {
		return nil, err
	}

	activity, err := service.RecentActivity(context, authorID, constants.CreatorFeedLimit)
	if err != nil {
		return nil, err
	}

	// The content mix describes the comics on screen, not the whole catalogue.
	shown := slice.Map(recent, func(comic ComicSummary) ComicTotals {
		return ComicTotals{ID: comic.ID, ContentType: comic.ContentType}
	})

	return &CreatorDashboard{
		Stats:         stats,
		RecentComics:  recent,
		Series:        series,
		Activity:      activity,
		ContentByType: ContentByType(shown),
	}, nil
}

// # Platform Aggregates

// Trending ranks published comics by views over the trailing windowDays.
// Non-positive arguments fall back to the configured window and default limit;
// a window longer than a year is a validation error.
func (service *Service) Trending(context context.Context, windowDays, limit int) ([]ComicSummary, error) {
	if windowDays <= 0 {
		windowDays = service.trendingWindowDays
	}
	if limit <= 0 {
		limit = constants.TrendingLimit
	}

	validator := &validate.Validator{}
	if err := validator.Range("days", windowDays, 1, constants.AnalyticsMaxDays).Err(); err != nil {
		return nil, err
	}

	return service.repo.Trending(context, WindowStart(service.now().UTC(), windowDays), limit)
}

// TopRated ranks published comics by accumulated rating total.
func (service *Service) TopRated(context context.Context, limit int) ([]ComicSummary, error) {
	if limit <= 0 {
		limit = constants.TopRatedLimit
	}
	return service.repo.TopRated(context, limit)
}

// GenreDistribution counts published comics per genre.
func (service *Service) GenreDistribution(context context.Context) ([]GenreStat, error) {
	stats, err := service.repo.GenreDistribution(context)
	if err != nil {
		return nil, err
	}
	return RoundGenres(stats), nil
}

// PlatformOverview returns platform-wide totals.
func (service *Service) PlatformOverview(context context.Context) (Overview, error) {
	return service.repo.Overview(context)
}

// ActiveUsers counts distinct signed-in viewers since a point in time.
func (service *Service) ActiveUsers(context context.Context, since time.Time) (int, error) {
	return service.repo.ActiveUsers(context, since)
}

// AdminDashboard is the moderation landing page.
type AdminDashboard struct {
	Overview     Overview       `json:"overview"`
	NewestComics []ComicSummary `json:"newest_comics"`
	NewestUsers  []UserSummary  `json:"newest_users"`
	Trending     []ComicSummary `json:"trending"`
	TopRated     []ComicSummary `json:"top_rated"`
}

// AdminDashboard gathers totals, newest content and the two rankings.
func (service *Service) AdminDashboard(context context.Context) (*AdminDashboard, error) {
	overview, err := service.repo.Overview(context)
	if err != nil {
		return nil, err
	}

	comics, err := service.repo.NewestComics(context, constants.AdminNewestLimit)
	if err != nil {
		return nil, err
	}

	users, err := service.repo.NewestUsers(context, constants.AdminNewestLimit)
	if err != nil {
		return nil, err
	}

	trending, err := service.Trending(context, constants.TrendingWindowDays, constants.TrendingLimit)
	if err != nil {
		return nil, err
	}

	topRated, err := service.TopRated(context, constants.TopRatedLimit)
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		Overview:     overview,
		NewestComics: comics,
		NewestUsers:  users,
		Trending:     trending,
		TopRated:     topRated,
	}, nil
}

// AdminAnalytics is the detailed reporting view over a trailing window.
type AdminAnalytics struct {
	Days        int            `json:"days"`
	DailyViews  []DailyCount   `json:"daily_views"`
	TopByViews  []ComicSummary `json:"top_by_views"`
	TopByRating []ComicSummary `json:"top_by_rating"`
	Genres      []GenreStat    `json:"genres"`
	TotalUsers  int            `json:"total_users"`
	ActiveUsers int            `json:"active_users"`
}

// DailyViewCounts returns one row per UTC day in [start, end) that saw at least
// one view, oldest first. An end before start is a validation error.
func (service *Service) DailyViewCounts(context context.Context, start, end time.Time) ([]DailyCount, error) {
	validator := &validate.Validator{}
	if err := validator.Custom("end", end.Before(start), "Must not be before start").Err(); err != nil {
		return nil, err
	}

	return service.repo.DailyViews(context, start.UTC(), end.UTC())
}

/*
AdminAnalytics reports on the trailing window of days.

Parameters:
  - context: context.Context
  - days: int (0 selects the default window)

Returns:
  - *AdminAnalytics: Report for the window ending now
  - error: Validation error when days is outside 1..365, or repository failures
*/
func (service *Service) AdminAnalytics(context context.Context, days int) (*AdminAnalytics, error) {
	if days == 0 {
		days = constants.AnalyticsDefaultDays
	}

	validator := &validate.Validator{}
	validator.Range("days", days, 1, constants.AnalyticsMaxDays)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	end := service.now().UTC()
	start := WindowStart(end, days)

	daily, err := service.DailyViewCounts(context, start, end)
	if err != nil {
		return nil, err
	}

	byViews, err := service.repo.Trending(context, start, constants.AnalyticsTopLimit)
	if err != nil {
		return nil, err
	}

	byRating, err := service.TopRated(context, constants.AnalyticsTopLimit)
	if err != nil {
		return nil, err
	}

	genres, err := service.GenreDistribution(context)
	if err != nil {
		return nil, err
	}

	overview, err := service.repo.Overview(context)
	if err != nil {
		return nil, err
	}

	active, err := service.repo.ActiveUsers(context, start)
	if err != nil {
		return nil, err
	}

	return &AdminAnalytics{
		Days:        days,
		DailyViews:  daily,
		TopByViews:  byViews,
		TopByRating: byRating,
		Genres:      genres,
		TotalUsers:  overview.TotalUsers,
		ActiveUsers: active,
	}, nil
}

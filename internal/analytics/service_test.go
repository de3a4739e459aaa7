// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/katha/internal/platform/apperr"
)

// fakeRepository serves canned rows and records the window boundaries it was asked for.
type fakeRepository struct {
	comics       map[string][]ComicTotals
	series       map[string][]ComicTotals
	followers    int
	recentViews  int
	comments     int
	chapters     []ChapterEvent
	commentFeed  []CommentEvent
	ratings      []RatingEvent
	trending     []ComicSummary
	topRated     []ComicSummary
	genres       []GenreStat
	daily        []DailyCount
	overview     Overview
	activeUsers  int
	newestUsers  []UserSummary
	recentSeries []SeriesSummary

	viewsSince    time.Time
	trendingSince time.Time
	trendingLimit int
	dailyStart    time.Time
	dailyEnd      time.Time
}

func (repo *fakeRepository) ComicTotalsByAuthor(_ context.Context, authorID string) ([]ComicTotals, error) {
	return repo.comics[authorID], nil
}

func (repo *fakeRepository) ComicTotalsBySeries(_ context.Context, seriesID string) ([]ComicTotals, error) {
	return repo.series[seriesID], nil
}

func (repo *fakeRepository) FollowersOfAuthor(context.Context, string) (int, error) {
	return repo.followers, nil
}

func (repo *fakeRepository) FollowersOfSeries(_ context.Context, seriesID string) (int, error) {
	if _, ok := repo.series[seriesID]; !ok {
		return 0, nil
	}
	return repo.followers, nil
}

func (repo *fakeRepository) AuthorViewsSince(_ context.Context, _ string, since time.Time) (int, error) {
	repo.viewsSince = since
	return repo.recentViews, nil
}

func (repo *fakeRepository) CommentsForAuthor(context.Context, string) (int, error) {
	return repo.comments, nil
}

func (repo *fakeRepository) RecentChapters(context.Context, string, int) ([]ChapterEvent, error) {
	return repo.chapters, nil
}

func (repo *fakeRepository) RecentComments(context.Context, string, int) ([]CommentEvent, error) {
	return repo.commentFeed, nil
}

func (repo *fakeRepository) RecentRatings(context.Context, string, int) ([]RatingEvent, error) {
	return repo.ratings, nil
}

func (repo *fakeRepository) Trending(_ context.Context, since time.Time, limit int) ([]ComicSummary, error) {
	repo.trendingSince, repo.trendingLimit = since, limit
	return repo.trending, nil
}

func (repo *fakeRepository) TopRated(context.Context, int) ([]ComicSummary, error) {
	return repo.topRated, nil
}

func (repo *fakeRepository) GenreDistribution(context.Context) ([]GenreStat, error) {
	return repo.genres, nil
}

func (repo *fakeRepository) DailyViews(_ context.Context, start, end time.Time) ([]DailyCount, error) {
	repo.dailyStart, repo.dailyEnd = start, end
	return repo.daily, nil
}

func (repo *fakeRepository) Overview(context.Context) (Overview, error) {
	return repo.overview, nil
}

func (repo *fakeRepository) ActiveUsers(context.Context, time.Time) (int, error) {
	return repo.activeUsers, nil
}

func (repo *fakeRepository) NewestComics(context.Context, int) ([]ComicSummary, error) {
	return repo.trending, nil
}

func (repo *fakeRepository) NewestUsers(context.Context, int) ([]UserSummary, error) {
	return repo.newestUsers, nil
}

func (repo *fakeRepository) RecentlyUpdatedComics(context.Context, string, int) ([]ComicSummary, error) {
	return repo.topRated, nil
}

func (repo *fakeRepository) RecentSeries(context.Context, string, int) ([]SeriesSummary, error) {
	return repo.recentSeries, nil
}

var fixedNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(repo Repository) *Service {
	service := NewService(repo, 0)
	service.now = func() time.Time { return fixedNow }
	return service
}

func TestService_CreatorStats(t *testing.T) {
	repo := &fakeRepository{
		comics: map[string][]ComicTotals{
			"artist": {
				{ID: "unrated", TotalViews: 10},
				{ID: "rated", TotalViews: 5, TotalRating: 12, RatingCount: 3},
			},
		},
		followers:   4,
		recentViews: 9,
		comments:    2,
	}

	stats, err := newTestService(repo).CreatorStats(context.Background(), "artist")

	require.NoError(t, err)
	assert.Equal(t, CreatorStats{
		TotalViews:     15,
		TotalFollowers: 4,
		AvgRating:      4.0,
		TotalContent:   2,
		RecentViews:    9,
		TotalComments:  2,
	}, stats)
	assert.Equal(t, fixedNow.AddDate(0, 0, -7), repo.viewsSince)
}

func TestService_SeriesAnalytics_UnknownSeriesIsZero(t *testing.T) {
	repo := &fakeRepository{followers: 3}

	analytics, err := newTestService(repo).SeriesAnalytics(context.Background(), "missing")

	require.NoError(t, err)
	assert.Equal(t, SeriesAnalytics{}, analytics)
}

func TestService_Trending_Defaults(t *testing.T) {
	repo := &fakeRepository{}

	_, err := newTestService(repo).Trending(context.Background(), 0, 0)

	require.NoError(t, err)
	assert.Equal(t, fixedNow.AddDate(0, 0, -7), repo.trendingSince)
	assert.Equal(t, 10, repo.trendingLimit)
}

func TestService_Trending_RejectsLongWindow(t *testing.T) {
	repo := &fakeRepository{}

	_, err := newTestService(repo).Trending(context.Background(), 366, 5)

	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.True(t, repo.trendingSince.IsZero())
}

func TestService_CreatorDashboard(t *testing.T) {
	repo := &fakeRepository{
		comics: map[string][]ComicTotals{
			"artist": {{ID: "a", ContentType: "story"}, {ID: "b", ContentType: "comic"}},
		},
		chapters: []ChapterEvent{{ChapterTitle: "Ch 1", ComicTitle: "A", CreatedAt: fixedNow}},
		ratings:  []RatingEvent{{ComicTitle: "A", Score: 4, CreatedAt: fixedNow.Add(-time.Hour)}},
		topRated: []ComicSummary{{ID: "b", ContentType: "comic"}},
	}

	dashboard, err := newTestService(repo).CreatorDashboard(context.Background(), "artist")

	require.NoError(t, err)
	assert.Equal(t, 2, dashboard.Stats.TotalContent)
	assert.Len(t, dashboard.RecentComics, 1)
	assert.Equal(t, map[string]int{"comic": 1, "story": 0, "mixed": 0, "standalone": 0}, dashboard.ContentByType)
	require.Len(t, dashboard.Activity, 2)
	assert.Equal(t, KindChapterCreated, dashboard.Activity[0].Kind)
}

func TestService_AdminAnalytics(t *testing.T) {
	repo := &fakeRepository{
		genres:      []GenreStat{{Genre: "drama", Count: 2, AvgRating: 7.25}},
		overview:    Overview{TotalUsers: 12},
		activeUsers: 5,
	}

	report, err := newTestService(repo).AdminAnalytics(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, 30, report.Days)
	assert.Equal(t, 12, report.TotalUsers)
	assert.Equal(t, 5, report.ActiveUsers)
	assert.Equal(t, 7.2, report.Genres[0].AvgRating)
	assert.Equal(t, fixedNow.AddDate(0, 0, -30), repo.dailyStart)
	assert.Equal(t, fixedNow, repo.dailyEnd)
}

func TestService_DailyViewCounts(t *testing.T) {
	day := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepository{daily: []DailyCount{{Date: day, Count: 3}}}
	service := newTestService(repo)

	tokyo := time.FixedZone("JST", 9*60*60)
	start := time.Date(2026, 6, 10, 9, 0, 0, 0, tokyo)
	end := start.AddDate(0, 0, 5)

	counts, err := service.DailyViewCounts(context.Background(), start, end)

	require.NoError(t, err)
	assert.Equal(t, []DailyCount{{Date: day, Count: 3}}, counts)
	assert.Equal(t, day, repo.dailyStart)
	assert.Equal(t, time.UTC, repo.dailyEnd.Location())

	_, err = service.DailyViewCounts(context.Background(), end, start)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestService_AdminAnalytics_RejectsWindow(t *testing.T) {
	_, err := newTestService(&fakeRepository{}).AdminAnalytics(context.Background(), 1000)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = newTestService(&fakeRepository{}).AdminAnalytics(context.Background(), -1)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

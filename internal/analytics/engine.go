// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package analytics derives the statistics shown on creator and admin dashboards.

The package has two halves:
  - Pure aggregation functions (this file and feed.go) that fold rows already
    read from PostgreSQL into dashboard figures. They never touch storage.
  - A read-only [Repository] and [Service] that gather those rows.

Two simplifications of the platform's historical behaviour are kept on
purpose so figures stay comparable with older reports:
  - Creator and series ratings are the mean of per-comic averages, not the
    average over every individual rating.
  - Top-rated lists rank by accumulated rating total, not by average.
*/
package analytics

import (
	"time"

	"github.com/taibuivan/katha/pkg/convert"
)

// # Content Types

// Content types a comic can be published as.
const (
	ContentComic      = "comic"
	ContentStory      = "story"
	ContentMixed      = "mixed"
	ContentStandalone = "standalone"
)

// ContentTypes lists every accepted content type in display order.
var ContentTypes = []string{ContentComic, ContentStory, ContentMixed, ContentStandalone}

// # Aggregate Shapes

// ComicTotals is the slice of a comic row the aggregations need.
type ComicTotals struct {
	ID          string
	ContentType string
	TotalViews  int64
	TotalRating float64
	RatingCount int
}

// CreatorStats is the headline block of a creator dashboard.
type CreatorStats struct {
	TotalViews     int64   `json:"total_views"`
	TotalFollowers int     `json:"total_followers"`
	AvgRating      float64 `json:"avg_rating"`
	TotalContent   int     `json:"total_content"`
	RecentViews    int     `json:"recent_views"`
	TotalComments  int     `json:"total_comments"`
}

// SeriesAnalytics summarises every comic in one series.
type SeriesAnalytics struct {
	TotalViews     int64   `json:"total_views"`
	TotalFollowers int     `json:"total_followers"`
	AvgRating      float64 `json:"avg_rating"`
	TotalComics    int     `json:"total_comics"`
}

// GenreStat is one row of the genre distribution.
type GenreStat struct {
	Genre     string  `json:"genre"`
	Count     int     `json:"count"`
	AvgRating float64 `json:"avg_rating"`
}

// DailyCount is the number of views recorded on one UTC calendar day.
type DailyCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// # Pure Functions

// AverageRating returns total/count rounded to one decimal, or 0 when nothing
// has been rated yet.
func AverageRating(totalRating float64, ratingCount int) float64 {
	if ratingCount <= 0 {
		return 0
	}
	return convert.Round1(totalRating / float64(ratingCount))
}

/*
RatingDelta returns the counter adjustments for a user setting score on a
target they previously rated with previous (nil when they had not).

A first rating adds the score and one to the count; a re-rating only shifts the
total by the difference.
*/
func RatingDelta(previous *int, score int) (totalDelta float64, countDelta int) {
	if previous == nil {
		return float64(score), 1
	}
	return float64(score - *previous), 0
}

// MeanOfAverages averages [AverageRating] across comics that have at least one
// rating, rounded to one decimal. Unrated comics do not pull the mean down.
func MeanOfAverages(comics []ComicTotals) float64 {
	var sum float64
	var rated int

	for _, comic := range comics {
		if comic.RatingCount > 0 {
			sum += AverageRating(comic.TotalRating, comic.RatingCount)
			rated++
		}
	}

	if rated == 0 {
		return 0
	}
	return convert.Round1(sum / float64(rated))
}

// TotalViews sums the lifetime views of comics.
func TotalViews(comics []ComicTotals) int64 {
	var total int64
	for _, comic := range comics {
		total += comic.TotalViews
	}
	return total
}

// BuildCreatorStats folds a creator's comics and engagement counts into [CreatorStats].
func BuildCreatorStats(comics []ComicTotals, followers, recentViews, comments int) CreatorStats {
	return CreatorStats{
		TotalViews:     TotalViews(comics),
		TotalFollowers: followers,
		AvgRating:      MeanOfAverages(comics),
		TotalContent:   len(comics),
		RecentViews:    recentViews,
		TotalComments:  comments,
	}
}

// BuildSeriesAnalytics folds the comics of one series into [SeriesAnalytics].
func BuildSeriesAnalytics(comics []ComicTotals, followers int) SeriesAnalytics {
	return SeriesAnalytics{
		TotalViews:     TotalViews(comics),
		TotalFollowers: followers,
		AvgRating:      MeanOfAverages(comics),
		TotalComics:    len(comics),
	}
}

// ContentByType counts comics per content type. Every known type is present,
// even at zero; unknown types are counted under their own key.
func ContentByType(comics []ComicTotals) map[string]int {
	counts := make(map[string]int, len(ContentTypes))
	for _, contentType := range ContentTypes {
		counts[contentType] = 0
	}
	for _, comic := range comics {
		counts[comic.ContentType]++
	}
	return counts
}

// RoundGenres rounds each AvgRating to one decimal in place and returns stats.
func RoundGenres(stats []GenreStat) []GenreStat {
	for i := range stats {
		stats[i].AvgRating = convert.Round1(stats[i].AvgRating)
	}
	return stats
}

// MostCommon returns the non-empty value occurring most often in values. Ties
// go to the value that appeared first; no candidates yields fallback.
func MostCommon(values []string, fallback string) string {
	counts := make(map[string]int, len(values))
	var order []string

	for _, value := range values {
		if value == "" {
			continue
		}
		if counts[value] == 0 {
			order = append(order, value)
		}
		counts[value]++
	}

	best, bestCount := fallback, 0
	for _, value := range order {
		if counts[value] > bestCount {
			best, bestCount = value, counts[value]
		}
	}

	return best
}

// WindowStart returns the start of a trailing window of days ending at now.
func WindowStart(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

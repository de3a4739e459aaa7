// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"fmt"
	"slices"
	"time"

	"github.com/taibuivan/katha/internal/platform/constants"
	"github.com/taibuivan/katha/pkg/slice"
)

// # Activity Feed

// ActivityKind tags the source of an [ActivityItem].
type ActivityKind string

const (
	KindChapterCreated  ActivityKind = "chapter_created"
	KindCommentReceived ActivityKind = "comment_received"
	KindRatingReceived  ActivityKind = "rating_received"
)

// ActivityItem is one line of a creator's activity feed.
type ActivityItem struct {
	Kind      ActivityKind `json:"type"`
	Title     string       `json:"title"`
	Subtitle  string       `json:"subtitle"`
	Timestamp time.Time    `json:"time"`
	Link      string       `json:"link"`
}

// ChapterEvent is a chapter added to one of the creator's comics.
type ChapterEvent struct {
	ChapterID    string
	ChapterTitle string
	ComicID      string
	ComicTitle   string
	CreatedAt    time.Time
}

// CommentEvent is a reader comment on one of the creator's chapters.
type CommentEvent struct {
	ChapterID    string
	ChapterTitle string
	ComicID      string
	Username     string
	CreatedAt    time.Time
}

// RatingEvent is a reader rating on one of the creator's comics.
type RatingEvent struct {
	ComicID    string
	ComicTitle string
	Score      int
	CreatedAt  time.Time
}

func chapterLink(comicID, chapterID string) string {
	return fmt.Sprintf("/api/v1/comics/%s/chapters/%s", comicID, chapterID)
}

func comicLink(comicID string) string {
	return "/api/v1/comics/" + comicID
}

/*
MergeActivity builds the activity feed from the three event sources.

Each source contributes at most [constants.ActivityPerKind] events (callers
normally pre-limit in SQL). The items are concatenated, sorted newest first
with a stable sort so equal timestamps keep source order, and cut to limit.
Because each source is capped before the merge, a burst of one kind can hide
older items of another kind that would otherwise have made the cut.
*/
func MergeActivity(chapters []ChapterEvent, comments []CommentEvent, ratings []RatingEvent, limit int) []ActivityItem {
	items := make([]ActivityItem, 0, 3*constants.ActivityPerKind)

	items = append(items, slice.Map(slice.Take(chapters, constants.ActivityPerKind), func(event ChapterEvent) ActivityItem {
		return ActivityItem{
			Kind:      KindChapterCreated,
			Title:     "New chapter: " + event.ChapterTitle,
			Subtitle:  "Added to " + event.ComicTitle,
			Timestamp: event.CreatedAt,
			Link:      chapterLink(event.ComicID, event.ChapterID),
		}
	})...)

	items = append(items, slice.Map(slice.Take(comments, constants.ActivityPerKind), func(event CommentEvent) ActivityItem {
		return ActivityItem{
			Kind:      KindCommentReceived,
			Title:     "New comment on " + event.ChapterTitle,
			Subtitle:  "by " + event.Username,
			Timestamp: event.CreatedAt,
			Link:      chapterLink(event.ComicID, event.ChapterID),
		}
	})...)

	items = append(items, slice.Map(slice.Take(ratings, constants.ActivityPerKind), func(event RatingEvent) ActivityItem {
		return ActivityItem{
			Kind:      KindRatingReceived,
			Title:     fmt.Sprintf("New %d★ rating", event.Score),
			Subtitle:  "on " + event.ComicTitle,
			Timestamp: event.CreatedAt,
			Link:      comicLink(event.ComicID),
		}
	})...)

	slices.SortStableFunc(items, func(a, b ActivityItem) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	return slice.Take(items, limit)
}

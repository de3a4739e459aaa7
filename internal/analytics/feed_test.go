// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/katha/internal/analytics"
)

var base = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

func TestMergeActivity_OrdersAndTruncates(t *testing.T) {
	chapters := []analytics.ChapterEvent{
		{ChapterID: "ch1", ChapterTitle: "Dawn", ComicID: "c1", ComicTitle: "Sky", CreatedAt: at(10)},
	}
	comments := []analytics.CommentEvent{
		{ChapterID: "ch1", ChapterTitle: "Dawn", ComicID: "c1", Username: "mira", CreatedAt: at(30)},
		{ChapterID: "ch1", ChapterTitle: "Dawn", ComicID: "c1", Username: "ravi", CreatedAt: at(5)},
	}
	ratings := []analytics.RatingEvent{
		{ComicID: "c1", ComicTitle: "Sky", Score: 5, CreatedAt: at(20)},
	}

	items := analytics.MergeActivity(chapters, comments, ratings, 3)

	require.Len(t, items, 3)
	assert.Equal(t, analytics.KindCommentReceived, items[0].Kind)
	assert.Equal(t, "New comment on Dawn", items[0].Title)
	assert.Equal(t, "by mira", items[0].Subtitle)
	assert.Equal(t, "/api/v1/comics/c1/chapters/ch1", items[0].Link)

	assert.Equal(t, analytics.KindRatingReceived, items[1].Kind)
	assert.Equal(t, "New 5★ rating", items[1].Title)
	assert.Equal(t, "on Sky", items[1].Subtitle)
	assert.Equal(t, "/api/v1/comics/c1", items[1].Link)

	assert.Equal(t, analytics.KindChapterCreated, items[2].Kind)
	assert.Equal(t, "New chapter: Dawn", items[2].Title)
	assert.Equal(t, "Added to Sky", items[2].Subtitle)

	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].Timestamp.After(items[i-1].Timestamp))
	}
}

func TestMergeActivity_TiesKeepSourceOrder(t *testing.T) {
	items := analytics.MergeActivity(
		[]analytics.ChapterEvent{{ChapterTitle: "One", CreatedAt: at(0)}},
		[]analytics.CommentEvent{{ChapterTitle: "One", CreatedAt: at(0)}},
		[]analytics.RatingEvent{{Score: 1, CreatedAt: at(0)}},
		10,
	)

	require.Len(t, items, 3)
	assert.Equal(t, analytics.KindChapterCreated, items[0].Kind)
	assert.Equal(t, analytics.KindCommentReceived, items[1].Kind)
	assert.Equal(t, analytics.KindRatingReceived, items[2].Kind)
}

func TestMergeActivity_CapsEachKindBeforeMerging(t *testing.T) {
	var chapters []analytics.ChapterEvent
	for i := 0; i < 8; i++ {
		chapters = append(chapters, analytics.ChapterEvent{ChapterTitle: "c", CreatedAt: at(100 - i)})
	}

	items := analytics.MergeActivity(chapters, nil, nil, 10)
	assert.Len(t, items, 5)
}

func TestMergeActivity_Empty(t *testing.T) {
	assert.Empty(t, analytics.MergeActivity(nil, nil, nil, 8))
}

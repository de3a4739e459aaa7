// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/katha/internal/core/chapter"
	"github.com/taibuivan/katha/internal/platform/apperr"
	"github.com/taibuivan/katha/internal/platform/pgtest"
	"github.com/taibuivan/katha/pkg/uuid"
)

func TestRepository(t *testing.T) {
	pool := pgtest.Start(t)
	repo := chapter.NewRepository(pool)
	ctx := context.Background()

	writer := pgtest.User(t, pool, "mira", true)
	fan := pgtest.User(t, pool, "rav", false)
	comicID := pgtest.Comic(t, pool, writer, pgtest.ComicFixture{Title: "Skyward", Published: true})

	now := time.Now().UTC().Truncate(time.Second)
	first := &chapter.Chapter{ID: uuid.New(), ComicID: comicID, Title: "Dawn", Number: 1, IsPublished: true, PublishedAt: &now}
	require.NoError(t, repo.Create(ctx, first))

	t.Run("duplicate_number", func(t *testing.T) {
		err := repo.Create(ctx, &chapter.Chapter{ID: uuid.New(), ComicID: comicID, Title: "Again", Number: 1})
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperr.CodeValidation, appErr.Code)
		require.NotEmpty(t, appErr.Details)
		assert.Equal(t, chapter.FieldNumber, appErr.Details[0].Field)
	})

	t.Run("list_orders_by_number", func(t *testing.T) {
		later := time.Now().UTC().Add(48 * time.Hour)
		draft := &chapter.Chapter{ID: uuid.New(), ComicID: comicID, Title: "Interlude", Number: 0.5, ScheduledPublish: &later}
		require.NoError(t, repo.Create(ctx, draft))

		all, err := repo.ListByComic(ctx, comicID, false)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, draft.ID, all[0].ID)

		published, err := repo.ListByComic(ctx, comicID, true)
		require.NoError(t, err)
		require.Len(t, published, 1)
		assert.Equal(t, first.ID, published[0].ID)

		upcoming, err := repo.Upcoming(ctx, writer, time.Now().UTC())
		require.NoError(t, err)
		require.Len(t, upcoming, 1)
		assert.Equal(t, "Skyward", upcoming[0].ComicTitle)

		recent, err := repo.RecentlyPublished(ctx, writer, 5)
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, first.ID, recent[0].ChapterID)

		_, err = repo.Delete(ctx, draft.ID)
		require.NoError(t, err)
	})

	t.Run("update", func(t *testing.T) {
		found, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		found.Title = "Daybreak"
		require.NoError(t, repo.Update(ctx, found))

		found, err = repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Daybreak", found.Title)

		err = repo.Update(ctx, &chapter.Chapter{ID: uuid.New(), Title: "Ghost"})
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("pages_are_numbered_in_order", func(t *testing.T) {
		added, err := repo.AddPages(ctx, first.ID, []string{"uploads/a.png", "uploads/b.png"})
		require.NoError(t, err)
		require.Len(t, added, 2)

		added, err = repo.AddPages(ctx, first.ID, []string{"uploads/c.png"})
		require.NoError(t, err)
		assert.Equal(t, 3, added[0].Number)

		pages, err := repo.ListPages(ctx, first.ID)
		require.NoError(t, err)
		require.Len(t, pages, 3)
		assert.Equal(t, "uploads/a.png", pages[0].ImagePath)
		assert.Equal(t, 2, pages[1].Number)

		page, err := repo.FindPage(ctx, pages[0].ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, page.ChapterID)

		require.NoError(t, repo.DeletePage(ctx, pages[0].ID))
		_, err = repo.FindPage(ctx, pages[0].ID)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("anonymous_view_counts_chapter_and_comic", func(t *testing.T) {
		require.NoError(t, repo.RecordView(ctx, chapter.View{ComicID: comicID, ChapterID: &first.ID, IPAddress: "203.0.113.9", UserAgent: "test"}))
		require.NoError(t, repo.RecordView(ctx, chapter.View{ComicID: comicID, ChapterID: &first.ID, UserID: &fan}))

		found, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, found.TotalViews)
		assert.Equal(t, 2, pgtest.Count(t, pool, `SELECT totalviews FROM core.comic WHERE id = $1`, comicID))
		assert.Equal(t, 1, pgtest.Count(t, pool, `SELECT COUNT(*) FROM library.viewlog WHERE userid IS NULL`))
	})

	t.Run("rating_replaces_previous_score", func(t *testing.T) {
		result, err := repo.Rate(ctx, fan, first.ID, 5)
		require.NoError(t, err)
		assert.False(t, result.Updated)

		result, err = repo.Rate(ctx, fan, first.ID, 3)
		require.NoError(t, err)
		assert.True(t, result.Updated)
		assert.Equal(t, 1, result.RatingCount)
		assert.InDelta(t, 3.0, result.AverageRating, 0.001)

		score, err := repo.UserRating(ctx, fan, first.ID)
		require.NoError(t, err)
		require.NotNil(t, score)
		assert.Equal(t, 3, *score)

		score, err = repo.UserRating(ctx, writer, first.ID)
		require.NoError(t, err)
		assert.Nil(t, score)
	})

	t.Run("comments", func(t *testing.T) {
		older := &chapter.Comment{ID: uuid.New(), UserID: fan, ChapterID: first.ID, Content: "First!"}
		require.NoError(t, repo.CreateComment(ctx, older))
		assert.Equal(t, "rav", older.Username)

		newer := &chapter.Comment{ID: uuid.New(), UserID: writer, ChapterID: first.ID, Content: "Thanks"}
		require.NoError(t, repo.CreateComment(ctx, newer))

		newer.Content = "Thanks for reading"
		newer.IsEdited = true
		require.NoError(t, repo.UpdateComment(ctx, newer))

		found, err := repo.FindComment(ctx, newer.ID)
		require.NoError(t, err)
		assert.True(t, found.IsEdited)
		assert.Equal(t, "mira", found.Username)

		list, total, err := repo.ListComments(ctx, first.ID, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, list, 1)
		assert.Equal(t, newer.ID, list[0].ID)

		moderated, total, err := repo.ListAllComments(ctx, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Equal(t, "Skyward", moderated[0].ComicTitle)

		require.NoError(t, repo.DeleteComment(ctx, older.ID))
		assert.True(t, apperr.IsNotFound(repo.DeleteComment(ctx, older.ID)))
	})

	t.Run("publish_due", func(t *testing.T) {
		due := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
		scheduled := &chapter.Chapter{ID: uuid.New(), ComicID: comicID, Title: "Dusk", Number: 2, ScheduledPublish: &due}
		require.NoError(t, repo.Create(ctx, scheduled))

		ids, err := repo.PublishDue(ctx, time.Now().UTC())
		require.NoError(t, err)
		assert.Equal(t, []string{scheduled.ID}, ids)

		found, err := repo.FindByID(ctx, scheduled.ID)
		require.NoError(t, err)
		assert.True(t, found.IsPublished)
		require.NotNil(t, found.PublishedAt)
		assert.True(t, due.Equal(*found.PublishedAt))

		ids, err = repo.PublishDue(ctx, time.Now().UTC())
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("delete_cascades", func(t *testing.T) {
		paths, err := repo.Delete(ctx, first.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"uploads/b.png", "uploads/c.png"}, paths)

		_, err = repo.FindByID(ctx, first.ID)
		assert.True(t, apperr.IsNotFound(err))
		assert.Zero(t, pgtest.Count(t, pool, `SELECT COUNT(*) FROM core.page WHERE chapterid = $1`, first.ID))
		assert.Zero(t, pgtest.Count(t, pool, `SELECT COUNT(*) FROM social.comment WHERE chapterid = $1`, first.ID))
		assert.Zero(t, pgtest.Count(t, pool, `SELECT COUNT(*) FROM social.chapterrating WHERE chapterid = $1`, first.ID))
		assert.Equal(t, 2, pgtest.Count(t, pool, `SELECT COUNT(*) FROM library.viewlog WHERE chapterid = $1`, first.ID))
	})
}

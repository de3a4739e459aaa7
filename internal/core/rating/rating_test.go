// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rating_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/katha/internal/core/rating"
	"github.com/taibuivan/katha/internal/platform/apperr"
	"github.com/taibuivan/katha/internal/platform/pgtest"
	"github.com/taibuivan/katha/internal/platform/postgres"
	"github.com/taibuivan/katha/pkg/uuid"
)

func TestUpsert(t *testing.T) {
	pool := pgtest.Start(t)
	ctx := context.Background()

	author := pgtest.User(t, pool, "mira", true)
	reader := pgtest.User(t, pool, "rav", false)
	other := pgtest.User(t, pool, "ona", false)
	comic := pgtest.Comic(t, pool, author, pgtest.ComicFixture{Published: true})

	upsert := func(userID, targetID string, score int) (rating.Result, error) {
		var result rating.Result
		err := postgres.InTx(ctx, pool, func(transaction pgx.Tx) error {
			var err error
			result, err = rating.Upsert(ctx, transaction, rating.Comic, userID, targetID, score)
			return err
		})
		return result, err
	}

	t.Run("first_rating_counts", func(t *testing.T) {
		result, err := upsert(reader, comic, 4)
		require.NoError(t, err)
		assert.False(t, result.Updated)
		assert.Equal(t, 4.0, result.TotalRating)
		assert.Equal(t, 1, result.RatingCount)
	})

	t.Run("rerating_shifts_total", func(t *testing.T) {
		result, err := upsert(reader, comic, 2)
		require.NoError(t, err)
		assert.True(t, result.Updated)
		assert.Equal(t, 2.0, result.TotalRating)
		assert.Equal(t, 1, result.RatingCount)
	})

	t.Run("second_user", func(t *testing.T) {
		result, err := upsert(other, comic, 5)
		require.NoError(t, err)
		assert.Equal(t, 7.0, result.TotalRating)
		assert.Equal(t, 2, result.RatingCount)
		assert.Equal(t, 3.5, result.AverageRating)

		assert.Equal(t, 2, pgtest.Count(t, pool, `SELECT COUNT(*) FROM social.comicrating WHERE comicid = $1`, comic))
	})

	t.Run("user_score", func(t *testing.T) {
		score, err := rating.UserScore(ctx, pool, rating.Comic, reader, comic)
		require.NoError(t, err)
		require.NotNil(t, score)
		assert.Equal(t, 2, *score)

		score, err = rating.UserScore(ctx, pool, rating.Comic, author, comic)
		require.NoError(t, err)
		assert.Nil(t, score)
	})

	t.Run("missing_target", func(t *testing.T) {
		_, err := upsert(reader, uuid.New(), 3)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("chapter_target", func(t *testing.T) {
		chapter := pgtest.Chapter(t, pool, comic, "One", 1)

		var result rating.Result
		err := postgres.InTx(ctx, pool, func(transaction pgx.Tx) error {
			var err error
			result, err = rating.Upsert(ctx, transaction, rating.Chapter, reader, chapter, 5)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.RatingCount)
		assert.Equal(t, 5.0, result.AverageRating)
	})
}

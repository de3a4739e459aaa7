// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package rating upserts a user's 1-5 score on a comic or chapter and keeps the
target's running total and count in step.

The target row is locked first, so concurrent raters of the same target are
serialised and the counters can be maintained with plain increments.
*/
package rating

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/katha/internal/analytics"
	"github.com/taibuivan/katha/internal/platform/database/schema"
	"github.com/taibuivan/katha/internal/platform/dberr"
	"github.com/taibuivan/katha/pkg/uuid"
)

const (
	MinScore = 1
	MaxScore = 5
)

// Target names a rated table and the rating table that points at it.
type Target struct {
	Resource string
	Table    string
	Ratings  schema.RatingTable
}

var (
	Comic   = Target{Resource: "Comic", Table: schema.CoreComic.Table, Ratings: schema.SocialComicRating}
	Chapter = Target{Resource: "Chapter", Table: schema.CoreChapter.Table, Ratings: schema.SocialChapterRating}
)

// Result is the state of the target after a rating was applied.
type Result struct {
	Score         int     `json:"score"`
	Updated       bool    `json:"updated"`
	TotalRating   float64 `json:"total_rating"`
	RatingCount   int     `json:"rating_count"`
	AverageRating float64 `json:"average_rating"`
}

/*
Upsert records score by userID on targetID inside transaction.

Description: A first rating adds the score and bumps the count. A repeated
rating replaces the stored score and adds only the difference.

Returns:
  - Result: Counters after the change
  - error: NOT_FOUND if the target row is missing
*/
func Upsert(ctx context.Context, transaction pgx.Tx, target Target, userID, targetID string, score int) (Result, error) {
	var locked int
	err := transaction.QueryRow(ctx, fmt.Sprintf(`SELECT 1 FROM %s WHERE id = $1 FOR UPDATE`, target.Table), targetID).Scan(&locked)
	if err != nil {
		return Result{}, dberr.Wrap(err, target.Resource, "lock rating target")
	}

	ratings := target.Ratings
	var previous *int
	var stored int
	err = transaction.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 FOR UPDATE`,
			ratings.Score, ratings.Table, ratings.UserID, ratings.TargetID),
		userID, targetID).Scan(&stored)
	switch {
	case err == nil:
		previous = &stored
	case errors.Is(err, pgx.ErrNoRows):
	default:
		return Result{}, fmt.Errorf("postgres: failed to read previous rating: %w", err)
	}

	now := time.Now().UTC()
	if previous == nil {
		_, err = transaction.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $5)`,
				ratings.Table, ratings.ID, ratings.UserID, ratings.TargetID, ratings.Score, ratings.CreatedAt, ratings.UpdatedAt),
			uuid.New(), userID, targetID, score, now)
	} else {
		_, err = transaction.Exec(ctx,
			fmt.Sprintf(`UPDATE %s SET %s = $3, %s = $4 WHERE %s = $1 AND %s = $2`,
				ratings.Table, ratings.Score, ratings.UpdatedAt, ratings.UserID, ratings.TargetID),
			userID, targetID, score, now)
	}
	if err != nil {
		return Result{}, dberr.Wrap(err, "Rating", "save rating")
	}

	totalDelta, countDelta := analytics.RatingDelta(previous, score)

	result := Result{Score: score, Updated: previous != nil}
	err = transaction.QueryRow(ctx,
		fmt.Sprintf(`UPDATE %s SET totalrating = totalrating + $2, ratingcount = ratingcount + $3 WHERE id = $1 RETURNING totalrating, ratingcount`,
			target.Table),
		targetID, totalDelta, countDelta).Scan(&result.TotalRating, &result.RatingCount)
	if err != nil {
		return Result{}, fmt.Errorf("postgres: failed to update rating counters: %w", err)
	}

	result.AverageRating = analytics.AverageRating(result.TotalRating, result.RatingCount)
	return result, nil
}

// UserScore returns userID's score on targetID, or nil when they have not rated it.
func UserScore(ctx context.Context, querier Querier, target Target, userID, targetID string) (*int, error) {
	ratings := target.Ratings
	var score int
	err := querier.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`, ratings.Score, ratings.Table, ratings.UserID, ratings.TargetID),
		userID, targetID).Scan(&score)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to read rating: %w", err)
	}
	return &score, nil
}

// Querier is the subset of pgxpool.Pool and pgx.Tx that [UserScore] needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

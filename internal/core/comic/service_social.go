// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"context"
	"log/slog"

	"github.com/taibuivan/katha/internal/core/rating"
	"github.com/taibuivan/katha/internal/platform/ctxutil"
	"github.com/taibuivan/katha/internal/platform/sec"
	"github.com/taibuivan/katha/internal/platform/validate"
)

// # Ratings

/*
Rate records the viewer's 1-5 score on a comic they can see.

Description: Rating again replaces the earlier score. The comic's total moves
by the difference and its count stays the same.

Returns:
  - rating.Result: Updated counters and average
  - error: VALIDATION_ERROR for an out-of-range score, NOT_FOUND for a hidden comic
*/
func (service *Service) Rate(context context.Context, viewer sec.Principal, comicID string, score int) (rating.Result, error) {
	validator := &validate.Validator{}
	if err := validator.Range(FieldRating, score, rating.MinScore, rating.MaxScore).Err(); err != nil {
		return rating.Result{}, err
	}

	if _, err := service.visible(context, viewer, comicID); err != nil {
		return rating.Result{}, err
	}

	result, err := service.repository.Rate(context, viewer.UserID, comicID, score)
	if err != nil {
		return rating.Result{}, err
	}

	ctxutil.GetLogger(context).Info("comic_rated",
		slog.String("comic_id", comicID),
		slog.Int("score", score),
		slog.Bool("updated", result.Updated),
	)
	return result, nil
}

// # Follows

// Follow subscribes the viewer to a comic. Following twice is a no-op.
func (service *Service) Follow(context context.Context, viewer sec.Principal, comicID string) error {
	if _, err := service.visible(context, viewer, comicID); err != nil {
		return err
	}

	created, err := service.repository.Follow(context, viewer.UserID, comicID)
	if err != nil {
		return err
	}

	if created {
		ctxutil.GetLogger(context).Info("comic_followed", slog.String("comic_id", comicID))
	}
	return nil
}

// Unfollow removes the viewer's follow. Missing follows are ignored.
func (service *Service) Unfollow(context context.Context, viewer sec.Principal, comicID string) error {
	return service.repository.Unfollow(context, viewer.UserID, comicID)
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"context"

	"github.com/taibuivan/katha/internal/core/rating"
)

// # Comic Data Access

// Repository defines the data access contract for the comic domain.
type Repository interface {

	/*
		Create persists a new comic.

		Returns:
		  - error: VALIDATION_ERROR when a referenced row is missing
	*/
	Create(context context.Context, comic *Comic) error

	// FindByID returns the comic with its author's username, or NOT_FOUND.
	FindByID(context context.Context, id string) (*Comic, error)

	// Update writes every editable column of comic and refreshes UpdatedAt.
	Update(context context.Context, comic *Comic) error

	/*
		Delete removes the comic and everything under it in one transaction.

		Returns:
		  - []string: Stored file paths of the removed cover and pages
		  - error: Storage failures
	*/
	Delete(context context.Context, id string) ([]string, error)

	/*
		List returns one page of comics matching query.

		Returns:
		  - []*Comic: Page of comics
		  - int: Total matching comics
		  - error: Storage failures
	*/
	List(context context.Context, query Query) ([]*Comic, int, error)

	// SeriesAuthor returns the author of a series, or NOT_FOUND.
	SeriesAuthor(context context.Context, seriesID string) (string, error)

	// Rate upserts userID's score and returns the comic's new counters.
	Rate(context context.Context, userID, comicID string, score int) (rating.Result, error)

	// UserRating returns userID's score on comicID, or nil.
	UserRating(context context.Context, userID, comicID string) (*int, error)

	// Follow records the follow and reports whether it is new.
	Follow(context context.Context, userID, comicID string) (bool, error)

	// Unfollow removes the follow if present.
	Unfollow(context context.Context, userID, comicID string) error

	// FollowerCount counts the readers following comicID.
	FollowerCount(context context.Context, comicID string) (int, error)

	// IsFollowing reports whether userID follows comicID.
	IsFollowing(context context.Context, userID, comicID string) (bool, error)
}

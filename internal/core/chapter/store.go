// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"time"

	"github.com/taibuivan/katha/internal/core/rating"
)

// # Chapter & Page Data Access

// Repository defines the data access contract for chapters, pages, views and comments.
type Repository interface {

	/*
		Create persists a new chapter.

		Returns:
		  - error: VALIDATION_ERROR when the comic already has a chapter with that number
	*/
	Create(context context.Context, chapter *Chapter) error

	// FindByID returns the chapter, or NOT_FOUND.
	FindByID(context context.Context, id string) (*Chapter, error)

	// ListByComic returns a comic's chapters ordered by chapter number.
	ListByComic(context context.Context, comicID string, publishedOnly bool) ([]*Chapter, error)

	// Update writes the title, publish flag and publish timestamps.
	Update(context context.Context, chapter *Chapter) error

	/*
		Delete removes the chapter with its pages, comments and ratings in one
		transaction.

		Returns:
		  - []string: Stored image paths of the removed pages
	*/
	Delete(context context.Context, id string) ([]string, error)

	// # Pages

	// ListPages returns the chapter's pages ordered by page number.
	ListPages(context context.Context, chapterID string) ([]*Page, error)

	/*
		AddPages appends one page per path, numbered after the pages already there.

		Description: The chapter row is locked while numbering so concurrent
		uploads to the same chapter do not reuse numbers.
	*/
	AddPages(context context.Context, chapterID string, paths []string) ([]*Page, error)

	// FindPage returns the page, or NOT_FOUND.
	FindPage(context context.Context, id string) (*Page, error)

	// DeletePage removes the page row.
	DeletePage(context context.Context, id string) error

	// # Engagement

	// RecordView appends a view log row and bumps the chapter and comic view counters.
	RecordView(context context.Context, view View) error

	// Rate upserts userID's score and returns the chapter's new counters.
	Rate(context context.Context, userID, chapterID string, score int) (rating.Result, error)

	// UserRating returns userID's score on chapterID, or nil.
	UserRating(context context.Context, userID, chapterID string) (*int, error)

	// # Comments

	// CreateComment persists a comment and fills in the author's username.
	CreateComment(context context.Context, comment *Comment) error

	// FindComment returns the comment with its author's username, or NOT_FOUND.
	FindComment(context context.Context, id string) (*Comment, error)

	// UpdateComment writes the content and edited flag.
	UpdateComment(context context.Context, comment *Comment) error

	// DeleteComment removes the comment.
	DeleteComment(context context.Context, id string) error

	// ListComments pages a chapter's comments, newest first.
	ListComments(context context.Context, chapterID string, limit, offset int) ([]*Comment, int, error)

	// ListAllComments pages every comment on the platform, newest first.
	ListAllComments(context context.Context, limit, offset int) ([]*ModeratedComment, int, error)

	// # Scheduling

	// Upcoming returns authorID's chapters scheduled after now, soonest first.
	Upcoming(context context.Context, authorID string, now time.Time) ([]ScheduleEntry, error)

	// RecentlyPublished returns authorID's latest published chapters, newest first.
	RecentlyPublished(context context.Context, authorID string, limit int) ([]ScheduleEntry, error)

	// PublishDue publishes every unpublished chapter scheduled at or before now
	// and returns their ids.
	PublishDue(context context.Context, now time.Time) ([]string, error)
}

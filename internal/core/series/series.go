// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package series groups an author's comics under a shared name, genre and
release schedule.

A series never owns chapters directly. Deleting one removes every comic in it
together with their chapters, pages, ratings and follows.
*/
package series

import (
	"context"
	"time"
)

// # Domain Enums

// Status is the publication status of a series.
type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusHiatus    Status = "hiatus"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every accepted [Status] as strings, for validation.
var Statuses = []string{string(StatusOngoing), string(StatusCompleted), string(StatusHiatus), string(StatusCancelled)}

// Schedules lists the accepted release cadences. The empty string means unset.
var Schedules = []string{"weekly", "biweekly", "monthly", "irregular"}

// DefaultContentType is suggested for a series that has no comics yet.
const DefaultContentType = "comic"

// # Core Entities

// Series is a named collection of comics by one author.
type Series struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"author_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CoverPath   string    `json:"cover_path"`
	Genre       string    `json:"genre"`
	Status      Status    `json:"status"`
	Schedule    string    `json:"schedule"`
	ComicCount  int       `json:"comic_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ComicCard is the short form of a comic listed inside a series.
type ComicCard struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CoverPath   string    `json:"cover_path"`
	ContentType string    `json:"content_type"`
	IsPublished bool      `json:"is_published"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Detail is a series together with the comics the viewer may see.
type Detail struct {
	*Series
	Comics []ComicCard `json:"comics"`
}

// Defaults pre-fills the form for a new comic added to a series.
type Defaults struct {
	Genre       string `json:"genre"`
	Status      Status `json:"status"`
	Schedule    string `json:"schedule"`
	ContentType string `json:"content_type"`
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldGenre       = "genre"
	FieldStatus      = "status"
	FieldSchedule    = "schedule"
	FieldCover       = "cover"
)

const (
	NameMaxLength  = 100
	GenreMaxLength = 50
)

// # Repository Contract

// Repository persists series rows and reads the comics filed under them.
type Repository interface {
	Create(context context.Context, series *Series) error

	// FindByID returns the series with its comic count, or NOT_FOUND.
	FindByID(context context.Context, id string) (*Series, error)

	// ListByAuthor returns the author's series, most recently updated first.
	ListByAuthor(context context.Context, authorID string) ([]*Series, error)

	Update(context context.Context, series *Series) error

	/*
		Delete removes the series and every comic in it in one transaction.

		Returns:
		  - []string: Stored file paths that belonged to the removed rows
		  - error: NOT_FOUND or storage failures
	*/
	Delete(context context.Context, id string) ([]string, error)

	// ComicContentTypes returns the content type of every comic in the series, oldest first.
	ComicContentTypes(context context.Context, seriesID string) ([]string, error)

	// ListComics returns the series' comics, oldest first. publishedOnly hides drafts.
	ListComics(context context.Context, seriesID string, publishedOnly bool) ([]ComicCard, error)
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comic manages comics: their metadata, publication state, covers,
ratings and reader follows.

Visibility:

  - Published comics are visible to everyone.
  - Unpublished comics are visible only to their author and to admins. For
    everyone else they do not exist (NOT_FOUND).

Ratings keep a running total and count on the comic row. The average shown to
readers is derived from those two columns.
*/
package comic

import (
	"time"

	"github.com/taibuivan/katha/internal/analytics"
)

// # Domain Enums

// Status is the publication status of a comic.
type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusHiatus    Status = "hiatus"
)

// Statuses lists every accepted [Status] as strings, for validation.
var Statuses = []string{string(StatusOngoing), string(StatusCompleted), string(StatusHiatus)}

// AdminFilter narrows the admin comic list.
type AdminFilter string

const (
	AdminAll         AdminFilter = ""
	AdminPublished   AdminFilter = "published"
	AdminUnpublished AdminFilter = "unpublished"
	AdminEditorPicks AdminFilter = "editor_picks"
)

// # Core Entities

// Comic is a single publication owned by one author.
type Comic struct {
	ID            string    `json:"id"`
	AuthorID      string    `json:"author_id"`
	AuthorName    string    `json:"author_name"`
	SeriesID      *string   `json:"series_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	CoverPath     string    `json:"cover_path"`
	Genre         string    `json:"genre"`
	Status        Status    `json:"status"`
	Schedule      string    `json:"schedule"`
	ContentType   string    `json:"content_type"`
	Tags          []string  `json:"tags"`
	IsPublished   bool      `json:"is_published"`
	IsEditorPick  bool      `json:"is_editor_pick"`
	TotalViews    int64     `json:"total_views"`
	TotalRating   float64   `json:"total_rating"`
	RatingCount   int       `json:"rating_count"`
	AverageRating float64   `json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// refreshAverage recomputes the derived average from the counters.
func (comic *Comic) refreshAverage() {
	comic.AverageRating = analytics.AverageRating(comic.TotalRating, comic.RatingCount)
}

// Detail is a comic as seen by one viewer.
type Detail struct {
	*Comic
	FollowerCount int  `json:"follower_count"`
	IsFollowing   bool `json:"is_following"`
	MyRating      *int `json:"my_rating"`
}

// # Query

// Query selects comics for the list endpoints. Zero fields do not filter.
type Query struct {
	AuthorID      string
	PublishedOnly bool
	Unpublished   bool
	EditorPick    bool
	Title         string
	Genre         string
	CreatedAfter  *time.Time

	// ByUpdated orders by last update instead of creation, newest first either way.
	ByUpdated bool

	Limit  int
	Offset int
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldGenre       = "genre"
	FieldStatus      = "status"
	FieldSchedule    = "schedule"
	FieldContentType = "content_type"
	FieldTags        = "tags"
	FieldSeriesID    = "series_id"
	FieldCover       = "cover"
	FieldRating      = "rating"
	FieldFilter      = "filter"
)

const (
	TitleMaxLength = 100
	GenreMaxLength = 50
	MaxTags        = 20
	TagMaxLength   = 30
)

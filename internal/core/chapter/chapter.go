// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chapter manages the chapters of a comic with their pages, reader
comments, ratings and view logging.

A chapter is readable when its comic is readable and the chapter is published.
The comic's author and admins also see unpublished and scheduled chapters.
Chapters scheduled for later stay unpublished until [Service.PublishDue] runs
after their publish time.
*/
package chapter

import (
	"time"

	"github.com/taibuivan/katha/internal/analytics"
)

// # Core Entities

// Chapter is one installment of a comic.
type Chapter struct {
	ID               string     `json:"id"`
	ComicID          string     `json:"comic_id"`
	Title            string     `json:"title"`
	Number           float64    `json:"chapter_number"`
	IsPublished      bool       `json:"is_published"`
	ScheduledPublish *time.Time `json:"scheduled_publish"`
	PublishedAt      *time.Time `json:"published_at"`
	TotalViews       int64      `json:"total_views"`
	TotalRating      float64    `json:"total_rating"`
	RatingCount      int        `json:"rating_count"`
	AverageRating    float64    `json:"average_rating"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (chapter *Chapter) refreshAverage() {
	chapter.AverageRating = analytics.AverageRating(chapter.TotalRating, chapter.RatingCount)
}

// Page is one image of a chapter. Numbers start at 1.
type Page struct {
	ID        string    `json:"id"`
	ChapterID string    `json:"chapter_id"`
	Number    int       `json:"page_number"`
	ImagePath string    `json:"image_path"`
	CreatedAt time.Time `json:"created_at"`
}

// Detail is a chapter with its pages as seen by one viewer.
type Detail struct {
	*Chapter
	Pages    []*Page `json:"pages"`
	MyRating *int    `json:"my_rating"`
}

// Comment is a reader's note on a chapter.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	ChapterID string    `json:"chapter_id"`
	Content   string    `json:"content"`
	IsEdited  bool      `json:"is_edited"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ModeratedComment is a comment with the content it was left on, for the
// admin listing.
type ModeratedComment struct {
	Comment
	ChapterTitle string `json:"chapter_title"`
	ComicID      string `json:"comic_id"`
	ComicTitle   string `json:"comic_title"`
}

// View is one read of a chapter. A nil UserID marks an anonymous reader.
type View struct {
	ComicID   string
	ChapterID *string
	UserID    *string
	IPAddress string
	UserAgent string
}

// ScheduleEntry is a chapter on a creator's publishing calendar.
type ScheduleEntry struct {
	ChapterID        string     `json:"chapter_id"`
	ChapterTitle     string     `json:"chapter_title"`
	Number           float64    `json:"chapter_number"`
	ComicID          string     `json:"comic_id"`
	ComicTitle       string     `json:"comic_title"`
	ScheduledPublish *time.Time `json:"scheduled_publish"`
	PublishedAt      *time.Time `json:"published_at"`
}

// Schedule groups a creator's upcoming and recently released chapters.
type Schedule struct {
	Upcoming []ScheduleEntry `json:"upcoming"`
	Recent   []ScheduleEntry `json:"recent"`
}

// # Field Identifiers

const (
	FieldTitle            = "title"
	FieldNumber           = "chapter_number"
	FieldScheduledPublish = "scheduled_publish"
	FieldPages            = "pages"
	FieldRating           = "rating"
	FieldContent          = "content"
)

const (
	TitleMaxLength   = 100
	CommentMaxLength = 2000
)

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/katha/internal/core/comic"
	"github.com/taibuivan/katha/internal/platform/apperr"
	"github.com/taibuivan/katha/internal/platform/ctxutil"
	"github.com/taibuivan/katha/internal/platform/sec"
	"github.com/taibuivan/katha/internal/platform/storage"
	"github.com/taibuivan/katha/internal/platform/validate"
	"github.com/taibuivan/katha/pkg/uuid"
)

// # Service Layer

// Comics resolves the parent comic of a chapter. [comic.Service] satisfies it.
type Comics interface {
	Visible(context context.Context, viewer sec.Principal, id string) (*comic.Comic, error)
	Owned(context context.Context, actorID, id string) (*comic.Comic, error)
}

// Service orchestrates chapters, pages, views, ratings and comments.
type Service struct {
	repository Repository
	comics     Comics
	files      storage.FileStore
	now        func() time.Time
}

// NewService constructs a new chapter [Service].
func NewService(repository Repository, comics Comics, files storage.FileStore) *Service {
	return &Service{repository: repository, comics: comics, files: files, now: time.Now}
}

// CreateInput carries the raw form of a new chapter. Number and
// ScheduledPublish are parsed here so every problem is reported together.
type CreateInput struct {
	Title            string
	Number           string
	ScheduledPublish string
}

// UpdateInput carries editable chapter attributes. Nil fields are left unchanged.
type UpdateInput struct {
	Title       *string
	IsPublished *bool
}

// # Access Helpers

// readable returns the chapter when it belongs to comicID and viewer may read it.
func (service *Service) readable(context context.Context, viewer sec.Principal, comicID, chapterID string) (*comic.Comic, *Chapter, error) {
	parent, err := service.comics.Visible(context, viewer, comicID)
	if err != nil {
		return nil, nil, err
	}

	chapter, err := service.repository.FindByID(context, chapterID)
	if err != nil {
		return nil, nil, err
	}

	if chapter.ComicID != parent.ID {
		return nil, nil, apperr.NotFound("Chapter")
	}
	if !chapter.IsPublished && parent.AuthorID != viewer.UserID && !viewer.IsAdmin() {
		return nil, nil, apperr.NotFound("Chapter")
	}
	return parent, chapter, nil
}

// owned returns the chapter when actorID wrote its comic.
func (service *Service) owned(context context.Context, actorID, comicID, chapterID string) (*Chapter, error) {
	if _, err := service.comics.Owned(context, actorID, comicID); err != nil {
		return nil, err
	}

	chapter, err := service.repository.FindByID(context, chapterID)
	if err != nil {
		return nil, err
	}
	if chapter.ComicID != comicID {
		return nil, apperr.NotFound("Chapter")
	}
	return chapter, nil
}

// # Chapter Lifecycle

/*
Create adds a chapter to a comic owned by actorID.

Description: Without a schedule the chapter is published at once. With one it
stays unpublished until [Service.PublishDue] picks it up.

Returns:
  - *Chapter: Created chapter
  - error: VALIDATION_ERROR for a missing title, a malformed number or date,
    or a number the comic already uses
*/
func (service *Service) Create(context context.Context, actorID, comicID string, input CreateInput) (*Chapter, error) {
	if _, err := service.comics.Owned(context, actorID, comicID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).
		MaxLen(FieldTitle, title, TitleMaxLength).
		Required(FieldNumber, input.Number)

	var number float64
	if strings.TrimSpace(input.Number) != "" {
		number = validator.Float(FieldNumber, input.Number)
	}
	validator.Custom(FieldNumber, number < 0, "Chapter number cannot be negative")
	scheduled := validator.OptionalTime(FieldScheduledPublish, input.ScheduledPublish)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	chapter := &Chapter{
		ID:               uuid.New(),
		ComicID:          comicID,
		Title:            title,
		Number:           number,
		ScheduledPublish: scheduled,
		IsPublished:      scheduled == nil,
	}
	if chapter.IsPublished {
		now := service.now().UTC()
		chapter.PublishedAt = &now
	}

	if err := service.repository.Create(context, chapter); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("chapter_created",
		slog.String("chapter_id", chapter.ID),
		slog.String("comic_id", comicID),
		slog.Float64("number", number),
		slog.Bool("scheduled", scheduled != nil),
	)
	return chapter, nil
}

/*
Get returns a readable chapter with its pages and the viewer's rating.

Returns:
  - error: NOT_FOUND when the comic or chapter is missing or hidden from viewer
*/
func (service *Service) Get(context context.Context, viewer sec.Principal, comicID, chapterID string) (*Detail, error) {
	_, chapter, err := service.readable(context, viewer, comicID, chapterID)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Chapter: chapter}
	if detail.Pages, err = service.repository.ListPages(context, chapterID); err != nil {
		return nil, err
	}

	if viewer.UserID != "" {
		if detail.MyRating, err = service.repository.UserRating(context, viewer.UserID, chapterID); err != nil {
			return nil, err
		}
	}
	return detail, nil
}

// List returns a comic's chapters by chapter number. Only published chapters
// are listed unless viewer is the author or an admin.
func (service *Service) List(context context.Context, viewer sec.Principal, comicID string) ([]*Chapter, error) {
	parent, err := service.comics.Visible(context, viewer, comicID)
	if err != nil {
		return nil, err
	}

	publishedOnly := parent.AuthorID != viewer.UserID && !viewer.IsAdmin()
	return service.repository.ListByComic(context, comicID, publishedOnly)
}

/*
Update edits a chapter of a comic owned by actorID.

Description: The first time a chapter is published its published_at is
stamped. Unpublishing keeps the original timestamp.
*/
func (service *Service) Update(context context.Context, actorID, comicID, chapterID string, input UpdateInput) (*Chapter, error) {
	chapter, err := service.owned(context, actorID, comicID, chapterID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		chapter.Title = strings.TrimSpace(*input.Title)
	}
	validator := &validate.Validator{}
	if err := validator.Required(FieldTitle, chapter.Title).MaxLen(FieldTitle, chapter.Title, TitleMaxLength).Err(); err != nil {
		return nil, err
	}

	if input.IsPublished != nil {
		chapter.IsPublished = *input.IsPublished
		if chapter.IsPublished && chapter.PublishedAt == nil {
			now := service.now().UTC()
			chapter.PublishedAt = &now
		}
	}

	if err := service.repository.Update(context, chapter); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("chapter_updated",
		slog.String("chapter_id", chapterID),
		slog.Bool("published", chapter.IsPublished),
	)
	return chapter, nil
}

// Delete removes a chapter with its pages, comments and ratings, then deletes
// the page files.
func (service *Service) Delete(context context.Context, actorID, comicID, chapterID string) error {
	if _, err := service.owned(context, actorID, comicID, chapterID); err != nil {
		return err
	}

	paths, err := service.repository.Delete(context, chapterID)
	if err != nil {
		return err
	}

	logger := ctxutil.GetLogger(context)
	storage.DeleteAll(context, service.files, logger, paths)

	logger.Info("chapter_deleted",
		slog.String("chapter_id", chapterID),
		slog.String("comic_id", comicID),
		slog.Int("removed_files", len(paths)),
	)
	return nil
}

// # Scheduling

// Schedule returns authorID's upcoming scheduled chapters and their most
// recently published ones.
func (service *Service) Schedule(context context.Context, authorID string, recentLimit int) (*Schedule, error) {
	upcoming, err := service.repository.Upcoming(context, authorID, service.now().UTC())
	if err != nil {
		return nil, err
	}

	recent, err := service.repository.RecentlyPublished(context, authorID, recentLimit)
	if err != nil {
		return nil, err
	}

	return &Schedule{Upcoming: upcoming, Recent: recent}, nil
}

// PublishDue publishes every chapter whose scheduled time has passed and
// returns how many were published.
func (service *Service) PublishDue(context context.Context) (int, error) {
	ids, err := service.repository.PublishDue(context, service.now().UTC())
	if err != nil {
		return 0, err
	}

	if len(ids) > 0 {
		ctxutil.GetLogger(context).Info("scheduled_chapters_published",
			slog.Int("count", len(ids)),
			slog.Any("chapter_ids", ids),
		)
	}
	return len(ids), nil
}

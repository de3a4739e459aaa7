// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/katha/internal/analytics"
	"github.com/taibuivan/katha/internal/core/series"
	"github.com/taibuivan/katha/internal/platform/apperr"
	"github.com/taibuivan/katha/internal/platform/constants"
	"github.com/taibuivan/katha/internal/platform/ctxutil"
	"github.com/taibuivan/katha/internal/platform/sec"
	"github.com/taibuivan/katha/internal/platform/storage"
	"github.com/taibuivan/katha/internal/platform/validate"
	"github.com/taibuivan/katha/pkg/pagination"
	"github.com/taibuivan/katha/pkg/query"
	"github.com/taibuivan/katha/pkg/uuid"
)

// # Service Definition

// Service orchestrates comic management and discovery.
type Service struct {
	repository Repository
	files      storage.FileStore
	now        func() time.Time
}

// NewService constructs a new comic [Service].
func NewService(repository Repository, files storage.FileStore) *Service {
	return &Service{repository: repository, files: files, now: time.Now}
}

// Input carries editable comic attributes. Nil fields are left unchanged on update.
type Input struct {
	Title       *string
	Description *string
	Genre       *string
	Status      *string
	Schedule    *string
	ContentType *string
	Tags        *[]string
	SeriesID    *string
	IsPublished *bool
}

func (input Input) apply(comic *Comic) {
	if input.Title != nil {
		comic.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		comic.Description = *input.Description
	}
	if input.Genre != nil {
		comic.Genre = strings.TrimSpace(*input.Genre)
	}
	if input.Status != nil {
		comic.Status = Status(*input.Status)
	}
	if input.Schedule != nil {
		comic.Schedule = *input.Schedule
	}
	if input.ContentType != nil {
		comic.ContentType = *input.ContentType
	}
	if input.Tags != nil {
		comic.Tags = cleanTags(*input.Tags)
	}
	if input.IsPublished != nil {
		comic.IsPublished = *input.IsPublished
	}
}

// cleanTags trims tags, drops empty ones and removes case-insensitive duplicates.
func cleanTags(tags []string) []string {
	trimmed := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			trimmed = append(trimmed, tag)
		}
	}
	if unique := query.UniqueFold(trimmed); unique != nil {
		return unique
	}
	return []string{}
}

func validateComic(comic *Comic) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, comic.Title).
		MaxLen(FieldTitle, comic.Title, TitleMaxLength).
		MaxLen(FieldGenre, comic.Genre, GenreMaxLength).
		OneOf(FieldStatus, string(comic.Status), Statuses...).
		OptionalOneOf(FieldSchedule, comic.Schedule, series.Schedules...).
		OneOf(FieldContentType, comic.ContentType, analytics.ContentTypes...).
		Custom(FieldTags, len(comic.Tags) > MaxTags, "Too many tags")
	for _, tag := range comic.Tags {
		validator.MaxLen(FieldTags, tag, TagMaxLength)
	}
	return validator.Err()
}

// resolveSeries returns seriesID when it names a series written by authorID,
// and nil otherwise.
func (service *Service) resolveSeries(context context.Context, authorID string, seriesID *string) (*string, error) {
	if seriesID == nil || *seriesID == "" || !uuid.IsValid(*seriesID) {
		return nil, nil
	}

	owner, err := service.repository.SeriesAuthor(context, *seriesID)
	if apperr.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if owner != authorID {
		return nil, nil
	}

	id := strings.ToLower(*seriesID)
	return &id, nil
}

// # Lifecycle

/*
Create stores a new comic owned by authorID.

Description: Defaults are status "ongoing" and content type "comic". A series
that is missing or belongs to someone else is silently dropped.

Returns:
  - *Comic: Created entity
  - error: VALIDATION_ERROR on bad input
*/
func (service *Service) Create(context context.Context, authorID string, input Input) (*Comic, error) {
	comic := &Comic{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Status:      StatusOngoing,
		ContentType: analytics.ContentComic,
		Tags:        []string{},
	}
	input.apply(comic)

	if err := validateComic(comic); err != nil {
		return nil, err
	}

	seriesID, err := service.resolveSeries(context, authorID, input.SeriesID)
	if err != nil {
		return nil, err
	}
	comic.SeriesID = seriesID

	if err := service.repository.Create(context, comic); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("comic_created",
		slog.String("comic_id", comic.ID),
		slog.String("author_id", authorID),
		slog.Bool("published", comic.IsPublished),
	)
	return comic, nil
}

// canSee reports whether viewer may read comic.
func canSee(viewer sec.Principal, comic *Comic) bool {
	return comic.IsPublished || comic.AuthorID == viewer.UserID || viewer.IsAdmin()
}

// visible loads a comic and hides it from viewers who may not read it.
func (service *Service) visible(context context.Context, viewer sec.Principal, id string) (*Comic, error) {
	comic, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if !canSee(viewer, comic) {
		return nil, apperr.NotFound("Comic")
	}
	return comic, nil
}

// Visible returns the comic if viewer may read it. Chapters use it to inherit
// the comic's visibility.
func (service *Service) Visible(context context.Context, viewer sec.Principal, id string) (*Comic, error) {
	return service.visible(context, viewer, id)
}

/*
Get returns a comic with follower count and, for a signed-in viewer, their
follow state and rating.

Returns:
  - *Detail: Comic as seen by viewer
  - error: NOT_FOUND if missing or unpublished and not viewable
*/
func (service *Service) Get(context context.Context, viewer sec.Principal, id string) (*Detail, error) {
	comic, err := service.visible(context, viewer, id)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Comic: comic}
	if detail.FollowerCount, err = service.repository.FollowerCount(context, id); err != nil {
		return nil, err
	}

	if viewer.UserID != "" {
		if detail.IsFollowing, err = service.repository.IsFollowing(context, viewer.UserID, id); err != nil {
			return nil, err
		}
		if detail.MyRating, err = service.repository.UserRating(context, viewer.UserID, id); err != nil {
			return nil, err
		}
	}

	return detail, nil
}

// Owned loads a comic and checks that actorID wrote it.
func (service *Service) Owned(context context.Context, actorID, id string) (*Comic, error) {
	comic, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if comic.AuthorID != actorID {
		return nil, apperr.NotOwner("comic")
	}
	return comic, nil
}

/*
Update applies input to a comic owned by actorID.

Description: When SeriesID is present it is re-resolved. Pointing at a series
the author does not own, or sending an empty string, clears the series.
*/
func (service *Service) Update(context context.Context, actorID, id string, input Input) (*Comic, error) {
	comic, err := service.Owned(context, actorID, id)
	if err != nil {
		return nil, err
	}

	input.apply(comic)
	if err := validateComic(comic); err != nil {
		return nil, err
	}

	if input.SeriesID != nil {
		if comic.SeriesID, err = service.resolveSeries(context, comic.AuthorID, input.SeriesID); err != nil {
			return nil, err
		}
	}

	if err := service.repository.Update(context, comic); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("comic_updated", slog.String("comic_id", id))
	return comic, nil
}

/*
SetCover replaces the cover image of a comic owned by actorID.

Description: The old file is deleted once the row points at the new one. If the
row update fails the new file is deleted instead.
*/
func (service *Service) SetCover(context context.Context, actorID, id string, cover storage.Upload) (*Comic, error) {
	comic, err := service.Owned(context, actorID, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if err := validator.Custom(FieldCover, !storage.IsAllowed(cover.Name), "Unsupported image type").Err(); err != nil {
		return nil, err
	}

	stored, err := service.files.Save(context, cover.Name, cover.Reader)
	if err != nil {
		return nil, err
	}

	logger := ctxutil.GetLogger(context)
	previous := comic.CoverPath
	comic.CoverPath = stored

	if err := service.repository.Update(context, comic); err != nil {
		storage.DeleteAll(context, service.files, logger, []string{stored})
		return nil, err
	}

	if previous != "" {
		storage.DeleteAll(context, service.files, logger, []string{previous})
	}

	logger.Info("comic_cover_replaced", slog.String("comic_id", id))
	return comic, nil
}

// Delete removes a comic owned by actorID with everything under it.
func (service *Service) Delete(context context.Context, actorID, id string) error {
	if _, err := service.Owned(context, actorID, id); err != nil {
		return err
	}
	return service.remove(context, id)
}

func (service *Service) remove(context context.Context, id string) error {
	paths, err := service.repository.Delete(context, id)
	if err != nil {
		return err
	}

	logger := ctxutil.GetLogger(context)
	storage.DeleteAll(context, service.files, logger, paths)

	logger.Info("comic_deleted",
		slog.String("comic_id", id),
		slog.String("actor_id", ctxutil.ActorID(context)),
		slog.Int("removed_files", len(paths)),
	)
	return nil
}

// # Discovery

// ListByAuthor returns the author's comics, most recently updated first.
// Drafts are included only when the viewer is the author or an admin.
func (service *Service) ListByAuthor(context context.Context, viewer sec.Principal, authorID string, params pagination.Params) ([]*Comic, pagination.Meta, error) {
	return service.list(context, params, Query{
		AuthorID:      authorID,
		PublishedOnly: viewer.UserID != authorID && !viewer.IsAdmin(),
		ByUpdated:     true,
	})
}

// Search lists published comics whose title contains title and whose genre
// equals genre, newest first. Empty arguments do not filter.
func (service *Service) Search(context context.Context, title, genre string, params pagination.Params) ([]*Comic, pagination.Meta, error) {
	return service.list(context, params, Query{
		PublishedOnly: true,
		Title:         strings.TrimSpace(title),
		Genre:         strings.TrimSpace(genre),
	})
}

// ListNew returns published comics created within the last 30 days, newest first.
func (service *Service) ListNew(context context.Context) ([]*Comic, error) {
	since := analytics.WindowStart(service.now(), constants.NewComicWindowDays)
	list, _, err := service.repository.List(context, Query{
		PublishedOnly: true,
		CreatedAfter:  &since,
		Limit:         constants.NewComicLimit,
	})
	return list, err
}

// ListEditorPicks returns the newest published editor picks.
func (service *Service) ListEditorPicks(context context.Context) ([]*Comic, error) {
	list, _, err := service.repository.List(context, Query{
		PublishedOnly: true,
		EditorPick:    true,
		Limit:         constants.EditorPickLimit,
	})
	return list, err
}

func (service *Service) list(context context.Context, params pagination.Params, filter Query) ([]*Comic, pagination.Meta, error) {
	filter.Limit, filter.Offset = params.Limit, params.Offset()

	list, total, err := service.repository.List(context, filter)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return list, params.Meta(total), nil
}

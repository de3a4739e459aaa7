// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package series

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/katha/internal/analytics"
	"github.com/taibuivan/katha/internal/platform/apperr"
	"github.com/taibuivan/katha/internal/platform/ctxutil"
	"github.com/taibuivan/katha/internal/platform/sec"
	"github.com/taibuivan/katha/internal/platform/storage"
	"github.com/taibuivan/katha/internal/platform/validate"
	"github.com/taibuivan/katha/pkg/uuid"
)

// # Service Definition

// Analytics computes per-series statistics. [analytics.Service] satisfies it.
type Analytics interface {
	SeriesAnalytics(context context.Context, seriesID string) (analytics.SeriesAnalytics, error)
}

// Service implements series management for creators.
type Service struct {
	repository Repository
	files      storage.FileStore
	analytics  Analytics
}

// NewService constructs a new series [Service].
func NewService(repository Repository, files storage.FileStore, stats Analytics) *Service {
	return &Service{repository: repository, files: files, analytics: stats}
}

// Input carries the editable series attributes. Nil fields are left unchanged on update.
type Input struct {
	Name        *string
	Description *string
	Genre       *string
	Status      *string
	Schedule    *string
}

func (input Input) apply(series *Series) {
	if input.Name != nil {
		series.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		series.Description = *input.Description
	}
	if input.Genre != nil {
		series.Genre = strings.TrimSpace(*input.Genre)
	}
	if input.Status != nil {
		series.Status = Status(*input.Status)
	}
	if input.Schedule != nil {
		series.Schedule = *input.Schedule
	}
}

func validateSeries(series *Series) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, series.Name).
		MaxLen(FieldName, series.Name, NameMaxLength).
		MaxLen(FieldGenre, series.Genre, GenreMaxLength).
		OneOf(FieldStatus, string(series.Status), Statuses...).
		OptionalOneOf(FieldSchedule, series.Schedule, Schedules...)
	return validator.Err()
}

// # Lifecycle

/*
Create stores a new series owned by authorID.

Returns:
  - *Series: Created entity with StatusOngoing unless input says otherwise
  - error: VALIDATION_ERROR on bad input
*/
func (service *Service) Create(context context.Context, authorID string, input Input) (*Series, error) {
	series := &Series{
		ID:       uuid.New(),
		AuthorID: authorID,
		Status:   StatusOngoing,
	}
	input.apply(series)

	if err := validateSeries(series); err != nil {
		return nil, err
	}

	if err := service.repository.Create(context, series); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("series_created",
		slog.String("series_id", series.ID),
		slog.String("author_id", authorID),
	)
	return series, nil
}

/*
Get returns a series and its comics.

Description: Drafts are listed only for the author and for admins.
*/
func (service *Service) Get(context context.Context, viewer sec.Principal, id string) (*Detail, error) {
	series, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	publishedOnly := series.AuthorID != viewer.UserID && !viewer.IsAdmin()
	comics, err := service.repository.ListComics(context, id, publishedOnly)
	if err != nil {
		return nil, err
	}

	return &Detail{Series: series, Comics: comics}, nil
}

// ListByAuthor returns every series of authorID.
func (service *Service) ListByAuthor(context context.Context, authorID string) ([]*Series, error) {
	return service.repository.ListByAuthor(context, authorID)
}

// owned loads the series and checks that actorID wrote it.
func (service *Service) owned(context context.Context, actorID, id string) (*Series, error) {
	series, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if series.AuthorID != actorID {
		return nil, apperr.NotOwner("series")
	}
	return series, nil
}

// Update applies input to a series owned by actorID.
func (service *Service) Update(context context.Context, actorID, id string, input Input) (*Series, error) {
	series, err := service.owned(context, actorID, id)
	if err != nil {
		return nil, err
	}

	input.apply(series)
	if err := validateSeries(series); err != nil {
		return nil, err
	}

	if err := service.repository.Update(context, series); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("series_updated", slog.String("series_id", id))
	return series, nil
}

/*
SetCover replaces the cover image of a series owned by actorID.

Description: The new file is stored first. The old one is removed only after
the row points at the new path.
*/
func (service *Service) SetCover(context context.Context, actorID, id string, cover storage.Upload) (*Series, error) {
	series, err := service.owned(context, actorID, id)
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
	previous := series.CoverPath
	series.CoverPath = stored

	if err := service.repository.Update(context, series); err != nil {
		storage.DeleteAll(context, service.files, logger, []string{stored})
		return nil, err
	}

	if previous != "" {
		storage.DeleteAll(context, service.files, logger, []string{previous})
	}
	return series, nil
}

/*
Delete removes a series owned by actorID along with every comic in it.

Description: Rows go in one transaction; stored files are removed afterwards.
A file that cannot be removed is logged and left behind.
*/
func (service *Service) Delete(context context.Context, actorID, id string) error {
	if _, err := service.owned(context, actorID, id); err != nil {
		return err
	}

	paths, err := service.repository.Delete(context, id)
	if err != nil {
		return err
	}

	logger := ctxutil.GetLogger(context)
	storage.DeleteAll(context, service.files, logger, paths)

	logger.Info("series_deleted",
		slog.String("series_id", id),
		slog.Int("removed_files", len(paths)),
	)
	return nil
}

// # Derived Data

/*
Defaults suggests attributes for a new comic in the series.

Description: Genre, status and schedule are copied from the series. The
content type is the most common one among its comics, ties going to the
older comic, or [DefaultContentType] for an empty series.
*/
func (service *Service) Defaults(context context.Context, actorID, id string) (*Defaults, error) {
	series, err := service.owned(context, actorID, id)
	if err != nil {
		return nil, err
	}

	types, err := service.repository.ComicContentTypes(context, id)
	if err != nil {
		return nil, err
	}

	return &Defaults{
		Genre:       series.Genre,
		Status:      series.Status,
		Schedule:    series.Schedule,
		ContentType: analytics.MostCommon(types, DefaultContentType),
	}, nil
}

// Analytics returns view, follower and rating totals for a series owned by actorID.
func (service *Service) Analytics(context context.Context, actorID, id string) (analytics.SeriesAnalytics, error) {
	if _, err := service.owned(context, actorID, id); err != nil {
		return analytics.SeriesAnalytics{}, err
	}
	return service.analytics.SeriesAnalytics(context, id)
}

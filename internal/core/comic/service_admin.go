// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"context"
	"log/slog"

	"github.com/taibuivan/katha/internal/platform/ctxutil"
	"github.com/taibuivan/katha/internal/platform/validate"
	"github.com/taibuivan/katha/pkg/pagination"
)

// # Moderation

// TogglePublish flips the publish flag of any comic.
func (service *Service) TogglePublish(context context.Context, id string) (*Comic, error) {
	return service.toggle(context, id, "comic_publish_toggled", func(comic *Comic) *bool { return &comic.IsPublished })
}

// ToggleEditorPick flips the editor pick flag of any comic.
func (service *Service) ToggleEditorPick(context context.Context, id string) (*Comic, error) {
	return service.toggle(context, id, "comic_editor_pick_toggled", func(comic *Comic) *bool { return &comic.IsEditorPick })
}

func (service *Service) toggle(context context.Context, id, event string, flag func(*Comic) *bool) (*Comic, error) {
	comic, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	field := flag(comic)
	*field = !*field

	if err := service.repository.Update(context, comic); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info(event,
		slog.String("comic_id", id),
		slog.String("actor_id", ctxutil.ActorID(context)),
		slog.Bool("value", *field),
	)
	return comic, nil
}

// AdminDelete removes any comic with everything under it.
func (service *Service) AdminDelete(context context.Context, id string) error {
	if _, err := service.repository.FindByID(context, id); err != nil {
		return err
	}
	return service.remove(context, id)
}

/*
AdminList pages every comic, newest first.

Parameters:
  - filter: "", "published", "unpublished" or "editor_picks"

Returns:
  - error: VALIDATION_ERROR for an unknown filter
*/
func (service *Service) AdminList(context context.Context, filter string, params pagination.Params) ([]*Comic, pagination.Meta, error) {
	validator := &validate.Validator{}
	validator.OptionalOneOf(FieldFilter, filter, string(AdminPublished), string(AdminUnpublished), string(AdminEditorPicks))
	if err := validator.Err(); err != nil {
		return nil, pagination.Meta{}, err
	}

	query := Query{}
	switch AdminFilter(filter) {
	case AdminPublished:
		query.PublishedOnly = true
	case AdminUnpublished:
		query.Unpublished = true
	case AdminEditorPicks:
		query.EditorPick = true
	}

	return service.list(context, params, query)
}

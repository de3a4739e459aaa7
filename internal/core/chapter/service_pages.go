// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"log/slog"

	"github.com/taibuivan/katha/internal/platform/apperr"
	"github.com/taibuivan/katha/internal/platform/ctxutil"
	"github.com/taibuivan/katha/internal/platform/sec"
	"github.com/taibuivan/katha/internal/platform/storage"
	"github.com/taibuivan/katha/internal/platform/validate"
)

// # Pages

/*
AddPages stores uploads and appends them to a chapter owned by actorID.

Description: Pages are numbered from the current page count plus one, in
upload order. If the rows cannot be written the stored files are removed.

Returns:
  - []*Page: The new pages
  - error: VALIDATION_ERROR when no file is sent or a file type is not allowed
*/
func (service *Service) AddPages(context context.Context, actorID, comicID, chapterID string, uploads []storage.Upload) ([]*Page, error) {
	if _, err := service.owned(context, actorID, comicID, chapterID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Custom(FieldPages, len(uploads) == 0, "At least one page is required")
	for _, upload := range uploads {
		validator.Custom(FieldPages, !storage.IsAllowed(upload.Name), "Unsupported file type: "+upload.Name)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	paths, err := storage.SaveAll(context, service.files, uploads)
	if err != nil {
		return nil, err
	}

	logger := ctxutil.GetLogger(context)
	added, err := service.repository.AddPages(context, chapterID, paths)
	if err != nil {
		storage.DeleteAll(context, service.files, logger, paths)
		return nil, err
	}

	logger.Info("chapter_pages_added",
		slog.String("chapter_id", chapterID),
		slog.Int("count", len(added)),
	)
	return added, nil
}

// DeletePage removes a page from a chapter owned by actorID along with its file.
// The remaining pages keep their numbers.
func (service *Service) DeletePage(context context.Context, actorID, comicID, chapterID, pageID string) error {
	if _, err := service.owned(context, actorID, comicID, chapterID); err != nil {
		return err
	}

	page, err := service.repository.FindPage(context, pageID)
	if err != nil {
		return err
	}
	if page.ChapterID != chapterID {
		return apperr.NotFound("Page")
	}

	if err := service.repository.DeletePage(context, pageID); err != nil {
		return err
	}

	logger := ctxutil.GetLogger(context)
	storage.DeleteAll(context, service.files, logger, []string{page.ImagePath})

	logger.Info("chapter_page_deleted", slog.String("chapter_id", chapterID), slog.String("page_id", pageID))
	return nil
}

// ListPages returns the pages of a readable chapter in reading order.
func (service *Service) ListPages(context context.Context, viewer sec.Principal, comicID, chapterID string) ([]*Page, error) {
	if _, _, err := service.readable(context, viewer, comicID, chapterID); err != nil {
		return nil, err
	}
	return service.repository.ListPages(context, chapterID)
}

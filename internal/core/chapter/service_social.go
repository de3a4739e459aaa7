// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/katha/internal/core/rating"
	"github.com/taibuivan/katha/internal/platform/apperr"
	"github.com/taibuivan/katha/internal/platform/ctxutil"
	"github.com/taibuivan/katha/internal/platform/sec"
	"github.com/taibuivan/katha/internal/platform/validate"
	"github.com/taibuivan/katha/pkg/pagination"
	"github.com/taibuivan/katha/pkg/uuid"
)

// # Views

/*
View records one read of a readable chapter.

Description: Anonymous readers are logged with a null user. The chapter and
its comic each gain one view.
*/
func (service *Service) View(context context.Context, viewer sec.Principal, comicID, chapterID, ipAddress, userAgent string) error {
	if _, _, err := service.readable(context, viewer, comicID, chapterID); err != nil {
		return err
	}

	view := View{ComicID: comicID, ChapterID: &chapterID, IPAddress: ipAddress, UserAgent: userAgent}
	if viewer.UserID != "" {
		view.UserID = &viewer.UserID
	}
	return service.repository.RecordView(context, view)
}

// # Ratings

// Rate records the viewer's 1-5 score on a readable chapter. Rating again
// replaces the earlier score.
func (service *Service) Rate(context context.Context, viewer sec.Principal, comicID, chapterID string, score int) (rating.Result, error) {
	validator := &validate.Validator{}
	if err := validator.Range(FieldRating, score, rating.MinScore, rating.MaxScore).Err(); err != nil {
		return rating.Result{}, err
	}

	if _, _, err := service.readable(context, viewer, comicID, chapterID); err != nil {
		return rating.Result{}, err
	}

	result, err := service.repository.Rate(context, viewer.UserID, chapterID, score)
	if err != nil {
		return rating.Result{}, err
	}

	ctxutil.GetLogger(context).Info("chapter_rated",
		slog.String("chapter_id", chapterID),
		slog.Int("score", score),
		slog.Bool("updated", result.Updated),
	)
	return result, nil
}

// # Comments

func validateContent(content string) error {
	validator := &validate.Validator{}
	return validator.Required(FieldContent, content).MaxLen(FieldContent, content, CommentMaxLength).Err()
}

// Comment posts the viewer's comment on a readable chapter.
func (service *Service) Comment(context context.Context, viewer sec.Principal, comicID, chapterID, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if err := validateContent(content); err != nil {
		return nil, err
	}

	if _, _, err := service.readable(context, viewer, comicID, chapterID); err != nil {
		return nil, err
	}

	comment := &Comment{ID: uuid.New(), UserID: viewer.UserID, ChapterID: chapterID, Content: content}
	if err := service.repository.CreateComment(context, comment); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("chapter_id", chapterID),
	)
	return comment, nil
}

/*
EditComment replaces the content of a comment written by actorID and marks it
edited.

Returns:
  - error: FORBIDDEN for anyone but the comment's author, admins included
*/
func (service *Service) EditComment(context context.Context, actorID, commentID, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if err := validateContent(content); err != nil {
		return nil, err
	}

	comment, err := service.repository.FindComment(context, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != actorID {
		return nil, apperr.NotOwner("comment")
	}

	comment.Content = content
	comment.IsEdited = true
	if err := service.repository.UpdateComment(context, comment); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("comment_edited", slog.String("comment_id", commentID))
	return comment, nil
}

// DeleteComment removes a comment. Its author and admins may delete it.
func (service *Service) DeleteComment(context context.Context, viewer sec.Principal, commentID string) error {
	comment, err := service.repository.FindComment(context, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != viewer.UserID && !viewer.IsAdmin() {
		return apperr.NotOwner("comment")
	}

	if err := service.repository.DeleteComment(context, commentID); err != nil {
		return err
	}

	ctxutil.GetLogger(context).Info("comment_deleted",
		slog.String("comment_id", commentID),
		slog.Bool("moderated", comment.UserID != viewer.UserID),
	)
	return nil
}

// ListComments pages the comments of a readable chapter, newest first.
func (service *Service) ListComments(context context.Context, viewer sec.Principal, comicID, chapterID string, params pagination.Params) ([]*Comment, pagination.Meta, error) {
	if _, _, err := service.readable(context, viewer, comicID, chapterID); err != nil {
		return nil, pagination.Meta{}, err
	}

	list, total, err := service.repository.ListComments(context, chapterID, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return list, params.Meta(total), nil
}

// AdminListComments pages every comment on the platform, newest first.
func (service *Service) AdminListComments(context context.Context, params pagination.Params) ([]*ModeratedComment, pagination.Meta, error) {
	list, total, err := service.repository.ListAllComments(context, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return list, params.Meta(total), nil
}

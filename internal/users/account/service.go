// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/katha/internal/platform/apperr"
	"github.com/taibuivan/katha/internal/platform/ctxutil"
	"github.com/taibuivan/katha/internal/platform/storage"
	"github.com/taibuivan/katha/internal/platform/validate"
	"github.com/taibuivan/katha/internal/users/auth"
	"github.com/taibuivan/katha/pkg/pagination"
)

// # Service Definition

// Service implements profile and follow operations.
type Service struct {
	repository Repository
	files      storage.FileStore
}

// NewService constructs a new account [Service].
func NewService(repository Repository, files storage.FileStore) *Service {
	return &Service{repository: repository, files: files}
}

// # Profiles

/*
GetProfile returns the public view of userID as seen by viewerID.

Description: viewerID may be empty for anonymous readers. The email address
is only included when viewer and subject are the same account.

Returns:
  - *Profile: Profile with follow counts
  - error: NOT_FOUND if the user does not exist
*/
func (service *Service) GetProfile(context context.Context, viewerID, userID string) (*Profile, error) {
	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	followers, following, err := service.repository.FollowCounts(context, userID)
	if err != nil {
		return nil, err
	}

	profile := toProfile(user)
	profile.FollowerCount = followers
	profile.FollowingCount = following

	if viewerID == userID {
		profile.Email = user.Email
	} else if viewerID != "" {
		if profile.IsFollowing, err = service.repository.IsFollowing(context, viewerID, userID); err != nil {
			return nil, err
		}
	}

	return profile, nil
}

func toProfile(user *auth.User) *Profile {
	return &Profile{
		ID:         user.ID,
		Username:   user.Username,
		IsArtist:   user.IsArtist,
		Role:       user.Role,
		Bio:        user.Bio,
		AvatarPath: user.AvatarPath,
		CreatedAt:  user.CreatedAt,
	}
}

// UpdateProfileInput carries the optional profile changes. Nil fields are left alone.
type UpdateProfileInput struct {
	Username *string
	Bio      *string
	Avatar   *storage.Upload
}

/*
UpdateProfile applies input to the caller's own account.

Description: A new avatar is stored before the row is written. The previous
avatar file is removed only after the update succeeded; if the update fails
the freshly stored file is removed instead.

Returns:
  - *Profile: Updated profile, including the email
  - error: VALIDATION_ERROR on bad input or a taken username
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*Profile, error) {
	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		validator.Required(FieldUsername, username).
			MinLen(FieldUsername, username, auth.UsernameMinLength).
			MaxLen(FieldUsername, username, auth.UsernameMaxLength)
		user.Username = username
	}
	if input.Bio != nil {
		validator.MaxLen(FieldBio, *input.Bio, BioMaxLength)
		user.Bio = *input.Bio
	}
	if input.Avatar != nil {
		validator.Custom(FieldAvatar, !storage.IsAllowed(input.Avatar.Name), "Unsupported image type")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	logger := ctxutil.GetLogger(context)
	previousAvatar := user.AvatarPath

	if input.Avatar != nil {
		stored, err := service.files.Save(context, input.Avatar.Name, input.Avatar.Reader)
		if err != nil {
			return nil, err
		}
		user.AvatarPath = stored
	}

	if err := service.repository.UpdateProfile(context, user); err != nil {
		if input.Avatar != nil {
			storage.DeleteAll(context, service.files, logger, []string{user.AvatarPath})
		}
		return nil, err
	}

	if input.Avatar != nil && previousAvatar != "" {
		storage.DeleteAll(context, service.files, logger, []string{previousAvatar})
	}

	logger.Info("profile_updated", slog.String("user_id", userID))
	return service.GetProfile(context, userID, userID)
}

// # Follow Graph

/*
Follow makes followerID follow followedID. Following twice is a no-op.

Returns:
  - error: VALIDATION_ERROR for a self-follow, NOT_FOUND for an unknown target
*/
func (service *Service) Follow(context context.Context, followerID, followedID string) error {
	if followerID == followedID {
		return apperr.ValidationError("You cannot follow yourself")
	}

	if _, err := service.repository.FindByID(context, followedID); err != nil {
		return err
	}

	created, err := service.repository.Follow(context, followerID, followedID)
	if err != nil {
		return err
	}

	if created {
		ctxutil.GetLogger(context).Info("user_followed",
			slog.String("follower_id", followerID),
			slog.String("followed_id", followedID),
		)
	}
	return nil
}

// Unfollow removes the follow relation. Unfollowing a stranger succeeds silently.
func (service *Service) Unfollow(context context.Context, followerID, followedID string) error {
	return service.repository.Unfollow(context, followerID, followedID)
}

// ListFollowers pages the followers of userID.
func (service *Service) ListFollowers(context context.Context, userID string, params pagination.Params) ([]FollowEntry, pagination.Meta, error) {
	if _, err := service.repository.FindByID(context, userID); err != nil {
		return nil, pagination.Meta{}, err
	}

	entries, total, err := service.repository.ListFollowers(context, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return entries, params.Meta(total), nil
}

// ListFollowing pages the accounts userID follows.
func (service *Service) ListFollowing(context context.Context, userID string, params pagination.Params) ([]FollowEntry, pagination.Meta, error) {
	if _, err := service.repository.FindByID(context, userID); err != nil {
		return nil, pagination.Meta{}, err
	}

	entries, total, err := service.repository.ListFollowing(context, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return entries, params.Meta(total), nil
}

// # Administration

/*
SetArtist grants or revokes creator rights.

Parameters:
  - isArtist: Desired flag; nil toggles the current value

Returns:
  - *auth.User: Updated account
  - error: NOT_FOUND for an unknown user
*/
func (service *Service) SetArtist(context context.Context, userID string, isArtist *bool) (*auth.User, error) {
	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	target := !user.IsArtist
	if isArtist != nil {
		target = *isArtist
	}

	updated, err := service.repository.SetArtist(context, userID, target)
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("artist_flag_changed",
		slog.String("user_id", userID),
		slog.String("actor_id", ctxutil.ActorID(context)),
		slog.Bool("is_artist", updated.IsArtist),
	)
	return updated, nil
}

// ListUsers pages every account for administrators.
func (service *Service) ListUsers(context context.Context, filter string, params pagination.Params) ([]*auth.User, pagination.Meta, error) {
	validator := &validate.Validator{}
	validator.OptionalOneOf("filter", filter, string(FilterArtists), string(FilterReaders))
	if err := validator.Err(); err != nil {
		return nil, pagination.Meta{}, err
	}

	list, total, err := service.repository.List(context, UserFilter(filter), params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return list, params.Meta(total), nil
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles public profiles, the follow graph between users and
the admin view of the user base.

Credentials live in package auth; this package reads the same users.account
rows through its own repository and never touches password hashes.
*/
package account

import (
	"context"
	"time"

	"github.com/taibuivan/katha/internal/platform/sec"
	"github.com/taibuivan/katha/internal/users/auth"
)

// # Domain Entities

// Profile is a user as other users see them, plus follow counts.
type Profile struct {
	ID             string       `json:"id"`
	Username       string       `json:"username"`
	Email          string       `json:"email,omitempty"`
	IsArtist       bool         `json:"is_artist"`
	Role           sec.UserRole `json:"role"`
	Bio            string       `json:"bio"`
	AvatarPath     string       `json:"avatar_path"`
	FollowerCount  int          `json:"follower_count"`
	FollowingCount int          `json:"following_count"`
	IsFollowing    bool         `json:"is_following"`
	CreatedAt      time.Time    `json:"created_at"`
}

// FollowEntry is one row of a followers or following list.
type FollowEntry struct {
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	AvatarPath string    `json:"avatar_path"`
	IsArtist   bool      `json:"is_artist"`
	FollowedAt time.Time `json:"followed_at"`
}

// UserFilter narrows the admin user list.
type UserFilter string

const (
	FilterAll     UserFilter = ""
	FilterArtists UserFilter = "artists"
	FilterReaders UserFilter = "readers"
)

// Field identifiers for validation.
const (
	FieldUsername = "username"
	FieldBio      = "bio"
	FieldRole     = "role"
	FieldAvatar   = "avatar"
)

// BioMaxLength caps the profile bio.
const BioMaxLength = 2000

// # Repository Contracts

// Repository is the persistence contract for profiles and follows.
type Repository interface {

	/*
		FindByID retrieves a user record by their unique ID.

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	// FollowCounts returns how many users follow id and how many id follows.
	FollowCounts(context context.Context, id string) (followers, following int, err error)

	// IsFollowing reports whether followerID follows followedID.
	IsFollowing(context context.Context, followerID, followedID string) (bool, error)

	/*
		UpdateProfile writes the mutable profile fields of user.

		Returns:
		  - error: VALIDATION_ERROR when the username is taken, NOT_FOUND when the row vanished
	*/
	UpdateProfile(context context.Context, user *auth.User) error

	/*
		Follow records followerID following followedID.

		Returns:
		  - bool: false when the pair already existed
		  - error: Storage failures
	*/
	Follow(context context.Context, followerID, followedID string) (bool, error)

	// Unfollow removes the pair. A missing pair is not an error.
	Unfollow(context context.Context, followerID, followedID string) error

	// ListFollowers pages the users following userID, newest first.
	ListFollowers(context context.Context, userID string, limit, offset int) ([]FollowEntry, int, error)

	// ListFollowing pages the users userID follows, newest first.
	ListFollowing(context context.Context, userID string, limit, offset int) ([]FollowEntry, int, error)

	// SetArtist writes the creator flag and returns the updated account.
	SetArtist(context context.Context, id string, isArtist bool) (*auth.User, error)

	/*
		List pages every account matching filter, newest first.

		Returns:
		  - []*auth.User: Page of accounts
		  - int: Total matching accounts
		  - error: Storage failures
	*/
	List(context context.Context, filter UserFilter, limit, offset int) ([]*auth.User, int, error)
}

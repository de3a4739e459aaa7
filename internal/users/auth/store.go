// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository is the credential view of users.account.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound when missing
	*/
	FindByID(context context.Context, id string) (*User, error)

	// FindByEmail returns the account registered with email.
	FindByEmail(context context.Context, email string) (*User, error)

	// FindByUsername returns the account named username.
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a brand-new account.

		Parameters:
		  - context: context.Context
		  - user: *User (ID and PasswordHash already set)

		Returns:
		  - error: VALIDATION_ERROR on a username/email collision, storage failures otherwise
	*/
	Create(context context.Context, user *User) error

	// SetArtist flips the creator flag of an account.
	SetArtist(context context.Context, id string, isArtist bool) error
}

// # Session Data Access

// SessionRepository stores refresh sessions keyed by token hash.
type SessionRepository interface {

	/*
		Create stores session under tokenHash for ttl.

		Parameters:
		  - context: context.Context
		  - tokenHash: string (SHA-256 hex of the refresh token)
		  - session: *Session
		  - ttl: time.Duration

		Returns:
		  - error: Storage failures
	*/
	Create(context context.Context, tokenHash string, session *Session, ttl time.Duration) error

	// Find returns the live session for tokenHash, or apperr.NotFound.
	Find(context context.Context, tokenHash string) (*Session, error)

	// Revoke deletes the session for tokenHash. Missing sessions are not an error.
	Revoke(context context.Context, tokenHash string) error

	// RevokeAll deletes every session of userID.
	RevokeAll(context context.Context, userID string) error
}

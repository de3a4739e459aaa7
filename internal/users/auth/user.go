// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth owns account credentials and sessions.

Access tokens are short-lived RS256 JWTs carrying the user id, username, role
and creator flag. Refresh tokens are opaque random strings; only their SHA-256
hash is stored, as the key of a Redis session that expires on its own.
*/
package auth

import (
	"time"

	"github.com/taibuivan/katha/internal/platform/sec"
)

// # Domain Entities

// User is a registered account. Readers and creators share the table; creators
// have IsArtist set.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	IsArtist     bool         `json:"is_artist"`
	Role         sec.UserRole `json:"role"`
	Bio          string       `json:"bio"`
	AvatarPath   string       `json:"avatar_path"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Principal returns the identity embedded in the user's access tokens.
func (user *User) Principal() sec.Principal {
	return sec.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		IsArtist: user.IsArtist,
	}
}

// Session is a refresh-token session. It is keyed by the token hash, which is
// therefore not part of the value.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldLogin    = "login"
)

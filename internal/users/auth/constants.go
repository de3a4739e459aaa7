// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is how long a signed access token stays valid.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is how long a refresh session lives in Redis.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random refresh token.
	RefreshTokenLength = 32

	// Credential length bounds.
	UsernameMinLength = 3
	UsernameMaxLength = 64
	EmailMaxLength    = 120
	PasswordMinLength = 8
	PasswordMaxLength = 72
)

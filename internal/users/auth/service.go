// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/katha/internal/platform/apperr"
	"github.com/taibuivan/katha/internal/platform/ctxutil"
	"github.com/taibuivan/katha/internal/platform/sec"
	"github.com/taibuivan/katha/internal/platform/validate"
	"github.com/taibuivan/katha/pkg/uuid"
)

// # Contracts & Types

// TokenProvider signs access tokens. [sec.TokenService] satisfies it.
type TokenProvider interface {
	GenerateAccessToken(principal sec.Principal, timeToLive time.Duration) (string, error)
}

// Service implements registration, login and session rotation.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
	now               func() time.Time
}

// NewService constructs a new auth [Service].
func NewService(userRepo UserRepository, sessionRepo SessionRepository, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokenProvider:     tokenProv,
		now:               time.Now,
	}
}

// # Registration Flow

// RegisterInput holds the data required to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	IsArtist bool
}

/*
Register validates, hashes, and persists a new account.

Description: Username and email must be unused. The pre-check gives friendly
errors; the unique constraints catch a concurrent registration racing past it.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: VALIDATION_ERROR on bad input or a taken username/email
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, UsernameMinLength).
		MaxLen(FieldUsername, input.Username, UsernameMaxLength).
		Required(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, EmailMaxLength).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLength).
		MaxLen(FieldPassword, input.Password, PasswordMaxLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.userRepository.FindByUsername(context, input.Username); err == nil {
		return nil, apperr.Duplicate(FieldUsername, "Username is already taken")
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	if _, err := service.userRepository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Duplicate(FieldEmail, "Email is already registered")
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		IsArtist:     input.IsArtist,
		Role:         sec.RoleMember,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("user_registered",
		slog.String("user_id", user.ID),
		slog.Bool("is_artist", user.IsArtist),
	)

	return user, nil
}

// # Authentication Flow

// LoginInput holds credentials for an authentication attempt.
type LoginInput struct {
	Login     string // username or email
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession is the credential pair handed to a client.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login verifies credentials and opens a refresh session.

Description: Login accepts a username or an email. Unknown accounts and wrong
passwords yield the same error so accounts cannot be enumerated.

Returns:
  - *LoginSession: Access and refresh tokens
  - error: UNAUTHORIZED on bad credentials
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	validator := &validate.Validator{}
	validator.Required(FieldLogin, input.Login).Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByUsername(context, input.Login)
	if apperr.IsNotFound(err) && strings.Contains(input.Login, "@") {
		user, err = service.userRepository.FindByEmail(context, input.Login)
	}
	if apperr.IsNotFound(err) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}
	if err != nil {
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	session, err := service.openSession(context, user, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("user_logged_in", slog.String("user_id", user.ID))
	return session, nil
}

// openSession signs an access token and stores a fresh refresh session.
func (service *Service) openSession(context context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.Principal(), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to sign access token: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to generate refresh token: %w", err)
	}

	now := service.now().UTC()
	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: now.Add(RefreshTokenTTL),
		CreatedAt: now,
	}

	if err := service.sessionRepository.Create(context, sec.HashToken(refreshToken), session, RefreshTokenTTL); err != nil {
		return nil, err
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: session.ExpiresAt,
		User:                  user,
	}, nil
}

// Logout revokes the session behind refreshToken. Unknown tokens are ignored.
func (service *Service) Logout(context context.Context, refreshToken string) error {
	return service.sessionRepository.Revoke(context, sec.HashToken(refreshToken))
}

// # Session Management

/*
Refresh rotates a refresh token.

Description: The presented session is revoked before a new one is issued, so
each refresh token works exactly once. The access token is re-signed from the
current account row, which picks up role and creator changes.

Parameters:
  - context: context.Context
  - refreshToken: string
  - userAgent: string
  - ipAddress: string

Returns:
  - *LoginSession: New token pair
  - error: UNAUTHORIZED when the token is unknown, expired or already used
*/
func (service *Service) Refresh(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	tokenHash := sec.HashToken(refreshToken)

	session, err := service.sessionRepository.Find(context, tokenHash)
	if apperr.IsNotFound(err) {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}
	if err != nil {
		return nil, err
	}

	if err := service.sessionRepository.Revoke(context, tokenHash); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByID(context, session.UserID)
	if apperr.IsNotFound(err) {
		return nil, apperr.Unauthorized("Account no longer exists")
	}
	if err != nil {
		return nil, err
	}

	return service.openSession(context, user, userAgent, ipAddress)
}

/*
BecomeCreator turns a reader account into a creator account.

Description: The flag is set on the account and a new token pair is issued so
the creator claim takes effect immediately. Calling it on a creator account
only re-issues tokens.

Returns:
  - *LoginSession: Tokens carrying the creator flag
  - error: NOT_FOUND if the account vanished
*/
func (service *Service) BecomeCreator(context context.Context, userID, userAgent, ipAddress string) (*LoginSession, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if !user.IsArtist {
		if err := service.userRepository.SetArtist(context, userID, true); err != nil {
			return nil, err
		}
		user.IsArtist = true

		ctxutil.GetLogger(context).Info("user_became_creator", slog.String("user_id", userID))
	}

	return service.openSession(context, user, userAgent, ipAddress)
}

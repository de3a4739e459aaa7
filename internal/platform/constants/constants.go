// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants holds the fixed values shared across Katha layers: server
timings, rate limits, auth identifiers, upload policy and the windows used by the
dashboards.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "katha-api"
	AppVersion = "0.3.0"
)

// # Server Timing

const (
	DefaultReadTimeout       = 15 * time.Second
	DefaultWriteTimeout      = 30 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout bounds every request and every SQL statement.
	GlobalRequestTimeout = 30 * time.Second

	ShutdownTimeout = 30 * time.Second

	// StartupTimeout bounds connecting to PostgreSQL and Redis at boot.
	StartupTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	DefaultRateLimitRPS      = 50.0
	DefaultRateLimitBurst    = 100
	RateLimitCleanupInterval = 1 * time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # Authentication

const (
	AuthIssuer = "katha.app"

	RefreshTokenCookieName = "refresh_token"
	RefreshTokenCookiePath = "/api/v1/auth"
)

// # Uploads

const (
	// MaxUploadBytes caps a single multipart request (16 MiB).
	MaxUploadBytes = 16 << 20

	// UploadPrefix is the relative directory every stored path starts with.
	UploadPrefix = "uploads"
)

// AllowedUploadExtensions lists the accepted file extensions, lower case, no dot.
var AllowedUploadExtensions = []string{"png", "jpg", "jpeg", "gif", "pdf"}

// # Dashboards

const (
	TrendingWindowDays   = 7
	TrendingLimit        = 10
	TopRatedLimit        = 10
	NewComicWindowDays   = 30
	NewComicLimit        = 10
	EditorPickLimit      = 5
	RecentViewDays       = 7
	AnalyticsDefaultDays = 30

	// ActivityPerKind is how many events of each kind the feed pulls before merging.
	ActivityPerKind = 5

	CreatorFeedLimit    = 8
	CreatorRecentComics = 8
	CreatorRecentSeries = 6
	AdminNewestLimit    = 5
	AnalyticsTopLimit   = 10
	ScheduleRecentLimit = 10
	AnalyticsMaxDays    = 365
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Redis Prefixes

const (
	RedisPrefixSession     = "auth:session:"
	RedisPrefixUserSession = "auth:user_sessions:"
)

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config maps environment variables onto typed Katha settings using
caarlos0/env.

The API server needs everything in [Config]. The operator CLI only talks to
PostgreSQL, so it loads the narrower [DatabaseConfig] and does not demand Redis
or signing keys.

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/katha/internal/platform/constants"
)

// # Configuration Schema

// DatabaseConfig holds the PostgreSQL settings shared by the API and the CLI.
type DatabaseConfig struct {
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the directory holding the golang-migrate .sql files.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
}

// Config holds all runtime configuration for the Katha API server.
type Config struct {
	DatabaseConfig

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Refresh sessions (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// RS256 key pair for access tokens
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Uploaded covers and pages are written below UploadDir.
	UploadDir      string `env:"UPLOAD_DIR"       envDefault:"./data/static"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"16777216"`

	TrendingWindowDays int `env:"TRENDING_WINDOW_DAYS" envDefault:"7"`

	// ExtraOrigins are CORS origins allowed outside development.
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses the full server configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	// Fails if any 'required' variable is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDatabase parses only the PostgreSQL settings.
func LoadDatabase() (*DatabaseConfig, error) {
	cfg, err := env.ParseAs[DatabaseConfig]()
	if err != nil {
		return nil, fmt.Errorf("config: failed to parse database variables: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var problems []string

	if c.MaxUploadBytes <= 0 || c.MaxUploadBytes > constants.MaxUploadBytes {
		problems = append(problems, fmt.Sprintf("MAX_UPLOAD_BYTES must be in (0, %d]", constants.MaxUploadBytes))
	}
	if c.TrendingWindowDays <= 0 {
		problems = append(problems, "TRENDING_WINDOW_DAYS must be positive")
	}
	if strings.TrimSpace(c.UploadDir) == "" {
		problems = append(problems, "UPLOAD_DIR must not be empty")
	}

	if len(problems) > 0 {
		return errors.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the configured CORS origins.
func (c *Config) AllowedOrigins() []string {
	return c.ExtraOrigins
}

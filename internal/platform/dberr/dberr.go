// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr classifies pgx errors into [apperr.AppError] values so that
// storage details never reach the client.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/katha/internal/platform/apperr"
)

// PostgreSQL SQLSTATE codes the stores care about.
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
	CheckViolation      = "23514"
)

type uniqueKey struct {
	field   string
	message string
}

// uniqueKeys maps migration constraint names to the field a client can fix.
var uniqueKeys = map[string]uniqueKey{
	"account_username_uq": {"username", "Username is already taken"},
	"account_email_uq":    {"email", "Email is already registered"},
	"chapter_number_uq":   {"chapter_number", "Chapter number already exists for this comic"},
}

// Wrap classifies err raised while performing action on resource.
//
//   - nil stays nil and an [*apperr.AppError] passes through untouched.
//   - [pgx.ErrNoRows] becomes NOT_FOUND for resource.
//   - unique, foreign key and check violations become VALIDATION_ERROR.
//   - anything else is wrapped as "postgres: failed to <action>" and surfaces
//     as INTERNAL_ERROR at the HTTP boundary.
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	if apperr.As(err) != nil {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case UniqueViolation:
			if key, ok := uniqueKeys[pgError.ConstraintName]; ok {
				return apperr.Duplicate(key.field, key.message)
			}
			return apperr.ValidationError(resource + " already exists")
		case ForeignKeyViolation:
			return apperr.ValidationError("Referenced entity does not exist")
		case CheckViolation:
			return apperr.ValidationError("Value out of range for " + resource)
		}
	}

	return fmt.Errorf("postgres: failed to %s: %w", action, err)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique violation.
func IsUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == UniqueViolation
}

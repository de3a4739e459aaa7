// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the error vocabulary shared by every Katha service.

Services never return raw storage errors to handlers. They return an [*AppError]
carrying a stable machine code and the HTTP status it maps to:

  - NOT_FOUND         (404) the addressed entity does not exist.
  - FORBIDDEN         (403) the principal is not the owner of the entity.
  - UNAUTHORIZED      (401) no principal is attached to the request.
  - VALIDATION_ERROR  (400) missing fields, malformed values, duplicate keys.
  - INTERNAL_ERROR    (500) storage failures; the cause is logged, never sent.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// # Error Codes

const (
	CodeNotFound        = "NOT_FOUND"
	CodeForbidden       = "FORBIDDEN"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeValidation      = "VALIDATION_ERROR"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternal        = "INTERNAL_ERROR"
	CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
)

// AppError is the canonical error type returned by services.
//
// # Security
//
// Cause is for server-side logging only and never leaves the process.
type AppError struct {
	// Code is a machine-readable identifier such as "NOT_FOUND".
	Code string `json:"code"`
	// Message is safe to show to the client.
	Message string `json:"error"`
	// HTTPStatus is the response status the error maps to.
	HTTPStatus int `json:"-"`
	// Cause is the wrapped low-level error.
	Cause error `json:"-"`
	// Details lists per-field failures for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface with the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap exposes Cause to [errors.Is] and [errors.As].
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// NotFound reports a missing entity.
//
//	apperr.NotFound("Comic") // "Comic not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized reports a request that carries no (valid) principal.
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden reports a principal acting on content it does not own.
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// NotOwner is the [Forbidden] error every ownership check returns.
func NotOwner(resource string) *AppError {
	return Forbidden("You are not the author of this " + resource)
}

// ValidationError reports rejected input, with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// Duplicate reports a unique-key clash on field as a validation failure.
func Duplicate(field, msg string) *AppError {
	return ValidationError(msg, FieldError{Field: field, Message: msg})
}

// RateLimited reports a client that exceeded its request budget.
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// PayloadTooLarge reports an upload above the configured size cap.
func PayloadTooLarge(limitBytes int64) *AppError {
	return &AppError{
		Code:       CodePayloadTooLarge,
		Message:    fmt.Sprintf("Upload exceeds the %d MiB limit", limitBytes>>20),
		HTTPStatus: http.StatusRequestEntityTooLarge,
	}
}

// # Server Errors (5xx)

// Internal wraps an unexpected failure. The cause is kept for logging only.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// As extracts the [*AppError] from err's chain, or nil.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}

// IsNotFound is shorthand for HasCode(err, CodeNotFound).
func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound)
}

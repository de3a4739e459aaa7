// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil extracts typed values from HTTP requests: JSON bodies, chi
URL parameters, query strings, multipart uploads and the authenticated principal.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/katha/internal/platform/apperr"
	"github.com/taibuivan/katha/internal/platform/ctxutil"
	"github.com/taibuivan/katha/internal/platform/sec"
	"github.com/taibuivan/katha/internal/platform/storage"
	"github.com/taibuivan/katha/internal/platform/validate"
	"github.com/taibuivan/katha/pkg/convert"
)

/*
DecodeJSON reads the request body into target.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// ID returns the named chi URL parameter after checking it is a UUID.
func ID(request *http.Request, name string) (string, error) {
	value := chi.URLParam(request, name)

	validator := &validate.Validator{}
	if err := validator.UUID(name, value).Err(); err != nil {
		return "", err
	}
	return strings.ToLower(value), nil
}

// QueryInt returns the integer query parameter key, or def when absent or malformed.
func QueryInt(request *http.Request, key string, def int) int {
	return convert.ToIntD(request.URL.Query().Get(key), def)
}

// QueryString returns the trimmed query parameter key.
func QueryString(request *http.Request, key string) string {
	return strings.TrimSpace(request.URL.Query().Get(key))
}

// # Identity

// Claims returns the principal, or nil for anonymous requests.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// RequiredClaims returns the principal or an UNAUTHORIZED error.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

// Principal returns the caller as a [sec.Principal]. Anonymous callers get the zero value.
func Principal(request *http.Request) sec.Principal {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return sec.Principal{}
	}
	return sec.Principal{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     sec.UserRole(claims.Role),
		IsArtist: claims.IsArtist,
	}
}

// RequiredUserID returns the principal's user id or an UNAUTHORIZED error.
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// # Multipart Uploads

/*
ParseMultipart caps the body at maxBytes and parses a multipart form.

Returns:
  - error: PAYLOAD_TOO_LARGE when the cap is exceeded, VALIDATION_ERROR when the
    body is not multipart
*/
func ParseMultipart(writer http.ResponseWriter, request *http.Request, maxBytes int64) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBytes)

	if err := request.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.PayloadTooLarge(maxBytes)
		}
		return apperr.ValidationError("Expected a multipart/form-data body")
	}
	return nil
}

// Files returns the uploaded files for field, in submission order.
// ParseMultipart must have been called first.
func Files(request *http.Request, field string) []*multipart.FileHeader {
	if request.MultipartForm == nil {
		return nil
	}
	return request.MultipartForm.File[field]
}

/*
Uploads opens every file submitted under field.

Returns:
  - []storage.Upload: Open files in submission order
  - func(): Closes every opened file; safe to call when the error is non-nil
  - error: VALIDATION_ERROR if a part cannot be opened
*/
func Uploads(request *http.Request, field string) ([]storage.Upload, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, file := range opened {
			_ = file.Close()
		}
	}

	headers := Files(request, field)
	uploads := make([]storage.Upload, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, apperr.ValidationError("Could not read uploaded file " + header.Filename)
		}
		opened = append(opened, file)
		uploads = append(uploads, storage.Upload{Name: header.Filename, Reader: file})
	}

	return uploads, closeAll, nil
}

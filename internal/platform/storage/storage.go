// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage persists uploaded covers and chapter pages.

Stored paths are relative and look like "uploads/<uuidv7>_<slugged-name>.<ext>".
The database keeps only that path; [LocalStore] resolves it below its root.
*/
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/taibuivan/katha/internal/platform/apperr"
	"github.com/taibuivan/katha/internal/platform/constants"
	"github.com/taibuivan/katha/pkg/slug"
	"github.com/taibuivan/katha/pkg/uuid"
)

// FileStore saves and removes uploaded files.
type FileStore interface {
	// Save stores the content of reader under a fresh path derived from name.
	Save(ctx context.Context, name string, reader io.Reader) (string, error)

	// Delete removes a stored path. A path that no longer exists is not an error.
	Delete(ctx context.Context, storedPath string) error
}

// Upload is one file received from a client.
type Upload struct {
	Name   string
	Reader io.Reader
}

/*
SaveAll stores uploads in order and returns their paths.

If any upload fails, the files already written are removed again and the
error is returned, so callers never see a partial batch.
*/
func SaveAll(ctx context.Context, store FileStore, uploads []Upload) ([]string, error) {
	paths := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		stored, err := store.Save(ctx, upload.Name, upload.Reader)
		if err != nil {
			for _, written := range paths {
				_ = store.Delete(ctx, written)
			}
			return nil, err
		}
		paths = append(paths, stored)
	}
	return paths, nil
}

// DeleteAll removes paths, logging failures instead of returning them. It is
// used after a commit, when the rows are already gone and a stray file is
// the only possible damage.
func DeleteAll(ctx context.Context, store FileStore, logger *slog.Logger, paths []string) {
	for _, stored := range paths {
		if stored == "" {
			continue
		}
		if err := store.Delete(ctx, stored); err != nil {
			logger.Warn("stored_file_delete_failed", slog.String("path", stored), slog.Any("error", err))
		}
	}
}

// # Naming

// Extension returns the lower-case extension of name without the dot.
func Extension(name string) string {
	ext := path.Ext(strings.ToLower(strings.TrimSpace(name)))
	return strings.TrimPrefix(ext, ".")
}

// IsAllowed reports whether name carries one of the accepted extensions.
func IsAllowed(name string) bool {
	return slices.Contains(constants.AllowedUploadExtensions, Extension(name))
}

// StoredName builds the relative path for an upload named name.
func StoredName(name string) string {
	ext := Extension(name)
	base := strings.TrimSuffix(filepath.Base(filepath.ToSlash(name)), filepath.Ext(name))

	cleaned := slug.From(base)
	if cleaned == "" {
		cleaned = "file"
	}

	return path.Join(constants.UploadPrefix, uuid.New()+"_"+cleaned+"."+ext)
}

// # Local Disk

// LocalStore writes files below a root directory.
type LocalStore struct {
	root string
}

// NewLocalStore returns a store rooted at root, creating the upload directory.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(root, constants.UploadPrefix), 0o755); err != nil {
		return nil, fmt.Errorf("storage: failed to create upload directory: %w", err)
	}
	return &LocalStore{root: root}, nil
}

// Save implements [FileStore].
func (store *LocalStore) Save(ctx context.Context, name string, reader io.Reader) (string, error) {
	if !IsAllowed(name) {
		return "", apperr.ValidationError(fmt.Sprintf("File type not allowed. Allowed: %s",
			strings.Join(constants.AllowedUploadExtensions, ", ")),
			apperr.FieldError{Field: "file", Message: "Unsupported file extension"})
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	storedPath := StoredName(name)
	fullPath, err := store.resolve(storedPath)
	if err != nil {
		return "", err
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: failed to create %s: %w", storedPath, err)
	}

	if _, err := io.Copy(file, reader); err != nil {
		_ = file.Close()
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("storage: failed to write %s: %w", storedPath, err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("storage: failed to close %s: %w", storedPath, err)
	}

	return storedPath, nil
}

// Handler serves stored files read-only under "/uploads/".
func (store *LocalStore) Handler() http.Handler {
	prefix := "/" + constants.UploadPrefix + "/"
	return http.StripPrefix(prefix, http.FileServer(http.Dir(filepath.Join(store.root, constants.UploadPrefix))))
}

// Delete implements [FileStore].
func (store *LocalStore) Delete(_ context.Context, storedPath string) error {
	if storedPath == "" {
		return nil
	}

	fullPath, err := store.resolve(storedPath)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: failed to delete %s: %w", storedPath, err)
	}
	return nil
}

// resolve maps a stored path to disk, refusing anything outside the upload directory.
func (store *LocalStore) resolve(storedPath string) (string, error) {
	cleaned := path.Clean(filepath.ToSlash(storedPath))
	if !strings.HasPrefix(cleaned, constants.UploadPrefix+"/") {
		return "", apperr.ValidationError("Invalid file path")
	}
	return filepath.Join(store.root, filepath.FromSlash(cleaned)), nil
}

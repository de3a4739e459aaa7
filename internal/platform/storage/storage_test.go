// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/katha/internal/platform/apperr"
	"github.com/taibuivan/katha/internal/platform/storage"
)

func TestIsAllowed(t *testing.T) {
	for name, want := range map[string]bool{
		"page.png":       true,
		"COVER.JPG":      true,
		"script.pdf":     true,
		"anim.gif":       true,
		"payload.exe":    false,
		"noextension":    false,
		"archive.tar.gz": false,
	} {
		assert.Equal(t, want, storage.IsAllowed(name), name)
	}
}

func TestStoredName(t *testing.T) {
	pattern := regexp.MustCompile(`^uploads/[0-9a-f-]{36}_[a-z0-9-]+\.[a-z]+$`)

	name := storage.StoredName("../../Mùa Hè Page 01.PNG")
	assert.Regexp(t, pattern, name)
	assert.True(t, strings.HasSuffix(name, "_mua-he-page-01.png"), name)

	assert.True(t, strings.HasSuffix(storage.StoredName("!!!.jpg"), "_file.jpg"))
	assert.NotEqual(t, storage.StoredName("a.png"), storage.StoredName("a.png"))
}

func TestLocalStore_SaveAndDelete(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewLocalStore(root)
	require.NoError(t, err)

	ctx := context.Background()
	storedPath, err := store.Save(ctx, "page.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(root, storedPath))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))

	require.NoError(t, store.Delete(ctx, storedPath))
	_, err = os.Stat(filepath.Join(root, storedPath))
	assert.True(t, os.IsNotExist(err))

	// Deleting twice is fine.
	assert.NoError(t, store.Delete(ctx, storedPath))
}

func TestLocalStore_Handler(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	storedPath, err := store.Save(context.Background(), "cover.jpg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	store.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/"+storedPath, nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "jpeg-bytes", recorder.Body.String())

	recorder = httptest.NewRecorder()
	store.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/uploads/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestLocalStore_RejectsExtension(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "shell.sh", strings.NewReader("#!"))
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	err = store.Delete(context.Background(), "uploads/../../etc/passwd")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestSaveAll_RollsBackPartialBatch(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewLocalStore(root)
	require.NoError(t, err)

	_, err = storage.SaveAll(context.Background(), store, []storage.Upload{
		{Name: "one.png", Reader: strings.NewReader("1")},
		{Name: "two.exe", Reader: strings.NewReader("2")},
	})
	require.Error(t, err)

	entries, err := os.ReadDir(filepath.Join(root, "uploads"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveAll(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	paths, err := storage.SaveAll(context.Background(), store, []storage.Upload{
		{Name: "one.png", Reader: strings.NewReader("1")},
		{Name: "two.jpg", Reader: strings.NewReader("2")},
	})
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.True(t, strings.HasSuffix(paths[0], "_one.png"))
	assert.True(t, strings.HasSuffix(paths[1], "_two.jpg"))
}

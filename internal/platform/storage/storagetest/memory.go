// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package storagetest provides an in-memory [storage.FileStore] for service tests.
package storagetest

import (
	"context"
	"errors"
	"io"
	"sync"
)

// ErrSaveFailed is returned by [Memory.Save] once FailAfter saves have succeeded.
var ErrSaveFailed = errors.New("storagetest: save failed")

// Memory records every saved and deleted path.
type Memory struct {
	mu sync.Mutex

	// FailAfter makes Save fail after that many successful saves. Zero disables it.
	FailAfter int

	Files   map[string][]byte
	Saved   []string
	Deleted []string
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{Files: map[string][]byte{}}
}

// Save stores the content under "uploads/<name>".
func (memory *Memory) Save(_ context.Context, name string, reader io.Reader) (string, error) {
	memory.mu.Lock()
	defer memory.mu.Unlock()

	if memory.FailAfter > 0 && len(memory.Saved) >= memory.FailAfter {
		return "", ErrSaveFailed
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}

	stored := "uploads/" + name
	memory.Files[stored] = content
	memory.Saved = append(memory.Saved, stored)
	return stored, nil
}

// Delete forgets storedPath.
func (memory *Memory) Delete(_ context.Context, storedPath string) error {
	memory.mu.Lock()
	defer memory.mu.Unlock()

	delete(memory.Files, storedPath)
	memory.Deleted = append(memory.Deleted, storedPath)
	return nil
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pgtest starts a throwaway PostgreSQL container for store integration
tests and migrates it with the real schema.

Tests are skipped under -short and when no container runtime is reachable, so
`go test -short ./...` stays hermetic.
*/
package pgtest

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taibuivan/katha/internal/platform/migration"
	"github.com/taibuivan/katha/internal/platform/postgres"
)

const (
	image    = "postgres:16-alpine"
	user     = "katha"
	password = "katha"
	database = "katha"
)

// Start returns a pool on a freshly migrated database. The container is
// terminated when t finishes.
func Start(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("pgtest: skipping container-backed test in -short mode")
	}

	testcontainers.Logger = log.New(io.Discard, "", 0)
	ctx := context.Background()

	container, err := startContainer(ctx)
	if err != nil {
		t.Skipf("pgtest: container runtime unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("pgtest: terminate failed: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("pgtest: host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("pgtest: mapped port: %v", err)
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port.Port(), database)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if err := migration.RunUp(dsn, migrationsDir(t), logger); err != nil {
		t.Fatalf("pgtest: migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, dsn, logger)
	if err != nil {
		t.Fatalf("pgtest: pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

func startContainer(ctx context.Context) (container testcontainers.Container, err error) {
	// Provider discovery panics on some hosts without a Docker socket.
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("provider panic: %v", recovered)
		}
	}()

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		Started: true,
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     user,
				"POSTGRES_PASSWORD": password,
				"POSTGRES_DB":       database,
			},
			// The server logs readiness twice: once for the init run, once for real.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
	})
}

// migrationsDir walks up from the working directory to the module root.
func migrationsDir(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("pgtest: getwd: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "data", "migrations")
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("pgtest: go.mod not found above %s", dir)
		}
		dir = parent
	}
}

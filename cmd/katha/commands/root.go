// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package commands holds the cobra command tree of the katha CLI.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/taibuivan/katha/internal/platform/config"
	pgstore "github.com/taibuivan/katha/internal/platform/postgres"
)

// app carries what every subcommand shares. The pool is opened on first use,
// so "katha --help" needs no database.
type app struct {
	out     io.Writer
	log     *slog.Logger
	verbose bool

	cfg  *config.DatabaseConfig
	pool *pgxpool.Pool
}

func (a *app) config() (*config.DatabaseConfig, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}

	cfg, err := config.LoadDatabase()
	if err != nil {
		return nil, err
	}
	a.cfg = cfg
	return cfg, nil
}

func (a *app) connect(ctx context.Context) (*pgxpool.Pool, error) {
	if a.pool != nil {
		return a.pool, nil
	}

	cfg, err := a.config()
	if err != nil {
		return nil, err
	}

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, a.log)
	if err != nil {
		return nil, err
	}
	a.pool = pool
	return pool, nil
}

func (a *app) close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// NewRootCommand assembles the full command tree writing reports to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:           "katha",
		Short:         "katha is the operator CLI for the Katha publishing platform.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
				With(slog.String("app", "katha-cli"))
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output to stderr.")

	root.AddCommand(
		newMigrateCommand(a),
		newStatsCommand(a),
		newTrendingCommand(a),
		newTopRatedCommand(a),
		newPublishDueCommand(a),
	)
	return root
}

// ExecuteContext runs the CLI and exits non-zero on failure.
func ExecuteContext(ctx context.Context) {
	if err := NewRootCommand(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

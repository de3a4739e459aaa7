// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/katha/internal/platform/migration"
)

func newMigrateCommand(a *app) *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Applies, rolls back or inspects the database schema.",
	}

	// withRunner opens a migration runner for the duration of run.
	withRunner := func(run func(runner *migration.Runner) error) error {
		cfg, err := a.config()
		if err != nil {
			return err
		}

		runner, err := migration.New(cfg.DatabaseURL, cfg.MigrationPath, a.log)
		if err != nil {
			return err
		}
		defer runner.Close()

		return run(runner)
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Applies every pending migration.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRunner(func(runner *migration.Runner) error {
				if err := runner.Up(); err != nil {
					return err
				}
				return printVersion(a, runner)
			})
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down [--steps n]",
		Short: "Rolls back the most recent migrations.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRunner(func(runner *migration.Runner) error {
				if err := runner.Down(steps); err != nil {
					return err
				}
				return printVersion(a, runner)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back.")

	version := &cobra.Command{
		Use:   "version",
		Short: "Prints the applied schema version.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRunner(func(runner *migration.Runner) error {
				return printVersion(a, runner)
			})
		},
	}

	migrate.AddCommand(up, down, version)
	return migrate
}

func printVersion(a *app, runner *migration.Runner) error {
	version, dirty, err := runner.Version()
	if err != nil {
		return err
	}

	if dirty {
		_, err = fmt.Fprintf(a.out, "schema version %d (dirty)\n", version)
		return err
	}
	_, err = fmt.Fprintf(a.out, "schema version %d\n", version)
	return err
}

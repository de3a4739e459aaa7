// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/katha/internal/core/chapter"
	"github.com/taibuivan/katha/internal/core/comic"
	"github.com/taibuivan/katha/internal/platform/ctxutil"
)

func newPublishDueCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "publish-due",
		Short: "Publishes every chapter whose scheduled time has passed.",
		Long: "Publishes every chapter whose scheduled time has passed. Safe to run " +
			"repeatedly, e.g. from cron.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}

			// Publishing reads and writes rows only; no file store is needed.
			comics := comic.NewService(comic.NewRepository(pool), nil)
			service := chapter.NewService(chapter.NewRepository(pool), comics, nil)

			ctx := ctxutil.WithLogger(cmd.Context(), a.log)
			count, err := service.PublishDue(ctx)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(a.out, "published %d scheduled chapter(s)\n", count)
			return err
		},
	}
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/taibuivan/katha/internal/analytics"
	"github.com/taibuivan/katha/internal/platform/constants"
)

// # Commands

func (a *app) analytics(ctx context.Context) (*analytics.Service, error) {
	pool, err := a.connect(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.NewService(analytics.NewRepository(pool), constants.TrendingWindowDays), nil
}

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Prints platform totals and the genre distribution.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := a.analytics(cmd.Context())
			if err != nil {
				return err
			}

			overview, err := service.PlatformOverview(cmd.Context())
			if err != nil {
				return err
			}
			genres, err := service.GenreDistribution(cmd.Context())
			if err != nil {
				return err
			}

			renderOverview(a.out, overview)
			renderGenres(a.out, genres)
			return nil
		},
	}
}

func newTrendingCommand(a *app) *cobra.Command {
	var days, limit int

	trending := &cobra.Command{
		Use:   "trending [--days n] [--limit n]",
		Short: "Ranks published comics by views over the trailing window.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := a.analytics(cmd.Context())
			if err != nil {
				return err
			}

			list, err := service.Trending(cmd.Context(), days, limit)
			if err != nil {
				return err
			}

			renderSummaries(a.out, fmt.Sprintf("Trending (last %d days)", days), list, true)
			return nil
		},
	}
	trending.Flags().IntVar(&days, "days", constants.TrendingWindowDays, "Size of the view window in days.")
	trending.Flags().IntVar(&limit, "limit", constants.TrendingLimit, "Maximum number of comics.")
	return trending
}

func newTopRatedCommand(a *app) *cobra.Command {
	var limit int

	topRated := &cobra.Command{
		Use:   "top-rated [--limit n]",
		Short: "Ranks published comics by accumulated rating total.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := a.analytics(cmd.Context())
			if err != nil {
				return err
			}

			list, err := service.TopRated(cmd.Context(), limit)
			if err != nil {
				return err
			}

			renderSummaries(a.out, "Top rated", list, false)
			return nil
		},
	}
	topRated.Flags().IntVar(&limit, "limit", constants.TopRatedLimit, "Maximum number of comics.")
	return topRated
}

// # Rendering

func newTable(out io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	t.SetTitle(title)
	return t
}

func renderOverview(out io.Writer, overview analytics.Overview) {
	t := newTable(out, "Platform")
	t.AppendHeader(table.Row{"Metric", "Total"})
	t.AppendRows([]table.Row{
		{"Comics", overview.TotalComics},
		{"Users", overview.TotalUsers},
		{"Artists", overview.TotalArtists},
		{"Views", overview.TotalViews},
	})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.Render()
}

func renderGenres(out io.Writer, genres []analytics.GenreStat) {
	t := newTable(out, "Genres")
	t.AppendHeader(table.Row{"Genre", "Comics", "Avg rating"})
	for _, genre := range genres {
		t.AppendRow(table.Row{genre.Genre, genre.Count, fmt.Sprintf("%.1f", genre.AvgRating)})
	}
	t.Render()
}

// renderSummaries prints a ranking. withWindow adds the views counted inside
// the trending window.
func renderSummaries(out io.Writer, title string, list []analytics.ComicSummary, withWindow bool) {
	t := newTable(out, title)

	header := table.Row{"#", "Title", "Genre", "Views", "Rating", "Votes"}
	if withWindow {
		header = append(header, "Window views")
	}
	t.AppendHeader(header)

	for i, comic := range list {
		row := table.Row{i + 1, comic.Title, comic.Genre, comic.TotalViews,
			fmt.Sprintf("%.1f", comic.AverageRating), comic.RatingCount}
		if withWindow {
			row = append(row, comic.WindowViews)
		}
		t.AppendRow(row)
	}
	if len(list) == 0 {
		t.AppendFooter(table.Row{"", "no comics"})
	}
	t.Render()
}

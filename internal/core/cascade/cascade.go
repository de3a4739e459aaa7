// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cascade removes content trees inside a caller-owned transaction.

Foreign keys in the schema do not cascade, so every dependent row is deleted
explicitly, leaves first. The functions return the stored file paths (covers
and page images) that belonged to the removed rows so the caller can delete
the files once the transaction has committed.

View log rows are never touched.
*/
package cascade

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// DeleteChapters removes chapters with their comments, ratings and pages.
//
// Returns the image paths of the removed pages.
func DeleteChapters(ctx context.Context, transaction pgx.Tx, chapterIDs []string) ([]string, error) {
	if len(chapterIDs) == 0 {
		return nil, nil
	}

	if _, err := transaction.Exec(ctx, `DELETE FROM social.comment WHERE chapterid = ANY($1::uuid[])`, chapterIDs); err != nil {
		return nil, fmt.Errorf("postgres: failed to delete chapter comments: %w", err)
	}

	if _, err := transaction.Exec(ctx, `DELETE FROM social.chapterrating WHERE chapterid = ANY($1::uuid[])`, chapterIDs); err != nil {
		return nil, fmt.Errorf("postgres: failed to delete chapter ratings: %w", err)
	}

	rows, err := transaction.Query(ctx, `DELETE FROM core.page WHERE chapterid = ANY($1::uuid[]) RETURNING imagepath`, chapterIDs)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to delete pages: %w", err)
	}
	paths, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to collect page paths: %w", err)
	}

	if _, err := transaction.Exec(ctx, `DELETE FROM core.chapter WHERE id = ANY($1::uuid[])`, chapterIDs); err != nil {
		return nil, fmt.Errorf("postgres: failed to delete chapters: %w", err)
	}

	return paths, nil
}

// DeleteComics removes comics with their chapters (see [DeleteChapters]),
// ratings and follows.
//
// Returns the page image and cover paths of everything removed.
func DeleteComics(ctx context.Context, transaction pgx.Tx, comicIDs []string) ([]string, error) {
	if len(comicIDs) == 0 {
		return nil, nil
	}

	rows, err := transaction.Query(ctx, `SELECT id::text FROM core.chapter WHERE comicid = ANY($1::uuid[])`, comicIDs)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list chapters: %w", err)
	}
	chapterIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to collect chapter ids: %w", err)
	}

	paths, err := DeleteChapters(ctx, transaction, chapterIDs)
	if err != nil {
		return nil, err
	}

	if _, err := transaction.Exec(ctx, `DELETE FROM social.comicrating WHERE comicid = ANY($1::uuid[])`, comicIDs); err != nil {
		return nil, fmt.Errorf("postgres: failed to delete comic ratings: %w", err)
	}

	if _, err := transaction.Exec(ctx, `DELETE FROM social.comicfollow WHERE comicid = ANY($1::uuid[])`, comicIDs); err != nil {
		return nil, fmt.Errorf("postgres: failed to delete comic follows: %w", err)
	}

	rows, err = transaction.Query(ctx, `DELETE FROM core.comic WHERE id = ANY($1::uuid[]) RETURNING coverpath`, comicIDs)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to delete comics: %w", err)
	}
	covers, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to collect cover paths: %w", err)
	}

	for _, cover := range covers {
		if cover != "" {
			paths = append(paths, cover)
		}
	}
	return paths, nil
}

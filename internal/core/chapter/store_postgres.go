// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/katha/internal/core/cascade"
	"github.com/taibuivan/katha/internal/core/rating"
	"github.com/taibuivan/katha/internal/platform/database/schema"
	"github.com/taibuivan/katha/internal/platform/dberr"
	"github.com/taibuivan/katha/internal/platform/postgres"
	"github.com/taibuivan/katha/pkg/uuid"
)

// # PostgreSQL Repository

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed chapter [Repository].
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

var (
	chapters = schema.CoreChapter
	pages    = schema.CorePage
	comments = schema.SocialComment
	views    = schema.LibraryViewLog
	comics   = schema.CoreComic
	accounts = schema.UserAccount
)

var selectChapter = fmt.Sprintf(`SELECT %s FROM %s`, schema.Select("", chapters.Columns()), chapters.Table)

func scanChapter(row pgx.Row) (*Chapter, error) {
	chapter := &Chapter{}
	err := row.Scan(
		&chapter.ID,
		&chapter.ComicID,
		&chapter.Title,
		&chapter.Number,
		&chapter.IsPublished,
		&chapter.ScheduledPublish,
		&chapter.PublishedAt,
		&chapter.TotalViews,
		&chapter.TotalRating,
		&chapter.RatingCount,
		&chapter.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	chapter.refreshAverage()
	return chapter, nil
}

// # Chapter Lifecycle

func (repository *repository) Create(context context.Context, chapter *Chapter) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		chapters.Table, schema.Select("", chapters.Columns()))

	chapter.CreatedAt = time.Now().UTC()

	_, err := repository.pool.Exec(context, query,
		chapter.ID,
		chapter.ComicID,
		chapter.Title,
		chapter.Number,
		chapter.IsPublished,
		chapter.ScheduledPublish,
		chapter.PublishedAt,
		chapter.TotalViews,
		chapter.TotalRating,
		chapter.RatingCount,
		chapter.CreatedAt,
	)
	return dberr.Wrap(err, "Chapter", "create chapter")
}

func (repository *repository) FindByID(context context.Context, id string) (*Chapter, error) {
	chapter, err := scanChapter(repository.pool.QueryRow(context, selectChapter+fmt.Sprintf(` WHERE %s = $1`, chapters.ID), id))
	if err != nil {
		return nil, dberr.Wrap(err, "Chapter", "find chapter")
	}
	return chapter, nil
}

func (repository *repository) ListByComic(context context.Context, comicID string, publishedOnly bool) ([]*Chapter, error) {
	query := selectChapter + fmt.Sprintf(` WHERE %s = $1`, chapters.ComicID)
	if publishedOnly {
		query += fmt.Sprintf(` AND %s`, chapters.IsPublished)
	}
	query += fmt.Sprintf(` ORDER BY %s ASC`, chapters.ChapterNumber)

	rows, err := repository.pool.Query(context, query, comicID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list chapters: %w", err)
	}
	defer rows.Close()

	list := []*Chapter{}
	for rows.Next() {
		chapter, err := scanChapter(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan chapter: %w", err)
		}
		list = append(list, chapter)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate chapters: %w", err)
	}
	return list, nil
}

func (repository *repository) Update(context context.Context, chapter *Chapter) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1`,
		chapters.Table,
		chapters.Title, chapters.IsPublished, chapters.ScheduledPublish, chapters.PublishedAt,
		chapters.ID)

	tag, err := repository.pool.Exec(context, query,
		chapter.ID, chapter.Title, chapter.IsPublished, chapter.ScheduledPublish, chapter.PublishedAt)
	if err != nil {
		return dberr.Wrap(err, "Chapter", "update chapter")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Chapter", "update chapter")
	}
	return nil
}

func (repository *repository) Delete(context context.Context, id string) ([]string, error) {
	var paths []string
	err := postgres.InTx(context, repository.pool, func(transaction pgx.Tx) error {
		var err error
		paths, err = cascade.DeleteChapters(context, transaction, []string{id})
		return err
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// # Pages

func (repository *repository) ListPages(context context.Context, chapterID string) ([]*Page, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		schema.Select("", pages.Columns()), pages.Table, pages.ChapterID, pages.PageNumber)

	rows, err := repository.pool.Query(context, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list pages: %w", err)
	}

	list, err := pgx.CollectRows(rows, scanPage)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to collect pages: %w", err)
	}
	return list, nil
}

func scanPage(row pgx.CollectableRow) (*Page, error) {
	page := &Page{}
	err := row.Scan(&page.ID, &page.ChapterID, &page.Number, &page.ImagePath, &page.CreatedAt)
	return page, err
}

/*
AddPages numbers the new pages after the existing ones and inserts them in
one batch.

Description: Locking the chapter row serialises concurrent uploads, so two
requests never compute the same next number.
*/
func (repository *repository) AddPages(context context.Context, chapterID string, paths []string) ([]*Page, error) {
	if len(paths) == 0 {
		return []*Page{}, nil
	}

	added := make([]*Page, 0, len(paths))
	err := postgres.InTx(context, repository.pool, func(transaction pgx.Tx) error {
		var locked int
		err := transaction.QueryRow(context,
			fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = $1 FOR UPDATE`, chapters.Table, chapters.ID),
			chapterID).Scan(&locked)
		if err != nil {
			return dberr.Wrap(err, "Chapter", "lock chapter")
		}

		var count int
		err = transaction.QueryRow(context,
			fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, pages.Table, pages.ChapterID),
			chapterID).Scan(&count)
		if err != nil {
			return fmt.Errorf("postgres: failed to count pages: %w", err)
		}

		now := time.Now().UTC()
		batch := &pgx.Batch{}
		for i, path := range paths {
			page := &Page{ID: uuid.New(), ChapterID: chapterID, Number: count + i + 1, ImagePath: path, CreatedAt: now}
			added = append(added, page)
			batch.Queue(fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5)`,
				pages.Table, schema.Select("", pages.Columns())),
				page.ID, page.ChapterID, page.Number, page.ImagePath, page.CreatedAt)
		}

		results := transaction.SendBatch(context, batch)
		for i := range paths {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				return fmt.Errorf("postgres: failed to batch insert page %d: %w", i, err)
			}
		}
		return results.Close()
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func (repository *repository) FindPage(context context.Context, id string) (*Page, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, schema.Select("", pages.Columns()), pages.Table, pages.ID)

	rows, err := repository.pool.Query(context, query, id)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to find page: %w", err)
	}

	page, err := pgx.CollectExactlyOneRow(rows, scanPage)
	if err != nil {
		return nil, dberr.Wrap(err, "Page", "find page")
	}
	return page, nil
}

func (repository *repository) DeletePage(context context.Context, id string) error {
	tag, err := repository.pool.Exec(context, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, pages.Table, pages.ID), id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete page: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Page", "delete page")
	}
	return nil
}

// # Engagement

/*
RecordView appends the view log row and increments the counters in one
transaction.

Description: Counters use in-place increments so concurrent readers never
lose a view.
*/
func (repository *repository) RecordView(context context.Context, view View) error {
	return postgres.InTx(context, repository.pool, func(transaction pgx.Tx) error {
		_, err := transaction.Exec(context,
			fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
				views.Table, views.ID, views.UserID, views.ComicID, views.ChapterID, views.IPAddress, views.UserAgent, views.ViewedAt),
			uuid.New(), view.UserID, view.ComicID, view.ChapterID, view.IPAddress, view.UserAgent)
		if err != nil {
			return fmt.Errorf("postgres: failed to insert view log: %w", err)
		}

		if view.ChapterID != nil {
			_, err = transaction.Exec(context,
				fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`, chapters.Table, chapters.TotalViews, chapters.TotalViews, chapters.ID),
				*view.ChapterID)
			if err != nil {
				return fmt.Errorf("postgres: failed to increment chapter views: %w", err)
			}
		}

		_, err = transaction.Exec(context,
			fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`, comics.Table, comics.TotalViews, comics.TotalViews, comics.ID),
			view.ComicID)
		if err != nil {
			return fmt.Errorf("postgres: failed to increment comic views: %w", err)
		}
		return nil
	})
}

func (repository *repository) Rate(context context.Context, userID, chapterID string, score int) (rating.Result, error) {
	var result rating.Result
	err := postgres.InTx(context, repository.pool, func(transaction pgx.Tx) error {
		var err error
		result, err = rating.Upsert(context, transaction, rating.Chapter, userID, chapterID, score)
		return err
	})
	return result, err
}

func (repository *repository) UserRating(context context.Context, userID, chapterID string) (*int, error) {
	return rating.UserScore(context, repository.pool, rating.Chapter, userID, chapterID)
}

// # Comments

var selectComment = fmt.Sprintf(`
	SELECT %s, u.%s
	FROM %s m
	JOIN %s u ON u.%s = m.%s`,
	schema.Select("m", comments.Columns()), accounts.Username,
	comments.Table,
	accounts.Table, accounts.ID, comments.UserID)

func scanComment(row pgx.Row, comment *Comment, extra ...any) error {
	return row.Scan(append([]any{
		&comment.ID,
		&comment.UserID,
		&comment.ChapterID,
		&comment.Content,
		&comment.IsEdited,
		&comment.CreatedAt,
		&comment.UpdatedAt,
		&comment.Username,
	}, extra...)...)
}

func (repository *repository) CreateComment(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		WITH inserted AS (
			INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, FALSE, NOW(), NOW())
			RETURNING %s, %s
		)
		SELECT i.%s, i.%s, u.%s FROM inserted i JOIN %s u ON u.%s = $2`,
		comments.Table, schema.Select("", comments.Columns()),
		comments.CreatedAt, comments.UpdatedAt,
		comments.CreatedAt, comments.UpdatedAt, accounts.Username, accounts.Table, accounts.ID)

	err := repository.pool.QueryRow(context, query, comment.ID, comment.UserID, comment.ChapterID, comment.Content).
		Scan(&comment.CreatedAt, &comment.UpdatedAt, &comment.Username)
	return dberr.Wrap(err, "Comment", "create comment")
}

func (repository *repository) FindComment(context context.Context, id string) (*Comment, error) {
	comment := &Comment{}
	if err := scanComment(repository.pool.QueryRow(context, selectComment+fmt.Sprintf(` WHERE m.%s = $1`, comments.ID), id), comment); err != nil {
		return nil, dberr.Wrap(err, "Comment", "find comment")
	}
	return comment, nil
}

func (repository *repository) UpdateComment(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = NOW() WHERE %s = $1 RETURNING %s`,
		comments.Table, comments.Content, comments.IsEdited, comments.UpdatedAt, comments.ID, comments.UpdatedAt)

	err := repository.pool.QueryRow(context, query, comment.ID, comment.Content, comment.IsEdited).Scan(&comment.UpdatedAt)
	return dberr.Wrap(err, "Comment", "update comment")
}

func (repository *repository) DeleteComment(context context.Context, id string) error {
	tag, err := repository.pool.Exec(context, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, comments.Table, comments.ID), id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Comment", "delete comment")
	}
	return nil
}

func (repository *repository) ListComments(context context.Context, chapterID string, limit, offset int) ([]*Comment, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, u.%s, COUNT(*) OVER()
		FROM %s m
		JOIN %s u ON u.%s = m.%s
		WHERE m.%s = $1
		ORDER BY m.%s DESC, m.%s DESC
		LIMIT $2 OFFSET $3`,
		schema.Select("m", comments.Columns()), accounts.Username,
		comments.Table,
		accounts.Table, accounts.ID, comments.UserID,
		comments.ChapterID,
		comments.CreatedAt, comments.ID)

	rows, err := repository.pool.Query(context, query, chapterID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list comments: %w", err)
	}
	defer rows.Close()

	list := []*Comment{}
	total := 0
	for rows.Next() {
		comment := &Comment{}
		if err := scanComment(rows, comment, &total); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan comment: %w", err)
		}
		list = append(list, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to iterate comments: %w", err)
	}
	return list, total, nil
}

func (repository *repository) ListAllComments(context context.Context, limit, offset int) ([]*ModeratedComment, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, u.%s, ch.%s, co.%s, co.%s, COUNT(*) OVER()
		FROM %s m
		JOIN %s u ON u.%s = m.%s
		JOIN %s ch ON ch.%s = m.%s
		JOIN %s co ON co.%s = ch.%s
		ORDER BY m.%s DESC, m.%s DESC
		LIMIT $1 OFFSET $2`,
		schema.Select("m", comments.Columns()), accounts.Username, chapters.Title, comics.ID, comics.Title,
		comments.Table,
		accounts.Table, accounts.ID, comments.UserID,
		chapters.Table, chapters.ID, comments.ChapterID,
		comics.Table, comics.ID, chapters.ComicID,
		comments.CreatedAt, comments.ID)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list all comments: %w", err)
	}
	defer rows.Close()

	list := []*ModeratedComment{}
	total := 0
	for rows.Next() {
		entry := &ModeratedComment{}
		if err := scanComment(rows, &entry.Comment, &entry.ChapterTitle, &entry.ComicID, &entry.ComicTitle, &total); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan comment: %w", err)
		}
		list = append(list, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to iterate comments: %w", err)
	}
	return list, total, nil
}

// # Scheduling

var selectSchedule = fmt.Sprintf(`
	SELECT ch.%s, ch.%s, ch.%s, co.%s, co.%s, ch.%s, ch.%s
	FROM %s ch
	JOIN %s co ON co.%s = ch.%s`,
	chapters.ID, chapters.Title, chapters.ChapterNumber, comics.ID, comics.Title, chapters.ScheduledPublish, chapters.PublishedAt,
	chapters.Table,
	comics.Table, comics.ID, chapters.ComicID)

func (repository *repository) schedule(context context.Context, query string, args ...any) ([]ScheduleEntry, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to load schedule: %w", err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ScheduleEntry, error) {
		var entry ScheduleEntry
		err := row.Scan(&entry.ChapterID, &entry.ChapterTitle, &entry.Number, &entry.ComicID, &entry.ComicTitle,
			&entry.ScheduledPublish, &entry.PublishedAt)
		return entry, err
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to collect schedule: %w", err)
	}
	return entries, nil
}

func (repository *repository) Upcoming(context context.Context, authorID string, now time.Time) ([]ScheduleEntry, error) {
	return repository.schedule(context, selectSchedule+fmt.Sprintf(`
		WHERE co.%s = $1 AND ch.%s IS NOT NULL AND ch.%s > $2
		ORDER BY ch.%s ASC`,
		comics.AuthorID, chapters.ScheduledPublish, chapters.ScheduledPublish, chapters.ScheduledPublish),
		authorID, now)
}

func (repository *repository) RecentlyPublished(context context.Context, authorID string, limit int) ([]ScheduleEntry, error) {
	return repository.schedule(context, selectSchedule+fmt.Sprintf(`
		WHERE co.%s = $1 AND ch.%s IS NOT NULL
		ORDER BY ch.%s DESC
		LIMIT $2`,
		comics.AuthorID, chapters.PublishedAt, chapters.PublishedAt),
		authorID, limit)
}

// PublishDue stamps published_at with the scheduled time, not the time the
// job happened to run.
func (repository *repository) PublishDue(context context.Context, now time.Time) ([]string, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = TRUE, %s = COALESCE(%s, %s)
		WHERE NOT %s AND %s IS NOT NULL AND %s <= $1
		RETURNING %s::text`,
		chapters.Table, chapters.IsPublished, chapters.PublishedAt, chapters.PublishedAt, chapters.ScheduledPublish,
		chapters.IsPublished, chapters.ScheduledPublish, chapters.ScheduledPublish,
		chapters.ID)

	rows, err := repository.pool.Query(context, query, now)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to publish due chapters: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to collect published chapters: %w", err)
	}
	return ids, nil
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter_test

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/katha/internal/analytics"
	"github.com/taibuivan/katha/internal/core/chapter"
	"github.com/taibuivan/katha/internal/core/comic"
	"github.com/taibuivan/katha/internal/core/rating"
	"github.com/taibuivan/katha/internal/platform/apperr"
	"github.com/taibuivan/katha/internal/platform/sec"
	"github.com/taibuivan/katha/internal/platform/storage"
	"github.com/taibuivan/katha/internal/platform/storage/storagetest"
	"github.com/taibuivan/katha/pkg/pagination"
	"github.com/taibuivan/katha/pkg/pointer"
	"github.com/taibuivan/katha/pkg/uuid"
)

// # Fakes

type stubComics struct {
	comics map[string]*comic.Comic
}

func (stub *stubComics) Visible(_ context.Context, viewer sec.Principal, id string) (*comic.Comic, error) {
	found, ok := stub.comics[id]
	if !ok || (!found.IsPublished && found.AuthorID != viewer.UserID && !viewer.IsAdmin()) {
		return nil, apperr.NotFound("Comic")
	}
	return found, nil
}

func (stub *stubComics) Owned(_ context.Context, actorID, id string) (*comic.Comic, error) {
	found, ok := stub.comics[id]
	if !ok {
		return nil, apperr.NotFound("Comic")
	}
	if found.AuthorID != actorID {
		return nil, apperr.NotOwner("comic")
	}
	return found, nil
}

type memoryRepository struct {
	chapters     map[string]*chapter.Chapter
	pages        map[string]*chapter.Page
	comments     map[string]*chapter.Comment
	scores       map[string]int
	views        []chapter.View
	deletedPaths []string
	failAddPages bool
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		chapters: map[string]*chapter.Chapter{},
		pages:    map[string]*chapter.Page{},
		comments: map[string]*chapter.Comment{},
		scores:   map[string]int{},
	}
}

func (repo *memoryRepository) Create(_ context.Context, c *chapter.Chapter) error {
	for _, existing := range repo.chapters {
		if existing.ComicID == c.ComicID && existing.Number == c.Number {
			return apperr.Duplicate(chapter.FieldNumber, "Chapter number already exists for this comic")
		}
	}
	copied := *c
	copied.CreatedAt = time.Now()
	repo.chapters[c.ID] = &copied
	return nil
}

func (repo *memoryRepository) FindByID(_ context.Context, id string) (*chapter.Chapter, error) {
	if c, ok := repo.chapters[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, apperr.NotFound("Chapter")
}

func (repo *memoryRepository) ListByComic(_ context.Context, comicID string, publishedOnly bool) ([]*chapter.Chapter, error) {
	list := []*chapter.Chapter{}
	for _, c := range repo.chapters {
		if c.ComicID == comicID && (!publishedOnly || c.IsPublished) {
			list = append(list, c)
		}
	}
	slices.SortFunc(list, func(a, b *chapter.Chapter) int { return cmp.Compare(a.Number, b.Number) })
	return list, nil
}

func (repo *memoryRepository) Update(_ context.Context, c *chapter.Chapter) error {
	copied := *c
	repo.chapters[c.ID] = &copied
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, id string) ([]string, error) {
	delete(repo.chapters, id)
	return repo.deletedPaths, nil
}

func (repo *memoryRepository) ListPages(_ context.Context, chapterID string) ([]*chapter.Page, error) {
	list := []*chapter.Page{}
	for _, p := range repo.pages {
		if p.ChapterID == chapterID {
			list = append(list, p)
		}
	}
	slices.SortFunc(list, func(a, b *chapter.Page) int { return cmp.Compare(a.Number, b.Number) })
	return list, nil
}

func (repo *memoryRepository) AddPages(ctx context.Context, chapterID string, paths []string) ([]*chapter.Page, error) {
	if repo.failAddPages {
		return nil, apperr.Internal(nil)
	}
	existing, _ := repo.ListPages(ctx, chapterID)
	added := make([]*chapter.Page, 0, len(paths))
	for i, path := range paths {
		page := &chapter.Page{ID: uuid.New(), ChapterID: chapterID, Number: len(existing) + i + 1, ImagePath: path}
		repo.pages[page.ID] = page
		added = append(added, page)
	}
	return added, nil
}

func (repo *memoryRepository) FindPage(_ context.Context, id string) (*chapter.Page, error) {
	if p, ok := repo.pages[id]; ok {
		return p, nil
	}
	return nil, apperr.NotFound("Page")
}

func (repo *memoryRepository) DeletePage(_ context.Context, id string) error {
	delete(repo.pages, id)
	return nil
}

func (repo *memoryRepository) RecordView(_ context.Context, view chapter.View) error {
	repo.views = append(repo.views, view)
	if view.ChapterID != nil {
		repo.chapters[*view.ChapterID].TotalViews++
	}
	return nil
}

func (repo *memoryRepository) Rate(_ context.Context, userID, chapterID string, score int) (rating.Result, error) {
	c := repo.chapters[chapterID]
	key := userID + "/" + chapterID

	var previous *int
	if old, ok := repo.scores[key]; ok {
		previous = &old
	}
	totalDelta, countDelta := analytics.RatingDelta(previous, score)
	repo.scores[key] = score
	c.TotalRating += totalDelta
	c.RatingCount += countDelta

	return rating.Result{
		Score:         score,
		Updated:       previous != nil,
		TotalRating:   c.TotalRating,
		RatingCount:   c.RatingCount,
		AverageRating: analytics.AverageRating(c.TotalRating, c.RatingCount),
	}, nil
}

func (repo *memoryRepository) UserRating(_ context.Context, userID, chapterID string) (*int, error) {
	if score, ok := repo.scores[userID+"/"+chapterID]; ok {
		return &score, nil
	}
	return nil, nil
}

func (repo *memoryRepository) CreateComment(_ context.Context, comment *chapter.Comment) error {
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	copied := *comment
	repo.comments[comment.ID] = &copied
	return nil
}

func (repo *memoryRepository) FindComment(_ context.Context, id string) (*chapter.Comment, error) {
	if c, ok := repo.comments[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, apperr.NotFound("Comment")
}

func (repo *memoryRepository) UpdateComment(_ context.Context, comment *chapter.Comment) error {
	copied := *comment
	repo.comments[comment.ID] = &copied
	return nil
}

func (repo *memoryRepository) DeleteComment(_ context.Context, id string) error {
	delete(repo.comments, id)
	return nil
}

func (repo *memoryRepository) ListComments(_ context.Context, chapterID string, limit, offset int) ([]*chapter.Comment, int, error) {
	list := []*chapter.Comment{}
	for _, c := range repo.comments {
		if c.ChapterID == chapterID {
			list = append(list, c)
		}
	}
	total := len(list)
	start := min(offset, total)
	return list[start:min(start+limit, total)], total, nil
}

func (repo *memoryRepository) ListAllComments(_ context.Context, limit, offset int) ([]*chapter.ModeratedComment, int, error) {
	list := []*chapter.ModeratedComment{}
	for _, c := range repo.comments {
		list = append(list, &chapter.ModeratedComment{Comment: *c, ChapterTitle: repo.chapters[c.ChapterID].Title})
	}
	total := len(list)
	start := min(offset, total)
	return list[start:min(start+limit, total)], total, nil
}

func (repo *memoryRepository) Upcoming(_ context.Context, _ string, now time.Time) ([]chapter.ScheduleEntry, error) {
	entries := []chapter.ScheduleEntry{}
	for _, c := range repo.chapters {
		if c.ScheduledPublish != nil && c.ScheduledPublish.After(now) {
			entries = append(entries, chapter.ScheduleEntry{ChapterID: c.ID, ChapterTitle: c.Title, ScheduledPublish: c.ScheduledPublish})
		}
	}
	return entries, nil
}

func (repo *memoryRepository) RecentlyPublished(_ context.Context, _ string, limit int) ([]chapter.ScheduleEntry, error) {
	entries := []chapter.ScheduleEntry{}
	for _, c := range repo.chapters {
		if c.PublishedAt != nil && len(entries) < limit {
			entries = append(entries, chapter.ScheduleEntry{ChapterID: c.ID, ChapterTitle: c.Title, PublishedAt: c.PublishedAt})
		}
	}
	return entries, nil
}

func (repo *memoryRepository) PublishDue(_ context.Context, now time.Time) ([]string, error) {
	var ids []string
	for _, c := range repo.chapters {
		if !c.IsPublished && c.ScheduledPublish != nil && !c.ScheduledPublish.After(now) {
			c.IsPublished = true
			c.PublishedAt = c.ScheduledPublish
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

// # Fixture

const (
	authorID = "0190a000-0000-7000-8000-000000000001"
	readerID = "0190a000-0000-7000-8000-000000000002"
	adminID  = "0190a000-0000-7000-8000-000000000003"
	liveID   = "0190a000-0000-7000-8000-0000000000c1"
	draftID  = "0190a000-0000-7000-8000-0000000000c2"
)

var (
	author = sec.Principal{UserID: authorID, Role: sec.RoleMember, IsArtist: true}
	reader = sec.Principal{UserID: readerID, Role: sec.RoleMember}
	admin  = sec.Principal{UserID: adminID, Role: sec.RoleAdmin}
)

type fixture struct {
	repo    *memoryRepository
	files   *storagetest.Memory
	service *chapter.Service
}

func newFixture() *fixture {
	comics := &stubComics{comics: map[string]*comic.Comic{
		liveID:  {ID: liveID, AuthorID: authorID, Title: "Live", IsPublished: true},
		draftID: {ID: draftID, AuthorID: authorID, Title: "Draft"},
	}}
	f := &fixture{repo: newMemoryRepository(), files: storagetest.NewMemory()}
	f.service = chapter.NewService(f.repo, comics, f.files)
	return f
}

func (f *fixture) create(t *testing.T, comicID, number, scheduled string) *chapter.Chapter {
	t.Helper()

	created, err := f.service.Create(context.Background(), authorID, comicID, chapter.CreateInput{
		Title:            "Chapter " + number,
		Number:           number,
		ScheduledPublish: scheduled,
	})
	require.NoError(t, err)
	return created
}

func upload(name string) storage.Upload {
	return storage.Upload{Name: name, Reader: strings.NewReader(name)}
}

// # Lifecycle

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("published_immediately", func(t *testing.T) {
		f := newFixture()
		created := f.create(t, liveID, "1.5", "")

		assert.Equal(t, 1.5, created.Number)
		assert.True(t, created.IsPublished)
		require.NotNil(t, created.PublishedAt)
		assert.Nil(t, created.ScheduledPublish)
	})

	t.Run("scheduled_stays_unpublished", func(t *testing.T) {
		f := newFixture()
		created := f.create(t, liveID, "2", "2030-01-02 15:04")

		assert.False(t, created.IsPublished)
		assert.Nil(t, created.PublishedAt)
		require.NotNil(t, created.ScheduledPublish)
		assert.Equal(t, time.Date(2030, 1, 2, 15, 4, 0, 0, time.UTC), *created.ScheduledPublish)
	})

	t.Run("zero_is_a_prologue", func(t *testing.T) {
		f := newFixture()
		created := f.create(t, liveID, "0", "")

		assert.Zero(t, created.Number)
	})

	t.Run("duplicate_number", func(t *testing.T) {
		f := newFixture()
		f.create(t, liveID, "1", "")

		_, err := f.service.Create(ctx, authorID, liveID, chapter.CreateInput{Title: "Again", Number: "1.0"})
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		assert.Len(t, f.repo.chapters, 1)
	})

	t.Run("not_owner", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.Create(ctx, readerID, liveID, chapter.CreateInput{Title: "Mine", Number: "1"})
		assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
	})

	invalid := []struct {
		name  string
		input chapter.CreateInput
		field string
	}{
		{"missing_title", chapter.CreateInput{Number: "1"}, chapter.FieldTitle},
		{"missing_number", chapter.CreateInput{Title: "T"}, chapter.FieldNumber},
		{"malformed_number", chapter.CreateInput{Title: "T", Number: "one"}, chapter.FieldNumber},
		{"negative_number", chapter.CreateInput{Title: "T", Number: "-1"}, chapter.FieldNumber},
		{"infinite_number", chapter.CreateInput{Title: "T", Number: "Inf"}, chapter.FieldNumber},
		{"malformed_schedule", chapter.CreateInput{Title: "T", Number: "1", ScheduledPublish: "tomorrow"}, chapter.FieldScheduledPublish},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.service.Create(ctx, authorID, liveID, tt.input)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperr.CodeValidation, appErr.Code)
			require.NotEmpty(t, appErr.Details)
			assert.Equal(t, tt.field, appErr.Details[0].Field)
		})
	}
}

func TestService_Visibility(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	published := f.create(t, liveID, "1", "")
	scheduled := f.create(t, liveID, "2", "2030-01-01 00:00")
	hidden := f.create(t, draftID, "1", "")

	list, err := f.service.List(ctx, reader, liveID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, published.ID, list[0].ID)

	list, err = f.service.List(ctx, author, liveID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = f.service.Get(ctx, reader, liveID, scheduled.ID)
	assert.True(t, apperr.IsNotFound(err))

	_, err = f.service.Get(ctx, admin, liveID, scheduled.ID)
	assert.NoError(t, err)

	_, err = f.service.Get(ctx, reader, draftID, hidden.ID)
	assert.True(t, apperr.IsNotFound(err), "chapters of an unpublished comic are hidden")

	_, err = f.service.Get(ctx, reader, liveID, hidden.ID)
	assert.True(t, apperr.IsNotFound(err), "chapter must belong to the comic in the path")
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	scheduled := f.create(t, liveID, "1", "2030-01-01 00:00")

	updated, err := f.service.Update(ctx, authorID, liveID, scheduled.ID, chapter.UpdateInput{IsPublished: pointer.To(true)})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	firstPublish := *updated.PublishedAt

	updated, err = f.service.Update(ctx, authorID, liveID, scheduled.ID, chapter.UpdateInput{IsPublished: pointer.To(false)})
	require.NoError(t, err)
	assert.False(t, updated.IsPublished)

	updated, err = f.service.Update(ctx, authorID, liveID, scheduled.ID, chapter.UpdateInput{IsPublished: pointer.To(true), Title: pointer.To(" Renamed ")})
	require.NoError(t, err)
	assert.Equal(t, firstPublish, *updated.PublishedAt)
	assert.Equal(t, "Renamed", updated.Title)

	_, err = f.service.Update(ctx, authorID, liveID, scheduled.ID, chapter.UpdateInput{Title: pointer.To("")})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = f.service.Update(ctx, readerID, liveID, scheduled.ID, chapter.UpdateInput{Title: pointer.To("x")})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	created := f.create(t, liveID, "1", "")
	f.repo.deletedPaths = []string{"uploads/p1.png", "uploads/p2.png"}

	assert.True(t, apperr.HasCode(f.service.Delete(ctx, readerID, liveID, created.ID), apperr.CodeForbidden))

	require.NoError(t, f.service.Delete(ctx, authorID, liveID, created.ID))
	assert.Empty(t, f.repo.chapters)
	assert.Equal(t, f.repo.deletedPaths, f.files.Deleted)
}

// # Pages

func TestService_Pages(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	created := f.create(t, liveID, "1", "")

	first, err := f.service.AddPages(ctx, authorID, liveID, created.ID, []storage.Upload{upload("a.png"), upload("b.jpg")})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 1, first[0].Number)
	assert.Equal(t, 2, first[1].Number)

	more, err := f.service.AddPages(ctx, authorID, liveID, created.ID, []storage.Upload{upload("c.gif")})
	require.NoError(t, err)
	assert.Equal(t, 3, more[0].Number)

	pages, err := f.service.ListPages(ctx, reader, liveID, created.ID)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, "uploads/a.png", pages[0].ImagePath)

	require.NoError(t, f.service.DeletePage(ctx, authorID, liveID, created.ID, first[0].ID))
	assert.Equal(t, []string{"uploads/a.png"}, f.files.Deleted)
	pages, err = f.service.ListPages(ctx, reader, liveID, created.ID)
	require.NoError(t, err)
	assert.Len(t, pages, 2)

	err = f.service.DeletePage(ctx, authorID, liveID, created.ID, uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}

func TestService_AddPagesRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	created := f.create(t, liveID, "1", "")

	_, err := f.service.AddPages(ctx, authorID, liveID, created.ID, nil)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = f.service.AddPages(ctx, authorID, liveID, created.ID, []storage.Upload{upload("a.png"), upload("run.sh")})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.Empty(t, f.files.Saved)

	_, err = f.service.AddPages(ctx, readerID, liveID, created.ID, []storage.Upload{upload("a.png")})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
}

func TestService_AddPagesCleansUpOnFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	created := f.create(t, liveID, "1", "")
	f.repo.failAddPages = true

	_, err := f.service.AddPages(ctx, authorID, liveID, created.ID, []storage.Upload{upload("a.png"), upload("b.png")})
	require.Error(t, err)
	assert.ElementsMatch(t, f.files.Saved, f.files.Deleted)
}

// # Engagement

func TestService_View(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	created := f.create(t, liveID, "1", "")

	require.NoError(t, f.service.View(ctx, sec.Principal{}, liveID, created.ID, "203.0.113.7", "curl/8"))
	require.NoError(t, f.service.View(ctx, reader, liveID, created.ID, "203.0.113.8", "firefox"))

	require.Len(t, f.repo.views, 2)
	assert.Nil(t, f.repo.views[0].UserID)
	assert.Equal(t, liveID, f.repo.views[0].ComicID)
	assert.Equal(t, "203.0.113.7", f.repo.views[0].IPAddress)
	require.NotNil(t, f.repo.views[1].UserID)
	assert.Equal(t, readerID, *f.repo.views[1].UserID)
	assert.EqualValues(t, 2, f.repo.chapters[created.ID].TotalViews)

	hidden := f.create(t, liveID, "2", "2030-01-01 00:00")
	assert.True(t, apperr.IsNotFound(f.service.View(ctx, reader, liveID, hidden.ID, "", "")))
}

func TestService_Rate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	created := f.create(t, liveID, "1", "")

	_, err := f.service.Rate(ctx, reader, liveID, created.ID, 0)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	result, err := f.service.Rate(ctx, reader, liveID, created.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, result.RatingCount)

	result, err = f.service.Rate(ctx, reader, liveID, created.ID, 2)
	require.NoError(t, err)
	assert.True(t, result.Updated)
	assert.Equal(t, 1, result.RatingCount)
	assert.InDelta(t, 2.0, result.TotalRating, 0.001)

	detail, err := f.service.Get(ctx, reader, liveID, created.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.MyRating)
	assert.Equal(t, 2, *detail.MyRating)
}

func TestService_Comments(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	created := f.create(t, liveID, "1", "")

	_, err := f.service.Comment(ctx, reader, liveID, created.ID, "   ")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = f.service.Comment(ctx, reader, liveID, created.ID, strings.Repeat("x", chapter.CommentMaxLength+1))
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	posted, err := f.service.Comment(ctx, reader, liveID, created.ID, " Great page! ")
	require.NoError(t, err)
	assert.Equal(t, "Great page!", posted.Content)
	assert.False(t, posted.IsEdited)

	t.Run("edit_by_author_only", func(t *testing.T) {
		_, err := f.service.EditComment(ctx, adminID, posted.ID, "moderated")
		assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

		edited, err := f.service.EditComment(ctx, readerID, posted.ID, "Great chapter!")
		require.NoError(t, err)
		assert.True(t, edited.IsEdited)
		assert.Equal(t, "Great chapter!", f.repo.comments[posted.ID].Content)
	})

	t.Run("list", func(t *testing.T) {
		list, meta, err := f.service.ListComments(ctx, sec.Principal{}, liveID, created.ID, pagination.Params{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, 1, meta.Total)

		all, meta, err := f.service.AdminListComments(ctx, pagination.Params{Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Chapter 1", all[0].ChapterTitle)
		assert.Equal(t, 1, meta.Total)
	})

	t.Run("delete", func(t *testing.T) {
		other := sec.Principal{UserID: authorID, Role: sec.RoleMember}
		assert.True(t, apperr.HasCode(f.service.DeleteComment(ctx, other, posted.ID), apperr.CodeForbidden))

		require.NoError(t, f.service.DeleteComment(ctx, admin, posted.ID))
		assert.Empty(t, f.repo.comments)
		assert.True(t, apperr.IsNotFound(f.service.DeleteComment(ctx, reader, posted.ID)))
	})
}

// # Scheduling

func TestService_ScheduleAndPublishDue(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.create(t, liveID, "1", "")
	future := f.create(t, liveID, "2", "2999-01-01 00:00")
	past := f.create(t, liveID, "3", "2020-01-01 00:00")

	schedule, err := f.service.Schedule(ctx, authorID, 10)
	require.NoError(t, err)
	require.Len(t, schedule.Upcoming, 1)
	assert.Equal(t, future.ID, schedule.Upcoming[0].ChapterID)
	assert.Len(t, schedule.Recent, 1)

	count, err := f.service.PublishDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	published := f.repo.chapters[past.ID]
	assert.True(t, published.IsPublished)
	require.NotNil(t, published.PublishedAt)
	assert.Equal(t, *past.ScheduledPublish, *published.PublishedAt)
	assert.False(t, f.repo.chapters[future.ID].IsPublished)

	count, err = f.service.PublishDue(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

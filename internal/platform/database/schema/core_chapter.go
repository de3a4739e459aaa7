package schema

// CoreChapterTable represents the 'core.chapter' table
type CoreChapterTable struct {
	Table            string
	ID               string
	ComicID          string
	Title            string
	ChapterNumber    string
	IsPublished      string
	ScheduledPublish string
	PublishedAt      string
	TotalViews       string
	TotalRating      string
	RatingCount      string
	CreatedAt        string
}

// CoreChapter is the schema definition for core.chapter
var CoreChapter = CoreChapterTable{
	Table:            "core.chapter",
	ID:               "id",
	ComicID:          "comicid",
	Title:            "title",
	ChapterNumber:    "chapternumber",
	IsPublished:      "ispublished",
	ScheduledPublish: "scheduledpublish",
	PublishedAt:      "publishedat",
	TotalViews:       "totalviews",
	TotalRating:      "totalrating",
	RatingCount:      "ratingcount",
	CreatedAt:        "createdat",
}

// Columns returns every column in declaration order.
func (t CoreChapterTable) Columns() []string {
	return []string{
		t.ID, t.ComicID, t.Title, t.ChapterNumber, t.IsPublished,
		t.ScheduledPublish, t.PublishedAt, t.TotalViews, t.TotalRating,
		t.RatingCount, t.CreatedAt,
	}
}

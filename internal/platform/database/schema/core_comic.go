package schema

// CoreComicTable represents the 'core.comic' table
type CoreComicTable struct {
	Table        string
	ID           string
	AuthorID     string
	SeriesID     string
	Title        string
	Description  string
	CoverPath    string
	Genre        string
	Status       string
	Schedule     string
	ContentType  string
	Tags         string
	IsPublished  string
	IsEditorPick string
	TotalViews   string
	TotalRating  string
	RatingCount  string
	CreatedAt    string
	UpdatedAt    string
}

// CoreComic is the schema definition for core.comic
var CoreComic = CoreComicTable{
	Table:        "core.comic",
	ID:           "id",
	AuthorID:     "authorid",
	SeriesID:     "seriesid",
	Title:        "title",
	Description:  "description",
	CoverPath:    "coverpath",
	Genre:        "genre",
	Status:       "status",
	Schedule:     "schedule",
	ContentType:  "contenttype",
	Tags:         "tags",
	IsPublished:  "ispublished",
	IsEditorPick: "iseditorpick",
	TotalViews:   "totalviews",
	TotalRating:  "totalrating",
	RatingCount:  "ratingcount",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns every column in declaration order.
func (t CoreComicTable) Columns() []string {
	return []string{
		t.ID, t.AuthorID, t.SeriesID, t.Title, t.Description, t.CoverPath,
		t.Genre, t.Status, t.Schedule, t.ContentType, t.Tags, t.IsPublished,
		t.IsEditorPick, t.TotalViews, t.TotalRating, t.RatingCount,
		t.CreatedAt, t.UpdatedAt,
	}
}

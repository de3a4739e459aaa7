package schema

// CorePageTable represents the 'core.page' table
type CorePageTable struct {
	Table      string
	ID         string
	ChapterID  string
	PageNumber string
	ImagePath  string
	CreatedAt  string
}

// CorePage is the schema definition for core.page
var CorePage = CorePageTable{
	Table:      "core.page",
	ID:         "id",
	ChapterID:  "chapterid",
	PageNumber: "pagenumber",
	ImagePath:  "imagepath",
	CreatedAt:  "createdat",
}

// Columns returns every column in declaration order.
func (t CorePageTable) Columns() []string {
	return []string{t.ID, t.ChapterID, t.PageNumber, t.ImagePath, t.CreatedAt}
}

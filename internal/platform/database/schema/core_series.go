package schema

// CoreSeriesTable represents the 'core.series' table
type CoreSeriesTable struct {
	Table       string
	ID          string
	AuthorID    string
	Name        string
	Description string
	CoverPath   string
	Genre       string
	Status      string
	Schedule    string
	CreatedAt   string
	UpdatedAt   string
}

// CoreSeries is the schema definition for core.series
var CoreSeries = CoreSeriesTable{
	Table:       "core.series",
	ID:          "id",
	AuthorID:    "authorid",
	Name:        "name",
	Description: "description",
	CoverPath:   "coverpath",
	Genre:       "genre",
	Status:      "status",
	Schedule:    "schedule",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns every column in declaration order.
func (t CoreSeriesTable) Columns() []string {
	return []string{
		t.ID, t.AuthorID, t.Name, t.Description, t.CoverPath, t.Genre,
		t.Status, t.Schedule, t.CreatedAt, t.UpdatedAt,
	}
}

package schema

// LibraryViewLogTable represents the append-only 'library.viewlog' table
type LibraryViewLogTable struct {
	Table     string
	ID        string
	UserID    string
	ComicID   string
	ChapterID string
	IPAddress string
	UserAgent string
	ViewedAt  string
	DwellTime string
}

// LibraryViewLog is the schema definition for library.viewlog
var LibraryViewLog = LibraryViewLogTable{
	Table:     "library.viewlog",
	ID:        "id",
	UserID:    "userid",
	ComicID:   "comicid",
	ChapterID: "chapterid",
	IPAddress: "ipaddress",
	UserAgent: "useragent",
	ViewedAt:  "viewedat",
	DwellTime: "dwelltime",
}

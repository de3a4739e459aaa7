package schema

// RatingTable describes a (user, target, score) rating table. Comic and chapter
// ratings share the layout and differ only in the target column.
type RatingTable struct {
	Table     string
	ID        string
	UserID    string
	TargetID  string
	Score     string
	CreatedAt string
	UpdatedAt string
}

// SocialComicRating is the schema definition for social.comicrating
var SocialComicRating = RatingTable{
	Table:     "social.comicrating",
	ID:        "id",
	UserID:    "userid",
	TargetID:  "comicid",
	Score:     "score",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// SocialChapterRating is the schema definition for social.chapterrating
var SocialChapterRating = RatingTable{
	Table:     "social.chapterrating",
	ID:        "id",
	UserID:    "userid",
	TargetID:  "chapterid",
	Score:     "score",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table     string
	ID        string
	UserID    string
	ChapterID string
	Content   string
	IsEdited  string
	CreatedAt string
	UpdatedAt string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:     "social.comment",
	ID:        "id",
	UserID:    "userid",
	ChapterID: "chapterid",
	Content:   "content",
	IsEdited:  "isedited",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns every column in declaration order.
func (t SocialCommentTable) Columns() []string {
	return []string{t.ID, t.UserID, t.ChapterID, t.Content, t.IsEdited, t.CreatedAt, t.UpdatedAt}
}

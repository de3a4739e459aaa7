package schema

// SocialComicFollowTable represents the 'social.comicfollow' table
type SocialComicFollowTable struct {
	Table     string
	UserID    string
	ComicID   string
	CreatedAt string
}

// SocialComicFollow is the schema definition for social.comicfollow
var SocialComicFollow = SocialComicFollowTable{
	Table:     "social.comicfollow",
	UserID:    "userid",
	ComicID:   "comicid",
	CreatedAt: "createdat",
}

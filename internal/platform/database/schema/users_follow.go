package schema

// UserFollowTable represents the 'users.follow' table
type UserFollowTable struct {
	Table      string
	FollowerID string
	FollowedID string
	CreatedAt  string
}

// UserFollow is the schema definition for users.follow
var UserFollow = UserFollowTable{
	Table:      "users.follow",
	FollowerID: "followerid",
	FollowedID: "followedid",
	CreatedAt:  "createdat",
}

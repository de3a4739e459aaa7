package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table        string
	ID           string
	Username     string
	Email        string
	PasswordHash string
	IsArtist     string
	Role         string
	Bio          string
	AvatarPath   string
	CreatedAt    string
	UpdatedAt    string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:        "users.account",
	ID:           "id",
	Username:     "username",
	Email:        "email",
	PasswordHash: "passwordhash",
	IsArtist:     "isartist",
	Role:         "role",
	Bio:          "bio",
	AvatarPath:   "avatarpath",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns every column in declaration order.
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.PasswordHash, t.IsArtist, t.Role,
		t.Bio, t.AvatarPath, t.CreatedAt, t.UpdatedAt,
	}
}

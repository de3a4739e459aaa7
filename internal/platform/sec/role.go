// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// UserRole is the authorization level of an account.
//
// Creator rights are not a role: any member may become an artist, which is
// tracked by the separate is_artist flag.
type UserRole string

const (
	// RoleAdmin can moderate content and manage accounts.
	RoleAdmin UserRole = "admin"

	// RoleMember is the default for every registered account.
	RoleMember UserRole = "member"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	return r.level() > 0
}

// AtLeast reports whether r meets or exceeds target.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 40
	case RoleMember:
		return 10
	default:
		return 0
	}
}

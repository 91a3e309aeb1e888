package types

import "time"

// Role is the authorization level granted to a profile.
type Role string

const (
	// RoleScout is the default role granted to every signup after the first.
	RoleScout Role = "Scout"

	// RoleDeveloper marks studio members with content-edit duties but no
	// roster rights. It is only ever assigned by an Admin.
	RoleDeveloper Role = "Developer"

	// RoleAdmin grants full content and roster management. The first
	// profile ever created receives it unconditionally.
	RoleAdmin Role = "Admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleScout, RoleDeveloper, RoleAdmin:
		return true
	}
	return false
}

// UserProfile represents one member of the studio community.
//
// The profile row is keyed by the identifier assigned by the credential
// service; the two records are created together at signup and must never
// diverge.
type UserProfile struct {
	// ID is the opaque stable identifier assigned by the credential
	// service at signup.
	ID string `json:"id" db:"id"`

	// Name is the display name chosen by the user.
	Name string `json:"name" db:"name"`

	// Email is the address the credential record was created with.
	// Immutable through profile updates.
	Email string `json:"email" db:"email"`

	// Role is the profile's authorization level. Assigned once at signup;
	// immutable through profile updates.
	Role Role `json:"role" db:"role"`

	// AvatarURL points at the profile picture. Defaults to a generated
	// avatar seeded by the email address.
	AvatarURL string `json:"avatarUrl" db:"avatar_url"`

	// JoinDate is the timestamp the profile was created.
	JoinDate time.Time `json:"joinDate" db:"join_date"`
}

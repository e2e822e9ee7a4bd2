package profile

import (
	"time"

	"github.com/mauv0809/crease/internal/apperr"
)

// Role decides which routes an account may call.
type Role string

const (
	RoleUser   Role = "user"
	RolePlayer Role = "player"
	RoleUmpire Role = "umpire"
)

// ParseRole validates a role name.
func ParseRole(raw string) (Role, error) {
	switch r := Role(raw); r {
	case RoleUser, RolePlayer, RoleUmpire:
		return r, nil
	}
	return "", apperr.Validation("Valid role (user, player, umpire) is required")
}

// Profile is the public part of an account. Its id equals the identity id.
type Profile struct {
	ID                string    `json:"id"`
	FullName          *string   `json:"full_name"`
	Username          string    `json:"username"`
	Phone             *string   `json:"phone"`
	Role              Role      `json:"role"`
	ProfilePictureURL *string   `json:"profile_picture_url"`
	TeamName          *string   `json:"team_name"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Update holds optional profile changes; nil fields are left untouched.
// Email changes the username.
type Update struct {
	FullName          *string `json:"fullName"`
	Phone             *string `json:"phone"`
	Email             *string `json:"email"`
	ProfilePictureURL *string `json:"profilePictureUrl"`
	TeamName          *string `json:"teamName"`
}

// IsEmpty reports whether u changes nothing.
func (u Update) IsEmpty() bool {
	return u.FullName == nil && u.Phone == nil && u.Email == nil && u.ProfilePictureURL == nil && u.TeamName == nil
}

package domain

import "time"

// Role gates endpoint access. The set is closed; authorization compares
// enum values, never concatenated strings.
type Role string

const (
	RoleCitizen    Role = "CITIZEN"
	RoleModerator  Role = "MODERATOR"
	RoleAdmin      Role = "ADMIN"
	RoleTechnician Role = "TECHNICIAN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCitizen, RoleModerator, RoleAdmin, RoleTechnician:
		return true
	}
	return false
}

// CanModerate reports whether the role may mutate report status.
func (r Role) CanModerate() bool {
	return r == RoleAdmin || r == RoleModerator || r == RoleTechnician
}

// User models a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	Points       int       `json:"points"`
	CreatedAt    time.Time `json:"created_at"`
}

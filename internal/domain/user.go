package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of access levels a user can hold.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

// ErrUserNotFound is returned by user lookups that match no record.
var ErrUserNotFound = errors.New("user not found")

// Roles lists every defined role.
func Roles() []Role {
	return []Role{RoleAdmin, RoleModerator, RoleUser}
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	default:
		return false
	}
}

// ParseRole converts user input into a Role.
func ParseRole(value string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", value)
	}
	return role, nil
}

// User is an account of the photo-sharing service.
type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	AvatarURL    *string   `db:"avatar_url"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// UserProfile is the public view of a user with activity counters.
type UserProfile struct {
	ID         string    `db:"id"`
	Username   string    `db:"username"`
	Email      string    `db:"email"`
	Role       Role      `db:"role"`
	AvatarURL  *string   `db:"avatar_url"`
	IsActive   bool      `db:"is_active"`
	PhotoCount int       `db:"photo_count"`
	CreatedAt  time.Time `db:"created_at"`
}

package models

import (
	"strings"
	"time"
)

// UserRole is the closed set of roles the LMS knows about.
type UserRole string

const (
	RoleStudent UserRole = "STUDENT"
	RoleTeacher UserRole = "TEACHER"
	RoleParent  UserRole = "PARENT"
	RoleAdmin   UserRole = "ADMIN"
)

// roleAliases is the single mapping from stored or legacy role strings to a
// canonical role. Keys are lower case.
var roleAliases = map[string]UserRole{
	"student":     RoleStudent,
	"teacher":     RoleTeacher,
	"instructor":  RoleTeacher,
	"parent":      RoleParent,
	"guardian":    RoleParent,
	"admin":       RoleAdmin,
	"coordinator": RoleAdmin,
	"superadmin":  RoleAdmin,
}

// ParseRole maps any known spelling onto its canonical role.
func ParseRole(raw string) (UserRole, bool) {
	role, ok := roleAliases[strings.ToLower(strings.TrimSpace(raw))]
	return role, ok
}

// User represents an application user stored in the users table.
type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	FullName  string    `db:"full_name" json:"full_name"`
	RoleRaw   string    `db:"role" json:"-"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Role returns the canonical role, or "" when the stored value is unknown.
func (u *User) Role() UserRole {
	role, _ := ParseRole(u.RoleRaw)
	return role
}

// IsTeacher reports whether the user can own availability and slots.
func (u *User) IsTeacher() bool {
	return u.Role() == RoleTeacher
}

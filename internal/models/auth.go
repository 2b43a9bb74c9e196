package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the caller holds the administrative role.
func (c *JWTClaims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// CanManageTeacher reports whether the caller may mutate data owned by teacherID.
func (c *JWTClaims) CanManageTeacher(teacherID string) bool {
	if c == nil {
		return false
	}
	return c.IsAdmin() || (c.Role == RoleTeacher && c.UserID == teacherID)
}

package model

import (
	"strings"
	"time"
)

// Role of a user account
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// User model
type User struct {
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"password_hash" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Identity is the authenticated user attached to a request
type Identity struct {
	Username string
	Role     Role
}

// NormalizeUsername returns the form usernames are stored and compared in
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// IsAdmin reports whether the identity holds the admin role.
// A nil identity is anonymous and never an admin.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// CanModify reports whether the identity may change a record created by createdBy
func (i *Identity) CanModify(createdBy string) bool {
	if i == nil {
		return false
	}
	return i.IsAdmin() || strings.EqualFold(i.Username, createdBy)
}

// Package models holds the persisted and caller-facing shapes of an
// identity record.
package models

import "time"

// Role is the coarse authorization level attached to a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the identity record owned by the directory once persisted.
// PasswordHash never leaves the service; callers see PublicUser instead.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	FullName     string
	CreatedAt    time.Time
}

// PublicUser is the view of a user returned to callers.
type PublicUser struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// Public strips the record down to disclosable fields.
func (u *User) Public() PublicUser {
	return PublicUser{
		UserID:    u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of admin account roles. Authorization compares
// roles by equality only; there is no hierarchy or policy engine.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
)

// User represents an admin account of the corporate-site backend.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the unique identifier of the account (UUIDv7).
	ID uuid.UUID `json:"id"`

	// Email is the unique login identifier of the account.
	Email string `json:"email"`

	// UserName is an optional short display name, set when the invitee
	// completes their profile.
	UserName string `json:"userName,omitempty"`

	// FullName is the optional full display name.
	FullName string `json:"fullName,omitempty"`

	// PasswordHash is the bcrypt hash of the account password. Empty until
	// the profile-completion flow has run. Never serialized.
	PasswordHash string `json:"-"`

	// Role governs which admin endpoints the account may call.
	Role Role `json:"role"`

	// IsProfileCompleted is false for invited admins that have not yet set
	// their name and password. Incomplete accounts cannot log in.
	IsProfileCompleted bool `json:"isProfileCompleted"`

	// ProfileCompletionToken is the single-use setup token emailed to an
	// invited admin. Nil once the profile is completed. Never serialized.
	ProfileCompletionToken *string `json:"-"`

	// ProfileCompletionTokenExpiresAt bounds the validity of the setup
	// token. Never serialized.
	ProfileCompletionTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// PublicUser is the reduced account view returned by auth and
// user-management endpoints (login, invite, resend, complete-profile).
type PublicUser struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	UserName           string    `json:"userName,omitempty"`
	FullName           string    `json:"fullName,omitempty"`
	Role               Role      `json:"role"`
	IsProfileCompleted bool      `json:"isProfileCompleted"`
}

// Public returns the reduced view of the user.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:                 u.ID,
		Email:              u.Email,
		UserName:           u.UserName,
		FullName:           u.FullName,
		Role:               u.Role,
		IsProfileCompleted: u.IsProfileCompleted,
	}
}

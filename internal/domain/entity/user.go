package entity

import (
	"time"
)

// User represents a registered user account in the system
type User struct {
	ID             int64      `bson:"_id" json:"id"`
	Name           string     `bson:"name" json:"name"`
	Address        *string    `bson:"address,omitempty" json:"address,omitempty"`
	Birthdate      *time.Time `bson:"birthdate,omitempty" json:"birthdate,omitempty"`
	Identification string     `bson:"identification" json:"identification"`
	Phone          string     `bson:"phone" json:"phone"`
	Email          string     `bson:"email" json:"email"`
	PasswordHash   string     `bson:"password_hash" json:"-"`
	Role           UserRole   `bson:"rol" json:"rol"`
	FirstAccess    bool       `bson:"first_access" json:"firstAccess"`
	Active         bool       `bson:"active" json:"active"`
	ActivationCode *string    `bson:"activation_code,omitempty" json:"codeActivation,omitempty"`
	CreatedAt      time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `bson:"updated_at" json:"updatedAt"`
}

// UserRole represents the authorization tier of a user
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleStandard UserRole = "standard"
)

func DefaultRole() UserRole {
	return UserRoleStandard
}

// IsValid reports whether the role is one of the enumerated roles.
func (r UserRole) IsValid() bool {
	return r == UserRoleAdmin || r == UserRoleStandard
}

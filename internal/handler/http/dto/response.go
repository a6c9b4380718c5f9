package dto

import (
	"time"

	"github.com/dcastillo/user-service/internal/domain/entity"
)

// Envelope is the uniform response shape for every JSON endpoint.
type Envelope struct {
	Status   bool        `json:"status"`
	Response interface{} `json:"response"`
	Msg      string      `json:"msg"`
}

// UserResponse is the projection of a user record returned to callers.
// Credential material is excluded by construction: the type has no
// password field to leak.
type UserResponse struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Address        *string    `json:"address,omitempty"`
	Birthdate      *time.Time `json:"birthdate,omitempty"`
	Identification string     `json:"identification"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email"`
	Role           string     `json:"rol"`
	FirstAccess    bool       `json:"firstAccess"`
	Active         bool       `json:"active"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// AuthResponse carries the issued bearer token.
type AuthResponse struct {
	Token string `json:"token"`
}

// ToUserResponse converts an entity.User to its response projection.
func ToUserResponse(user entity.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Address:        user.Address,
		Birthdate:      user.Birthdate,
		Identification: user.Identification,
		Phone:          user.Phone,
		Email:          user.Email,
		Role:           string(user.Role),
		FirstAccess:    user.FirstAccess,
		Active:         user.Active,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

// ToUserResponses converts a slice of users to response projections.
func ToUserResponses(users []entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}

package entity

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed identity payload carried by a bearer token.
// It is never stored server-side.
type Claims struct {
	UserID         int64    `json:"id"`
	Name           string   `json:"name"`
	Role           UserRole `json:"rol"`
	Identification string   `json:"identification"`
	Active         bool     `json:"active"`
	Email          string   `json:"email"`
	ActivationCode string   `json:"codeActivation,omitempty"`
	jwt.RegisteredClaims
}

package dto

// CreateUserRequest is the registration payload. Password arrives as the
// base64 encoding of the true plaintext.
type CreateUserRequest struct {
	Name           string  `json:"name" binding:"required"`
	Password       string  `json:"password" binding:"required"`
	Address        *string `json:"address"`
	Birthdate      *string `json:"birthdate"`
	Identification string  `json:"identification" binding:"required"`
	Phone          string  `json:"phone" binding:"required"`
	Email          string  `json:"email" binding:"required"`
	Role           string  `json:"rol" binding:"required"`
}

// AuthRequest is the credential-authentication payload.
type AuthRequest struct {
	Identification string `json:"identification" binding:"required"`
	Password       string `json:"password" binding:"required"`
}

// ChangePasswordRequest carries the current and new passwords, both base64.
type ChangePasswordRequest struct {
	Password    string `json:"password" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// UpdateUserRequest is the partial patch applied by administrators. A
// password field in the body is ignored by construction.
type UpdateUserRequest struct {
	Name           *string `json:"name"`
	Address        *string `json:"address"`
	Birthdate      *string `json:"birthdate"`
	Identification *string `json:"identification"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	Role           *string `json:"rol"`
	Active         *bool   `json:"active"`
}

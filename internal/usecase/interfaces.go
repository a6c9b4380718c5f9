package usecase

import (
	"github.com/dcastillo/user-service/internal/domain/entity"
)

// JWTService defines the interface for bearer token operations.
type JWTService interface {
	// GenerateToken signs the user's claims with a fixed expiry window.
	GenerateToken(user *entity.User) (string, error)
	// VerifyToken checks signature and expiry and returns the embedded claims.
	VerifyToken(token string) (*entity.Claims, error)
}

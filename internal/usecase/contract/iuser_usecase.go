package usecasecontract

import (
	"context"

	"github.com/dcastillo/user-service/internal/domain/entity"
)

// RegisterInput carries the fields accepted at registration. Password is the
// base64 encoding of the true plaintext, per the wire convention.
type RegisterInput struct {
	Name           string
	Password       string
	Address        *string
	Birthdate      *string
	Identification string
	Phone          string
	Email          string
	Role           string
}

// IUserUseCase defines the interface for user-related operations.
type IUserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*entity.User, error)
	Authenticate(ctx context.Context, identification, password string) (*entity.User, string, error)
	Activate(ctx context.Context, token string) (*entity.User, error)
	ChangePassword(ctx context.Context, userID int64, password, newPassword string) (*entity.User, error)
	GetAllUsers(ctx context.Context) ([]entity.User, error)
	GetUserByID(ctx context.Context, userID int64) (*entity.User, error)
	SearchUsersByName(ctx context.Context, name string) ([]entity.User, error)
	UpdateUser(ctx context.Context, userID int64, updates map[string]interface{}) (*entity.User, error)
	DeleteUser(ctx context.Context, userID int64) (*entity.User, error)
}

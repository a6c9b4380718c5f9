package contract

import (
	"context"

	"github.com/dcastillo/user-service/internal/domain/entity"
)

type IUserRepository interface {
	// CreateUser persists a new user, assigning its ID. Returns
	// entity.ErrUserAlreadyExists when the identification is already taken;
	// the storage-level unique index is the authoritative duplicate check.
	CreateUser(ctx context.Context, user *entity.User) error
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	// GetUserByIdentification retrieves a user by its external identification.
	GetUserByIdentification(ctx context.Context, identification string) (*entity.User, error)
	GetAllUsers(ctx context.Context) ([]entity.User, error)
	// SearchUsersByName retrieves users whose name contains the given substring.
	SearchUsersByName(ctx context.Context, name string) ([]entity.User, error)
	// UpdateUser replaces the stored record and returns the updated user.
	UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	// UpdateUserPassword stores a new password hash for the user.
	UpdateUserPassword(ctx context.Context, id int64, hashedPassword string) error
	// DeleteUser removes a user by ID. Deletion is physical.
	DeleteUser(ctx context.Context, id int64) error
}

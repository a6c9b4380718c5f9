package contract

import (
	"context"

	"github.com/dcastillo/user-service/internal/domain/entity"
)

// IUserCache defines optional read-through caching for user lookups.
// The repository stays the source of truth; every mutation invalidates.
type IUserCache interface {
	GetUserByID(ctx context.Context, id int64) (*entity.User, bool, error)
	SetUserByID(ctx context.Context, user *entity.User) error
	InvalidateUser(ctx context.Context, id int64) error
}

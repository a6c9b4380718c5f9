package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dcastillo/user-service/internal/domain/contract"
	"github.com/dcastillo/user-service/internal/domain/entity"
)

// UserCacheStore is a redis-backed read-through cache for user lookups.
// Every mutating flow invalidates, so stale password hashes or activation
// state never outlive a write.
type UserCacheStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewUserCacheStore(rdb *redis.Client) *UserCacheStore {
	return &UserCacheStore{
		rdb: rdb,
		ttl: 30 * time.Minute,
	}
}

var _ contract.IUserCache = (*UserCacheStore)(nil)

func userKey(id int64) string { return fmt.Sprintf("user:id:%d", id) }

func (c *UserCacheStore) GetUserByID(ctx context.Context, id int64) (*entity.User, bool, error) {
	b, err := c.rdb.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	var user entity.User
	if err := json.Unmarshal(b, &user); err != nil {
		return nil, false, nil
	}
	return &user, true, nil
}

func (c *UserCacheStore) SetUserByID(ctx context.Context, user *entity.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, userKey(user.ID), data, c.ttl).Err()
}

func (c *UserCacheStore) InvalidateUser(ctx context.Context, id int64) error {
	return c.rdb.Del(ctx, userKey(id)).Err()
}

package redis

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"blogicum/internal/custom_errors"
	model "blogicum/internal/domain/models"
	ports "blogicum/internal/domain/ports/output"
)

const userTTL = 15 * time.Minute

// UserCache keeps the public part of a user keyed by id so that resolving the
// session on every request skips Postgres. The password hash is never
// serialized.
type UserCache struct {
	client *Client
	log    ports.Logger
}

func NewUserCache(client *Client, log ports.Logger) *UserCache {
	return &UserCache{client: client, log: log}
}

func (u *UserCache) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	var user model.User
	err := u.client.getJSON(ctx, userKey(userID), &user)
	switch {
	case err == nil:
		u.client.metrics.IncrementCacheHits("user")
		return &user, nil
	case errors.Is(err, custom_errors.ErrCacheMiss):
		u.client.metrics.IncrementCacheMisses("user")
		return nil, custom_errors.ErrCacheMiss
	default:
		u.log.Error("User cache read failed", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}
}

func (u *UserCache) SetUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return custom_errors.ErrInvalidInput
	}
	return u.client.setJSON(ctx, userKey(user.ID), user, userTTL)
}

func (u *UserCache) DeleteUser(ctx context.Context, userID int64) error {
	return u.client.del(ctx, userKey(userID))
}

func userKey(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10)
}

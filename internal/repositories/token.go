package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/user-accounts/internal/logger"
)

// RefreshTokenRepository keeps the latest issued refresh token per user in
// Redis. The refresh exchange only accepts the stored token, so issuing a
// new pair revokes every earlier refresh token.
type RefreshTokenRepository struct {
	client *redis.Client
	exp    time.Duration // expiration matching the refresh token TTL
}

// NewRefreshTokenRepository creates a new repository instance.
func NewRefreshTokenRepository(client *redis.Client, expiration time.Duration) *RefreshTokenRepository {
	return &RefreshTokenRepository{
		client: client,
		exp:    expiration,
	}
}

func refreshTokenKey(userID int64) string {
	return fmt.Sprintf("refresh_token:%d", userID)
}

// Save stores the current refresh token for a user, replacing any previous one.
func (r *RefreshTokenRepository) Save(ctx context.Context, userID int64, token string) error {
	key := refreshTokenKey(userID)
	err := r.client.Set(ctx, key, token, r.exp).Err()

	logger.Log.Infow("refresh token save",
		"key", key,
		"error", err,
	)

	return err
}

// Get returns the stored refresh token for a user, or empty when none is stored.
func (r *RefreshTokenRepository) Get(ctx context.Context, userID int64) (string, error) {
	key := refreshTokenKey(userID)

	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}

	logger.Log.Infow("refresh token get",
		"key", key,
		"error", err,
	)

	if err != nil {
		return "", err
	}
	return val, nil
}

// Delete removes the stored refresh token for a user.
func (r *RefreshTokenRepository) Delete(ctx context.Context, userID int64) error {
	key := refreshTokenKey(userID)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow("refresh token delete",
		"key", key,
		"error", err,
	)

	return err
}

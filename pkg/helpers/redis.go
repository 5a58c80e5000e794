package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient returns a client with short timeouts. Redis only backs an
// optional cache here, so a slow server must not hold requests up.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
}

// RedisSetJSON stores value as JSON under key. A non-positive ttl is
// rejected: cache entries must always expire.
func RedisSetJSON(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("redis set %s: ttl must be positive", key)
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

// RedisGetJSON decodes the value under key into dest and reports a hit.
// An undecodable entry is deleted and reported as a miss with its error.
func RedisGetJSON[T any](ctx context.Context, rdb *redis.Client, key string, dest *T) (bool, error) {
	raw, err := rdb.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		_ = rdb.Del(ctx, key).Err()
		return false, fmt.Errorf("redis get %s: corrupt entry: %w", key, err)
	}
	return true, nil
}

func RedisDel(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}

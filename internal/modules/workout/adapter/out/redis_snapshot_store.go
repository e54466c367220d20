package out

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	workoutout "mapty/internal/modules/workout/port/out"
)

const redisKeyPrefix = "mapty:"

type RedisSnapshotStore struct {
	client *redis.Client
}

// NewRedisSnapshotStore connects to addr and pings it once so a bad address
// fails at startup rather than on the first save.
func NewRedisSnapshotStore(ctx context.Context, addr, password string) (workoutout.SnapshotStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return &RedisSnapshotStore{client: client}, nil
}

func (s *RedisSnapshotStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get item %q: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisSnapshotStore) SetItem(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set item %q: %w", key, err)
	}
	return nil
}

func (s *RedisSnapshotStore) RemoveItem(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("remove item %q: %w", key, err)
	}
	return nil
}

func (s *RedisSnapshotStore) Close() error {
	return s.client.Close()
}

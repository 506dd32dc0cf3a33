package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "pixelquiz:pref:"

// PreferenceStore is a Redis-backed implementation of app.PreferenceStore.
// It is the durable analog of the browser's localStorage in the original
// client: preference values only, never question content, session progress,
// or leaderboard entries. Keys carry no TTL.
type PreferenceStore struct {
	client *redis.Client
}

func NewPreferenceStore(client *redis.Client) *PreferenceStore {
	return &PreferenceStore{client: client}
}

func (s *PreferenceStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *PreferenceStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, keyPrefix+key, value, 0).Err()
}

func (s *PreferenceStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, keyPrefix+key).Err()
}

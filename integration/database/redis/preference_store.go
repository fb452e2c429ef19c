package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// PreferenceStore keeps preference values as plain Redis strings under
// prefix+key. Every write refreshes the TTL; zero TTL keeps keys forever.
// It satisfies preference.Store.
type PreferenceStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewPreferenceStore creates a store over client.
func NewPreferenceStore(client redis.UniversalClient, prefix string, ttl time.Duration) *PreferenceStore {
	return &PreferenceStore{client: client, prefix: prefix, ttl: ttl}
}

// Get returns the stored value and whether it exists.
func (s *PreferenceStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Join(ErrStoreFailed, err)
	}
	return v, true, nil
}

// Set writes value under key.
func (s *PreferenceStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

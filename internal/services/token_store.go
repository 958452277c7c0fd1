package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshKeyPrefix = "refresh:"

// RefreshTokenStore keeps issued refresh tokens until they expire or are
// revoked. The stored subject is "<role>:<userID>".
type RefreshTokenStore interface {
	Save(ctx context.Context, token, subject string, ttl time.Duration) error
	// Get returns the subject of a live token, or ErrNotFound.
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

// redisTokenStore implements RefreshTokenStore on Redis, one key per token
// with the TTL doing the expiry.
type redisTokenStore struct {
	rdb *redis.Client
}

// NewRedisTokenStore creates a RefreshTokenStore backed by the given client.
func NewRedisTokenStore(rdb *redis.Client) RefreshTokenStore {
	return &redisTokenStore{rdb: rdb}
}

func (s *redisTokenStore) Save(ctx context.Context, token, subject string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, refreshKeyPrefix+token, subject, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (s *redisTokenStore) Get(ctx context.Context, token string) (string, error) {
	subject, err := s.rdb.Get(ctx, refreshKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to look up refresh token: %w", err)
	}
	return subject, nil
}

func (s *redisTokenStore) Delete(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, refreshKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

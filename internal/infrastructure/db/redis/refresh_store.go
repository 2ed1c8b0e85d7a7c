package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/boardhouse/board-service/internal/core/domain"
)

const defaultRecordTTL = 7 * 24 * time.Hour

// RefreshTokenStore keeps the single authoritative refresh token per subject.
// Key format: refresh_token:<username>
//
// SET with expiry makes Save an atomic upsert that resets the TTL countdown;
// Redis enforces record expiry itself, so Find never returns a stale token.
// Per-key atomicity between concurrent login and logout comes from Redis's
// serialized command execution.
type RefreshTokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRefreshTokenStore creates a store with the given record TTL.
// If ttl <= 0, defaultRecordTTL is used.
func NewRefreshTokenStore(client *redis.Client, ttl time.Duration) *RefreshTokenStore {
	if ttl <= 0 {
		ttl = defaultRecordTTL
	}
	return &RefreshTokenStore{client: client, ttl: ttl}
}

// Save upserts the record for subject, overwriting any prior token and
// resetting its expiry countdown. A new login therefore unilaterally
// invalidates the previous session's refresh token.
func (s *RefreshTokenStore) Save(ctx context.Context, subject, token string) error {
	if err := s.client.Set(ctx, s.key(subject), token, s.ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Find returns the stored token for subject, or domain.ErrTokenNotFound when
// the record is absent or expired.
func (s *RefreshTokenStore) Find(ctx context.Context, subject string) (string, error) {
	val, err := s.client.Get(ctx, s.key(subject)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrTokenNotFound
		}
		return "", fmt.Errorf("find refresh token: %w", err)
	}
	return val, nil
}

// Delete removes the record for subject. Deleting an absent record is a no-op.
func (s *RefreshTokenStore) Delete(ctx context.Context, subject string) error {
	if err := s.client.Del(ctx, s.key(subject)).Err(); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

func (s *RefreshTokenStore) key(subject string) string {
	return "refresh_token:" + subject
}

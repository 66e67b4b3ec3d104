package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore binds issued tokens to server-side session records. Logout
// removes the record, which invalidates the token before its JWT expiry.
type SessionStore interface {
	Save(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// redisSessionStore implements SessionStore on Redis.
type redisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a Redis-backed SessionStore.
func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

// Save stores the session with a TTL matching the token lifetime.
func (s *redisSessionStore) Save(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error {
	err := s.client.Set(ctx, sessionKey(sessionID), strconv.FormatInt(userID, 10), ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Exists reports whether the session record is still present.
func (s *redisSessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	return n > 0, nil
}

// Delete removes the session record. Deleting a missing session is a no-op.
func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	err := s.client.Del(ctx, sessionKey(sessionID)).Err()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

package auth

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SessionStore tracks live sessions. A session exists from login until
// logout deletes it; there is no expiry.
type SessionStore interface {
	Create(ctx context.Context, sessionID string, userID int64) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

type redisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore returns a Redis-backed session registry.
func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func (s *redisSessionStore) Create(ctx context.Context, sessionID string, userID int64) error {
	return s.client.Set(ctx, sessionKey(sessionID), fmt.Sprintf("%d", userID), 0).Err()
}

func (s *redisSessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}

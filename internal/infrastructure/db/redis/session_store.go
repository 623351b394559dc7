package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "session:"

// SessionStore maps tokens to usernames under session:<token>. Keys are
// written without a TTL, so sessions live until logout.
type SessionStore struct {
	client redis.UniversalClient
}

func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Save(ctx context.Context, token, username string) error {
	if err := s.client.Set(ctx, sessionPrefix+token, username, 0).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Lookup(ctx context.Context, token string) (string, bool, error) {
	username, err := s.client.Get(ctx, sessionPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("lookup session: %w", err)
	}
	return username, true, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Del(ctx, sessionPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	return n > 0, nil
}

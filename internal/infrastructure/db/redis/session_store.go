package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/andesmarket/storefront-gateway/internal/core/domain"
)

const sessionKey = "storefront:session"

// Fixed named slots for the three session fields.
const (
	fieldToken    = "token"
	fieldRole     = "rol"
	fieldUsername = "username"
)

// SessionStore persists the single session slot in a Redis hash. All three
// fields are written with one HSET so a reader can never observe a partially
// written session.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Set persists the session as one atomic unit. Invalid sessions are refused.
func (s *SessionStore) Set(ctx context.Context, sess domain.Session) error {
	if !sess.Valid() {
		return domain.ErrInvalidSession
	}
	err := s.client.HSet(ctx, sessionKey,
		fieldToken, sess.AccessToken,
		fieldRole, sess.Role,
		fieldUsername, sess.Username,
	).Err()
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Get returns the stored session. A record missing any slot, or carrying an
// unknown role, is treated as "no session".
func (s *SessionStore) Get(ctx context.Context) (*domain.Session, error) {
	vals, err := s.client.HGetAll(ctx, sessionKey).Result()
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	sess := domain.Session{
		AccessToken: vals[fieldToken],
		Role:        vals[fieldRole],
		Username:    vals[fieldUsername],
	}
	if !sess.Valid() {
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

// Clear destroys the session slot.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

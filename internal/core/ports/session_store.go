package ports

import (
	"context"

	"github.com/andesmarket/storefront-gateway/internal/core/domain"
)

// SessionStore owns the single durable session slot written by the
// negotiator and read by everything else that needs the access token.
type SessionStore interface {
	// Get returns the current session, or domain.ErrSessionNotFound when any
	// of the three slots is absent or the record is otherwise invalid.
	Get(ctx context.Context) (*domain.Session, error)
	// Set persists all three session fields as one atomic unit.
	Set(ctx context.Context, s domain.Session) error
	Clear(ctx context.Context) error
}

package ports

import (
	"context"

	"github.com/andesmarket/storefront-gateway/internal/core/domain"
)

// NegotiationResult is the outcome of one complete login negotiation.
type NegotiationResult struct {
	// State is the terminal state the workflow stopped at.
	State   domain.NegotiationState
	Message string
	// RedirectTo and Session are set only when authentication succeeded.
	RedirectTo string
	Session    *domain.Session
	// Transitions lists every status update in the order it was emitted.
	Transitions []domain.StatusUpdate
}

// SessionNegotiator turns credentials into a persisted session, transparently
// provisioning an account when the credentials are unrecognized.
type SessionNegotiator interface {
	Negotiate(ctx context.Context, creds domain.Credentials) (*NegotiationResult, error)
}

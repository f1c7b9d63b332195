package ports

import (
	"context"

	"github.com/andesmarket/storefront-gateway/internal/core/domain"
)

// ContactService submits a contact message on behalf of the current session.
type ContactService interface {
	Send(ctx context.Context, msg domain.ContactMessage) error
}

package backend

import (
	"context"
	"net/http"

	"github.com/andesmarket/storefront-gateway/internal/core/domain"
)

// contactRequest mirrors POST /api/contacto/.
type contactRequest struct {
	Message  string `json:"mensaje"`
	Username string `json:"usuario"`
}

// SendMessage relays a contact message. Requires an active session.
func (c *Client) SendMessage(ctx context.Context, msg domain.ContactMessage) error {
	return c.do(ctx, http.MethodPost, "/api/contacto/", contactRequest{
		Message:  msg.Body,
		Username: msg.Username,
	}, true, nil)
}

package backend

import (
	"context"
	"net/http"

	"github.com/andesmarket/storefront-gateway/internal/core/ports"
)

// paymentRequest mirrors POST /api/webpay/iniciar.
type paymentRequest struct {
	BuyOrder  string  `json:"buy_order"`
	SessionID string  `json:"session_id"`
	Amount    float64 `json:"amount"`
	ReturnURL string  `json:"return_url"`
}

type paymentResponse struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

// InitTransaction starts a payment transaction and returns the destination
// the user must visit to complete it. Requires an active session.
func (c *Client) InitTransaction(ctx context.Context, req ports.PaymentRequest) (*ports.PaymentRedirect, error) {
	var out paymentResponse
	err := c.do(ctx, http.MethodPost, "/api/webpay/iniciar", paymentRequest{
		BuyOrder:  req.BuyOrder,
		SessionID: req.SessionID,
		Amount:    req.Amount,
		ReturnURL: req.ReturnURL,
	}, true, &out)
	if err != nil {
		return nil, err
	}
	return &ports.PaymentRedirect{URL: out.URL, Token: out.Token}, nil
}

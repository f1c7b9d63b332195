package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/andesmarket/storefront-gateway/internal/core/domain"
)

// rateResponse mirrors GET /api/divisas/{code}: valor is the number of
// reference-currency units per 1 unit of the requested currency.
type rateResponse struct {
	Value float64 `json:"valor"`
}

// Rate fetches the live rate for one currency. Requires an active session.
func (c *Client) Rate(ctx context.Context, currency string) (float64, error) {
	var out rateResponse
	err := c.do(ctx, http.MethodGet, "/api/divisas/"+url.PathEscape(currency), nil, true, &out)
	if err != nil {
		var be *domain.BackendError
		if errors.As(err, &be) {
			return 0, fmt.Errorf("%w: backend returned status %d", domain.ErrRateUnavailable, be.StatusCode)
		}
		return 0, err
	}
	if out.Value <= 0 {
		return 0, fmt.Errorf("%w: backend returned non-positive value", domain.ErrRateUnavailable)
	}
	return out.Value, nil
}

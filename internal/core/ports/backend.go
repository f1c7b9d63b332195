package ports

import (
	"context"

	"github.com/andesmarket/storefront-gateway/internal/core/domain"
)

// LoginResult carries the success payload of the backend's POST /login.
type LoginResult struct {
	AccessToken string
	Role        string
	Username    string
}

// AuthBackend is the storefront backend's authentication surface.
type AuthBackend interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Register creates an account. The caller decides username and role;
	// the auto-provisioning path always passes the customer role.
	Register(ctx context.Context, email, password, username, role string) error
}

// RateProvider fetches the reference-currency value of a single currency:
// reference units per 1 unit of the given currency.
type RateProvider interface {
	Rate(ctx context.Context, currency string) (float64, error)
}

// ContactBackend relays contact messages to the backend.
type ContactBackend interface {
	SendMessage(ctx context.Context, msg domain.ContactMessage) error
}

// PaymentRequest is the payload forwarded to the payment gateway endpoint.
type PaymentRequest struct {
	BuyOrder  string
	SessionID string
	Amount    float64
	ReturnURL string
}

// PaymentRedirect is the destination the user must be sent to in order to
// complete a payment. The redirect itself is out of scope for this service.
type PaymentRedirect struct {
	URL   string
	Token string
	// BuyOrder is the order id the transaction was opened under, including
	// generated ones.
	BuyOrder string
}

// PaymentBackend initiates payment transactions.
type PaymentBackend interface {
	InitTransaction(ctx context.Context, req PaymentRequest) (*PaymentRedirect, error)
}

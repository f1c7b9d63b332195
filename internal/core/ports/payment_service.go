package ports

import "context"

// PaymentInput carries all data needed to initiate a payment.
type PaymentInput struct {
	// BuyOrder is generated when empty.
	BuyOrder string
	// Username identifies the paying session.
	Username  string
	Amount    float64
	ReturnURL string
}

// PaymentService initiates a payment transaction and returns where to send
// the user to complete it.
type PaymentService interface {
	Initiate(ctx context.Context, input PaymentInput) (*PaymentRedirect, error)
}

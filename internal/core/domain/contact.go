package domain

import "errors"

var ErrEmptyMessage = errors.New("message cannot be empty")
var ErrInvalidPaymentAmount = errors.New("payment amount must be positive")

// ContactMessage is relayed verbatim to the storefront backend on behalf of
// the current session.
type ContactMessage struct {
	Body     string
	Username string
}

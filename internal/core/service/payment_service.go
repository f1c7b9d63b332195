package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/andesmarket/storefront-gateway/internal/core/domain"
	"github.com/andesmarket/storefront-gateway/internal/core/ports"
)

// PaymentService initiates payment transactions through the storefront
// backend and hands back the redirect destination.
type PaymentService struct {
	backend ports.PaymentBackend
	log     zerolog.Logger
}

func NewPaymentService(backend ports.PaymentBackend, log zerolog.Logger) *PaymentService {
	return &PaymentService{backend: backend, log: log}
}

func (s *PaymentService) Initiate(ctx context.Context, input ports.PaymentInput) (*ports.PaymentRedirect, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidPaymentAmount
	}

	buyOrder := input.BuyOrder
	if buyOrder == "" {
		buyOrder = generateBuyOrder()
	}

	redirect, err := s.backend.InitTransaction(ctx, ports.PaymentRequest{
		BuyOrder:  buyOrder,
		SessionID: input.Username,
		Amount:    input.Amount,
		ReturnURL: input.ReturnURL,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("buy_order", buyOrder).Msg("payment initiation failed")
		return nil, err
	}

	s.log.Info().
		Str("buy_order", buyOrder).
		Str("username", input.Username).
		Float64("amount", input.Amount).
		Msg("payment initiated")

	redirect.BuyOrder = buyOrder
	return redirect, nil
}

// generateBuyOrder returns an order id in the format ORD-<unix millis>.
func generateBuyOrder() string {
	return fmt.Sprintf("ORD-%d", time.Now().UnixMilli())
}

package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/andesmarket/storefront-gateway/internal/core/domain"
	"github.com/andesmarket/storefront-gateway/internal/core/ports"
)

// ConversionService converts amounts between currencies using live rates
// expressed against a single fixed reference currency. Rates are fetched per
// request and never cached.
type ConversionService struct {
	rates     ports.RateProvider
	reference string
	log       zerolog.Logger
}

func NewConversionService(rates ports.RateProvider, referenceCurrency string, log zerolog.Logger) *ConversionService {
	if referenceCurrency == "" {
		referenceCurrency = domain.DefaultReferenceCurrency
	}
	return &ConversionService{
		rates:     rates,
		reference: strings.ToUpper(referenceCurrency),
		log:       log,
	}
}

// Convert performs the identity, single-leg, or pivoted conversion. When
// neither currency is the reference, both legs are fetched concurrently and
// the result is computed only once both have arrived; a failed leg aborts the
// whole conversion and names the failing currency.
func (s *ConversionService) Convert(ctx context.Context, amount float64, from, to string) (*domain.ConversionResult, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	if from == "" || to == "" || amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, domain.ErrInvalidConversion
	}

	res := &domain.ConversionResult{Amount: amount, From: from, To: to}

	switch {
	case from == to:
		// No network call for the identity conversion.
		res.Converted = amount

	case to == s.reference:
		rate, err := s.fetch(ctx, from)
		if err != nil {
			return nil, err
		}
		res.Converted = amount * rate
		res.RatesUsed = []domain.ExchangeRate{{Currency: from, Value: rate}}

	case from == s.reference:
		rate, err := s.fetch(ctx, to)
		if err != nil {
			return nil, err
		}
		res.Converted = amount / rate
		res.RatesUsed = []domain.ExchangeRate{{Currency: to, Value: rate}}

	default:
		var rateFrom, rateTo float64
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			r, err := s.fetch(gctx, from)
			if err != nil {
				return err
			}
			rateFrom = r
			return nil
		})
		g.Go(func() error {
			r, err := s.fetch(gctx, to)
			if err != nil {
				return err
			}
			rateTo = r
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		// Two-hop pivot: the backend only knows rates versus the reference.
		amountInReference := amount * rateFrom
		res.Converted = amountInReference / rateTo
		res.RatesUsed = []domain.ExchangeRate{
			{Currency: from, Value: rateFrom},
			{Currency: to, Value: rateTo},
		}
	}

	s.log.Debug().
		Str("from", from).
		Str("to", to).
		Float64("amount", amount).
		Float64("converted", res.Converted).
		Int("rates_fetched", len(res.RatesUsed)).
		Msg("conversion completed")

	return res, nil
}

// fetch retrieves one rate, tagging failures with the currency so the caller
// knows which leg failed.
func (s *ConversionService) fetch(ctx context.Context, currency string) (float64, error) {
	rate, err := s.rates.Rate(ctx, currency)
	if err != nil {
		return 0, fmt.Errorf("rate %s: %w", currency, err)
	}
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("rate %s: %w", currency, domain.ErrRateUnavailable)
	}
	return rate, nil
}

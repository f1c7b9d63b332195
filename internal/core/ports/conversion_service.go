package ports

import (
	"context"

	"github.com/andesmarket/storefront-gateway/internal/core/domain"
)

// ConversionService converts an amount between two currency codes using live
// rates expressed against the reference currency.
type ConversionService interface {
	Convert(ctx context.Context, amount float64, from, to string) (*domain.ConversionResult, error)
}

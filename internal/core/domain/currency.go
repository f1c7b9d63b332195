package domain

import "errors"

// DefaultReferenceCurrency is the pivot currency all backend rates are
// expressed against.
const DefaultReferenceCurrency = "CLP"

var ErrRateUnavailable = errors.New("exchange rate unavailable")
var ErrInvalidConversion = errors.New("invalid conversion request")

// ExchangeRate is the value of a currency expressed as reference-currency
// units per 1 unit of Currency. Rates are fetched per conversion and never
// cached.
type ExchangeRate struct {
	Currency string  `json:"currency"`
	Value    float64 `json:"value"`
}

// ConversionResult carries a completed conversion. Converted keeps full
// precision; rounding happens at the display layer only. RatesUsed lists the
// fetched rates in (from, to) order and is empty for identity conversions.
type ConversionResult struct {
	Amount    float64
	From      string
	To        string
	Converted float64
	RatesUsed []ExchangeRate
}

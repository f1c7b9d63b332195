package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/andesmarket/storefront-gateway/internal/core/domain"
)

type stubConversionService struct {
	convertFn func(ctx context.Context, amount float64, from, to string) (*domain.ConversionResult, error)
}

func (s *stubConversionService) Convert(ctx context.Context, amount float64, from, to string) (*domain.ConversionResult, error) {
	return s.convertFn(ctx, amount, from, to)
}

func getConvert(e *echo.Echo, query string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/v1/convert?"+query, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestConversionHandler_Convert(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubConversionService{
		convertFn: func(ctx context.Context, amount float64, from, to string) (*domain.ConversionResult, error) {
			if amount != 100 || from != "USD" || to != "EUR" {
				t.Fatalf("unexpected args: %v %s %s", amount, from, to)
			}
			return &domain.ConversionResult{
				Amount:    100,
				From:      "USD",
				To:        "EUR",
				Converted: 90.123456,
				RatesUsed: []domain.ExchangeRate{
					{Currency: "USD", Value: 912.341},
					{Currency: "EUR", Value: 1012.3},
				},
			}, nil
		},
	}
	handler := NewConversionHandler(stub)

	c, rec := getConvert(e, "amount=100&from=USD&to=EUR")
	if err := handler.Convert(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	// Displayed values carry two decimals.
	if resp["converted"] != 90.12 {
		t.Fatalf("expected converted 90.12, got %v", resp["converted"])
	}
	rates, ok := resp["rates"].([]any)
	if !ok || len(rates) != 2 {
		t.Fatalf("expected 2 rates, got %v", resp["rates"])
	}
	first := rates[0].(map[string]any)
	if first["currency"] != "USD" || first["value"] != 912.34 {
		t.Fatalf("unexpected first rate: %v", first)
	}
}

func TestConversionHandler_Convert_MissingParams(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubConversionService{
		convertFn: func(ctx context.Context, amount float64, from, to string) (*domain.ConversionResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewConversionHandler(stub)

	c, rec := getConvert(e, "amount=100&from=USD")
	_ = handler.Convert(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestConversionHandler_Convert_BadAmount(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	handler := NewConversionHandler(&stubConversionService{})

	c, rec := getConvert(e, "amount=abc&from=USD&to=EUR")
	_ = handler.Convert(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestConversionHandler_Convert_RateFailurePropagates(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubConversionService{
		convertFn: func(ctx context.Context, amount float64, from, to string) (*domain.ConversionResult, error) {
			return nil, domain.ErrRateUnavailable
		},
	}
	handler := NewConversionHandler(stub)

	c, _ := getConvert(e, "amount=5&from=USD&to=EUR")
	// Domain errors flow to the central error handler untouched.
	if err := handler.Convert(c); err == nil {
		t.Fatalf("expected error to propagate")
	}
}

func TestConversionHandler_Kind(t *testing.T) {
	cases := []struct {
		rates int
		want  string
	}{
		{0, "identity"},
		{1, "direct"},
		{2, "pivoted"},
	}
	for _, tc := range cases {
		result := &domain.ConversionResult{RatesUsed: make([]domain.ExchangeRate, tc.rates)}
		if got := conversionKind(result); got != tc.want {
			t.Errorf("kind with %d rates: expected %s, got %s", tc.rates, tc.want, got)
		}
	}
}

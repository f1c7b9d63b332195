package handler

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/andesmarket/storefront-gateway/internal/api/metrics"
	"github.com/andesmarket/storefront-gateway/internal/core/domain"
	"github.com/andesmarket/storefront-gateway/internal/core/ports"
)

// ConversionHandler handles HTTP requests for currency conversion.
type ConversionHandler struct {
	service ports.ConversionService
}

func NewConversionHandler(service ports.ConversionService) *ConversionHandler {
	return &ConversionHandler{service: service}
}

// --- Request / Response types ---

type conversionRequest struct {
	Amount float64 `query:"amount" validate:"gte=0"`
	From   string  `query:"from"   validate:"required,len=3"`
	To     string  `query:"to"     validate:"required,len=3"`
}

type rateResponse struct {
	Currency string  `json:"currency"`
	Value    float64 `json:"value"`
}

type conversionResponse struct {
	Amount    float64        `json:"amount"`
	From      string         `json:"from"`
	To        string         `json:"to"`
	Converted float64        `json:"converted"`
	Rates     []rateResponse `json:"rates"`
}

// Convert handles GET /v1/convert.
//
// @Summary      Convert an amount between two currencies
// @Tags         exchange
// @Produce      json
// @Security     BearerAuth
// @Param        amount  query     number  true  "Amount in the source currency"
// @Param        from    query     string  true  "Source currency code (e.g. USD)"
// @Param        to      query     string  true  "Target currency code (e.g. EUR)"
// @Success      200     {object}  conversionResponse
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Failure      502     {object}  map[string]string
// @Router       /v1/convert [get]
func (h *ConversionHandler) Convert(c echo.Context) error {
	var req conversionRequest
	if err := c.Bind(&req); err != nil {
		metrics.ConversionErrorsTotal.WithLabelValues("invalid_input").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid query parameters"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.ConversionErrorsTotal.WithLabelValues("invalid_input").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	start := time.Now()
	result, err := h.service.Convert(c.Request().Context(), req.Amount, req.From, req.To)
	if err != nil {
		metrics.ConversionErrorsTotal.WithLabelValues(conversionErrorReason(err)).Inc()
		return err
	}

	kind := conversionKind(result)
	metrics.ConversionsTotal.WithLabelValues(kind).Inc()
	metrics.ConversionDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	// Full precision stays internal; the wire carries two decimals.
	resp := conversionResponse{
		Amount:    result.Amount,
		From:      result.From,
		To:        result.To,
		Converted: round2(result.Converted),
		Rates:     make([]rateResponse, 0, len(result.RatesUsed)),
	}
	for _, r := range result.RatesUsed {
		resp.Rates = append(resp.Rates, rateResponse{Currency: r.Currency, Value: round2(r.Value)})
	}

	return c.JSON(http.StatusOK, resp)
}

// conversionKind classifies a result by how many rates it needed: none means
// identity, one means a leg touched the reference currency, two means a
// cross-pair pivot.
func conversionKind(result *domain.ConversionResult) string {
	switch len(result.RatesUsed) {
	case 0:
		return "identity"
	case 1:
		return "direct"
	default:
		return "pivoted"
	}
}

func conversionErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidConversion):
		return "invalid_input"
	case errors.Is(err, domain.ErrRateUnavailable):
		return "rate_unavailable"
	case errors.Is(err, domain.ErrBackendUnavailable):
		return "backend_unavailable"
	}
	return "internal"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

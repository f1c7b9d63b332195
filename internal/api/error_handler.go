package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/andesmarket/storefront-gateway/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Backend rejections carry their own status and human-readable detail.
	var be *domain.BackendError
	if errors.As(err, &be) {
		return be.StatusCode, be.Error()
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrInvalidSession):
		return http.StatusUnauthorized, "not authenticated"
	case errors.Is(err, domain.ErrNegotiationInFlight):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidConversion):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrEmptyMessage), errors.Is(err, domain.ErrInvalidPaymentAmount):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrRateUnavailable):
		// The wrapped message names the currency whose rate failed.
		return http.StatusBadGateway, err.Error()
	case errors.Is(err, domain.ErrBackendUnavailable):
		return http.StatusBadGateway, "backend unavailable"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

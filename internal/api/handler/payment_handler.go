package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/andesmarket/storefront-gateway/internal/api/metrics"
	"github.com/andesmarket/storefront-gateway/internal/core/ports"
)

// PaymentHandler initiates payment transactions.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type paymentRequest struct {
	BuyOrder  string  `json:"buy_order"`
	Amount    float64 `json:"amount"     validate:"required,gt=0"`
	ReturnURL string  `json:"return_url" validate:"required,url"`
}

type paymentResponse struct {
	URL      string `json:"url"`
	Token    string `json:"token"`
	BuyOrder string `json:"buy_order"`
}

// Initiate handles POST /v1/payments.
//
// @Summary      Start a payment transaction
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      paymentRequest  true  "Payment details"
// @Success      200   {object}  paymentResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/payments [post]
func (h *PaymentHandler) Initiate(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	redirect, err := h.service.Initiate(c.Request().Context(), ports.PaymentInput{
		BuyOrder:  req.BuyOrder,
		Username:  sess.Username,
		Amount:    req.Amount,
		ReturnURL: req.ReturnURL,
	})
	if err != nil {
		metrics.PaymentsInitiatedTotal.WithLabelValues("failed").Inc()
		return err
	}

	metrics.PaymentsInitiatedTotal.WithLabelValues("redirected").Inc()
	return c.JSON(http.StatusOK, paymentResponse{
		URL:      redirect.URL,
		Token:    redirect.Token,
		BuyOrder: redirect.BuyOrder,
	})
}
